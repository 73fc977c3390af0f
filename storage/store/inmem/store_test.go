package inmemstore

import (
	"context"
	"testing"

	"github.com/trezcool/walimu/core"
)

func TestStore_roundTrip(t *testing.T) {
	ctx := context.Background()
	store := Open()

	id, err := store.Insert(ctx, "things", core.Fields{"name": "alpha", "n": 1})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if id == "" {
		t.Fatal("Insert() assigned no id")
	}

	fields, err := store.Get(ctx, "things", id)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if fields["name"] != "alpha" {
		t.Errorf("Get() = %+v", fields)
	}

	// the returned map is a copy, not an alias
	fields["name"] = "mutated"
	if fresh, _ := store.Get(ctx, "things", id); fresh["name"] != "alpha" {
		t.Error("Get() leaked internal state")
	}

	if _, err = store.Get(ctx, "things", "nope"); err != core.ErrRecordNotFound {
		t.Errorf("Get() error = %v, want %v", err, core.ErrRecordNotFound)
	}
	if _, err = store.Get(ctx, "missing", id); err != core.ErrRecordNotFound {
		t.Errorf("Get() error = %v, want %v", err, core.ErrRecordNotFound)
	}
}

func TestStore_queryInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := Open()

	var ids []string
	for _, name := range []string{"alpha", "bravo", "charlie"} {
		id, err := store.Insert(ctx, "things", core.Fields{"name": name, "kind": "x"})
		if err != nil {
			t.Fatalf("Insert() failed: %v", err)
		}
		ids = append(ids, id)
	}
	if _, err := store.Insert(ctx, "things", core.Fields{"name": "delta", "kind": "y"}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	docs, err := store.Query(ctx, "things", core.Eq{Field: "kind", Value: "x"})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("Query() returned %d docs, want 3", len(docs))
	}
	for i, doc := range docs {
		if doc.ID != ids[i] {
			t.Errorf("Query()[%d].ID = %s, want %s (insertion order)", i, doc.ID, ids[i])
		}
	}

	// no match and unknown collection both yield empty, never an error
	if docs, err = store.Query(ctx, "things", core.Eq{Field: "kind", Value: "z"}); err != nil || len(docs) != 0 {
		t.Errorf("Query() = %+v, %v; want empty", docs, err)
	}
	if docs, err = store.Query(ctx, "missing"); err != nil || len(docs) != 0 {
		t.Errorf("Query() = %+v, %v; want empty", docs, err)
	}
}

func TestStore_updateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := Open()

	id, _ := store.Insert(ctx, "things", core.Fields{"name": "alpha", "n": 1})

	// merge semantics: untouched fields stay
	if err := store.Update(ctx, "things", id, core.Fields{"name": "bravo"}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	fields, _ := store.Get(ctx, "things", id)
	if fields["name"] != "bravo" || fields["n"] != 1 {
		t.Errorf("Update() = %+v, want merged fields", fields)
	}

	if err := store.Update(ctx, "things", "nope", core.Fields{"name": "x"}); err != core.ErrRecordNotFound {
		t.Errorf("Update() error = %v, want %v", err, core.ErrRecordNotFound)
	}

	if err := store.Delete(ctx, "things", id); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := store.Get(ctx, "things", id); err != core.ErrRecordNotFound {
		t.Errorf("Get() after delete error = %v, want %v", err, core.ErrRecordNotFound)
	}
	// idempotent
	if err := store.Delete(ctx, "things", id); err != nil {
		t.Errorf("second Delete() = %v, want nil", err)
	}
	if err := store.Delete(ctx, "missing", id); err != nil {
		t.Errorf("Delete() on unknown collection = %v, want nil", err)
	}
}
