package record_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/record"
	inmemstore "github.com/trezcool/walimu/storage/store/inmem"
)

type note struct {
	ID         string `json:"id"`
	TeacherKey string `json:"teacherId"`
	Title      string `json:"title"`
	Stamp      string `json:"lastUpdated,omitempty"`
}

type notePatch struct {
	Title string `json:"title"`
}

func TestManager_scopeIsolation(t *testing.T) {
	ctx := context.Background()
	store := inmemstore.Open()
	mgr := record.NewManager[note](store, "notes", "")

	// interleave creates under two keys
	n1, err := mgr.Create(ctx, "t1", note{Title: "alpha"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err = mgr.Create(ctx, "t2", note{Title: "bravo"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	n3, err := mgr.Create(ctx, "t1", note{Title: "charlie"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	got, err := mgr.List(ctx, "t1")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 2 || got[0] != n1 || got[1] != n3 {
		t.Errorf("List(t1) = %+v, want [%+v %+v]", got, n1, n3)
	}
	for _, n := range got {
		if n.TeacherKey != "t1" {
			t.Errorf("List(t1) leaked record owned by %q", n.TeacherKey)
		}
	}

	// unknown and empty keys yield empty data, never an error
	if got, err = mgr.List(ctx, "t3"); err != nil || len(got) != 0 {
		t.Errorf("List(t3) = %+v, %v; want empty", got, err)
	}
	if got, err = mgr.List(ctx, ""); err != nil || len(got) != 0 {
		t.Errorf("List(\"\") = %+v, %v; want empty", got, err)
	}
}

func TestManager_createStampsOwnershipAndTimestamp(t *testing.T) {
	ctx := context.Background()
	store := inmemstore.Open()
	mgr := record.NewManager[note](store, "notes", "lastUpdated")

	now := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	record.NowFunc = func() time.Time { return now }
	defer func() { record.NowFunc = time.Now }()

	// a client-supplied id or owner key is discarded
	n, err := mgr.Create(ctx, "t1", note{ID: "forged", TeacherKey: "t9", Title: "alpha"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if n.ID == "" || n.ID == "forged" {
		t.Errorf("Create() id = %q, want a fresh store id", n.ID)
	}
	if n.TeacherKey != "t1" {
		t.Errorf("Create() teacherKey = %q, want t1", n.TeacherKey)
	}
	if want := now.Format(time.RFC3339); n.Stamp != want {
		t.Errorf("Create() stamp = %q, want %q", n.Stamp, want)
	}

	// read-after-write
	got, err := mgr.List(ctx, "t1")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 1 || got[0] != n {
		t.Errorf("List() = %+v, want [%+v]", got, n)
	}
}

func TestManager_updatePreservesIdentityFields(t *testing.T) {
	ctx := context.Background()
	store := inmemstore.Open()
	mgr := record.NewManager[note](store, "notes", "lastUpdated")

	n, err := mgr.Create(ctx, "t1", note{Title: "alpha"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	later := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	record.NowFunc = func() time.Time { return later }
	defer func() { record.NowFunc = time.Now }()

	// a patch carrying id/teacherId must not reassign ownership
	patch := note{ID: "forged", TeacherKey: "t9", Title: "bravo"}
	if err = mgr.Update(ctx, "t1", n.ID, patch); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	got, err := mgr.List(ctx, "t1")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List() = %+v, want 1 record", got)
	}
	if got[0].ID != n.ID || got[0].TeacherKey != "t1" {
		t.Errorf("Update() changed identity fields: %+v", got[0])
	}
	if got[0].Title != "bravo" {
		t.Errorf("Update() title = %q, want bravo", got[0].Title)
	}
	if want := later.Format(time.RFC3339); got[0].Stamp != want {
		t.Errorf("Update() stamp = %q, want %q", got[0].Stamp, want)
	}

	// a narrow patch only touches the fields it carries
	if err = mgr.Update(ctx, "t1", n.ID, notePatch{Title: "charlie"}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	got, _ = mgr.List(ctx, "t1")
	if got[0].Title != "charlie" || got[0].TeacherKey != "t1" {
		t.Errorf("Update() = %+v, want title charlie under t1", got[0])
	}

	// unknown id
	if err = mgr.Update(ctx, "t1", "nope", notePatch{Title: "x"}); errors.Cause(err) != core.ErrRecordNotFound {
		t.Errorf("Update() error = %v, want %v", err, core.ErrRecordNotFound)
	}
}

func TestManager_deleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := inmemstore.Open()
	mgr := record.NewManager[note](store, "notes", "")

	n, err := mgr.Create(ctx, "t1", note{Title: "alpha"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err = mgr.Delete(ctx, "t1", n.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err = mgr.Delete(ctx, "t1", n.ID); err != nil {
		t.Errorf("second Delete() = %v, want nil", err)
	}

	got, err := mgr.List(ctx, "t1")
	if err != nil || len(got) != 0 {
		t.Errorf("List() = %+v, %v; want empty", got, err)
	}
}

func TestManager_mutationsRequireOwnership(t *testing.T) {
	ctx := context.Background()
	store := inmemstore.Open()
	mgr := record.NewManager[note](store, "notes", "")

	n, err := mgr.Create(ctx, "t1", note{Title: "alpha"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// another key cannot tell a foreign id from an unknown one
	if err = mgr.Update(ctx, "t2", n.ID, notePatch{Title: "hijacked"}); errors.Cause(err) != core.ErrRecordNotFound {
		t.Errorf("Update(t2) error = %v, want %v", err, core.ErrRecordNotFound)
	}
	if err = mgr.Update(ctx, "", n.ID, notePatch{Title: "hijacked"}); errors.Cause(err) != core.ErrRecordNotFound {
		t.Errorf("Update(\"\") error = %v, want %v", err, core.ErrRecordNotFound)
	}

	// a foreign delete is a no-op, not an error
	if err = mgr.Delete(ctx, "t2", n.ID); err != nil {
		t.Errorf("Delete(t2) = %v, want nil", err)
	}

	got, err := mgr.List(ctx, "t1")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "alpha" {
		t.Errorf("List(t1) = %+v, want the untouched record", got)
	}
}

func TestManager_corruptRecordShutsDown(t *testing.T) {
	ctx := context.Background()
	store := inmemstore.Open()
	mgr := record.NewManager[note](store, "notes", "")

	// a title that no longer decodes as a string
	if _, err := store.Insert(ctx, "notes", core.Fields{"teacherId": "t1", "title": 123}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	_, err := mgr.List(ctx, "t1")
	if !core.IsShutdown(err) {
		t.Errorf("List() error = %v, want a shutdown error", err)
	}
}
