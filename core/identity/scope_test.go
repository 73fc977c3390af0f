package identity_test

import (
	"context"
	"testing"

	"github.com/trezcool/walimu/core/identity"
	"github.com/trezcool/walimu/core/teacher"
	inmemstore "github.com/trezcool/walimu/storage/store/inmem"
	testutil "github.com/trezcool/walimu/tests"
)

func TestScopeResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	store := inmemstore.Open()
	janeID := seedTeacher(t, store, "Jane Doe", "jane@test.cd", "s3cret")
	resolver := identity.NewScopeResolver(store, testutil.NopLogger{})

	sess := identity.NewSession()

	// unauthenticated
	if _, err := resolver.Resolve(ctx, sess); err != identity.ErrTeacherNotFound {
		t.Errorf("Resolve() error = %v, want %v", err, identity.ErrTeacherNotFound)
	}

	// admin has no teacher scope
	sess.Login(identity.Identity{ID: identity.AdminID, Role: identity.RoleAdmin})
	if _, err := resolver.Resolve(ctx, sess); err != identity.ErrTeacherNotFound {
		t.Errorf("Resolve() error = %v, want %v", err, identity.ErrTeacherNotFound)
	}

	// teacher resolves to their record id
	sess.Login(identity.Identity{ID: janeID, Role: identity.RoleTeacher})
	key, err := resolver.Resolve(ctx, sess)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if key != janeID {
		t.Errorf("Resolve() = %s, want %s", key, janeID)
	}

	// memoized: the key survives the record's deletion for this session
	if err = store.Delete(ctx, teacher.Collection, janeID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if key, err = resolver.Resolve(ctx, sess); err != nil || key != janeID {
		t.Errorf("Resolve() after delete = %s, %v; want memoized %s", key, err, janeID)
	}

	// a fresh login drops the memoized key and re-resolution fails
	sess.Logout()
	sess.Login(identity.Identity{ID: janeID, Role: identity.RoleTeacher})
	if _, err = resolver.Resolve(ctx, sess); err != identity.ErrTeacherNotFound {
		t.Errorf("Resolve() error = %v, want %v", err, identity.ErrTeacherNotFound)
	}
}
