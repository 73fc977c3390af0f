package identity

import (
	"context"
	goerrors "errors"

	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/teacher"
)

// ErrTeacherNotFound is returned when scope resolution fails after a
// successful login (the teacher record has since disappeared). Dependent
// views degrade to an empty state rather than erroring.
var ErrTeacherNotFound = goerrors.New("teacher not found")

// ScopeResolver resolves the durable per-teacher key used to partition all
// teacher-owned collections. The key is memoized on the session and
// invalidated by Login/Logout; concurrent re-resolution is idempotent.
type ScopeResolver struct {
	store core.RecordStore
	log   core.Logger
}

func NewScopeResolver(store core.RecordStore, log core.Logger) *ScopeResolver {
	return &ScopeResolver{store: store, log: log}
}

// Resolve returns the scope key for the session's teacher identity.
// The teacher record is looked up by the identity id set at login; once
// resolved, the key is authoritative for the remainder of the session.
func (r *ScopeResolver) Resolve(ctx context.Context, sess *Session) (string, error) {
	ident, ok := sess.Current()
	if !ok || !ident.IsTeacher() {
		return "", ErrTeacherNotFound
	}
	if key, ok := sess.cachedScopeKey(); ok {
		return key, nil
	}

	if _, err := r.store.Get(ctx, teacher.Collection, ident.ID); err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			r.log.Error("scope resolution failed: teacher record missing", ident.ID)
			return "", ErrTeacherNotFound
		}
		return "", errors.Wrap(err, "fetching teacher record")
	}
	sess.cacheScopeKey(ident.ID, ident.ID)
	return ident.ID, nil
}
