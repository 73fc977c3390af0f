package identity

import (
	"context"
	goerrors "errors"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/teacher"
)

// ErrInvalidCredentials is returned when the login predicate matched nothing.
var ErrInvalidCredentials = goerrors.New("invalid credentials")

type (
	// CredentialMatcher isolates how a supplied password is checked against
	// a stored teacher record, so the comparison scheme can be swapped
	// without touching callers.
	CredentialMatcher interface {
		// QueryTerms returns the equality terms used to look the teacher up.
		QueryTerms(email, password string) []core.Eq
		// Match reports whether the supplied password matches the record.
		Match(fields core.Fields, password string) bool
	}

	// PlainMatcher compares the password by plaintext equality against the
	// stored `password` field. This mirrors the legacy portal behavior and
	// is the default.
	PlainMatcher struct{}

	// BcryptMatcher looks the teacher up by email only and verifies the
	// stored bcrypt hash in process.
	BcryptMatcher struct{}
)

func (PlainMatcher) QueryTerms(email, password string) []core.Eq {
	return []core.Eq{{Field: "email", Value: email}, {Field: "password", Value: password}}
}

func (PlainMatcher) Match(fields core.Fields, password string) bool {
	stored, _ := fields["password"].(string)
	return stored != "" && stored == password
}

func (BcryptMatcher) QueryTerms(email, _ string) []core.Eq {
	return []core.Eq{{Field: "email", Value: email}}
}

func (BcryptMatcher) Match(fields core.Fields, password string) bool {
	hash, _ := fields["password"].(string)
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Resolver turns (email, password, claimed role) into an Identity.
type Resolver struct {
	store   core.RecordStore
	matcher CredentialMatcher
}

func NewResolver(store core.RecordStore, matcher CredentialMatcher) *Resolver {
	if matcher == nil {
		matcher = PlainMatcher{}
	}
	return &Resolver{store: store, matcher: matcher}
}

// Resolve authenticates the credentials for the claimed role.
// Admin attempts are checked against the configured constants only; no store
// access occurs. Teacher attempts query the teachers collection; the first
// matching record's store id becomes both the Identity id and its scope key.
func (r *Resolver) Resolve(ctx context.Context, email, password, claimedRole string) (Identity, error) {
	switch claimedRole {
	case RoleAdmin:
		adm := core.Conf.Admin
		if adm.Email == "" || email != adm.Email || password != adm.Password {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{ID: AdminID, Name: "Admin", Email: email, Role: RoleAdmin}, nil

	case RoleTeacher:
		docs, err := r.store.Query(ctx, teacher.Collection, r.matcher.QueryTerms(email, password)...)
		if err != nil {
			return Identity{}, errors.Wrap(err, "querying teachers")
		}
		for _, doc := range docs {
			if !r.matcher.Match(doc.Fields, password) {
				continue
			}
			return Identity{
				ID:       doc.ID,
				Name:     displayName(email),
				Email:    email,
				Role:     RoleTeacher,
				ScopeKey: doc.ID,
			}, nil
		}
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{}, ErrInvalidCredentials
}
