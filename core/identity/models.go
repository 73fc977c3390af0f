package identity

import (
	"strings"

	"github.com/trezcool/walimu/core"
)

// Roles
const (
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// AdminID is the fixed sentinel id of the configuration-backed administrator.
// The admin has no record in the store.
const AdminID = "admin1"

// Identity is the resolved, authenticated actor for the current session.
// It is created on successful login, replaced wholesale on the next login
// and cleared on logout; the Session owns it exclusively.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	// ScopeKey is the teacher's record id, partitioning all records the
	// teacher owns. Empty until resolved; always empty for admin.
	ScopeKey string `json:"documentId,omitempty"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

func (i Identity) IsTeacher() bool { return i.Role == RoleTeacher }

// Credentials is the login submission; Role is the claimed role selected on
// the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=teacher admin"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	c.Role = core.CleanString(c.Role, true /* lower */)
	return core.Validate.Struct(c)
}

// displayName defaults to the local part of the email; no separate
// display-name field is guaranteed at resolution time.
func displayName(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
