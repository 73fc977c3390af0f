package teacher

import (
	"github.com/trezcool/walimu/core"
)

// Collection is the record store collection holding teacher records.
const Collection = "teachers"

// Departments the roster recognizes; presented as form choices.
var Departments = []string{"CSE", "IT", "MECH", "AIML", "CSBS", "AIDS", "CIVIL", "EEE", "ECE"}

// Teacher is the source of truth for teacher identity resolution and for
// scope resolution. Its store id is the scope key partitioning all records
// the teacher owns.
type Teacher struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"-"`
	Department   string `json:"department"`
	JoinDate     string `json:"joinDate"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func (t Teacher) fields() core.Fields {
	return core.Fields{
		"name":         t.Name,
		"email":        t.Email,
		"password":     t.Password,
		"department":   t.Department,
		"joinDate":     t.JoinDate,
		"profileImage": t.ProfileImage,
	}
}

func fromDocument(doc core.Document) Teacher {
	str := func(field string) string {
		s, _ := doc.Fields[field].(string)
		return s
	}
	return Teacher{
		ID:           doc.ID,
		Name:         str("name"),
		Email:        str("email"),
		Password:     str("password"),
		Department:   str("department"),
		JoinDate:     str("joinDate"),
		ProfileImage: str("profileImage"),
	}
}

// NewTeacher contains information needed to add a teacher to the roster.
type NewTeacher struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required"`
	Password   string `json:"password"`
}

func (nt *NewTeacher) Validate() error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Department = core.CleanString(nt.Department)
	return core.Validate.Struct(nt)
}

// UpdateTeacher defines what an administrator may modify on a roster entry.
type UpdateTeacher struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required"`
}

func (ut *UpdateTeacher) Validate() error {
	ut.Name = core.CleanString(ut.Name)
	ut.Email = core.CleanString(ut.Email, true /* lower */)
	ut.Department = core.CleanString(ut.Department)
	return core.Validate.Struct(ut)
}

// UpdateProfile defines what a teacher may modify on their own record.
// Password is only changed when provided.
type UpdateProfile struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Department   string `json:"department"`
	JoinDate     string `json:"joinDate"`
	ProfileImage string `json:"profileImage"`
	Password     string `json:"password"`
}

func (up *UpdateProfile) Validate() error {
	up.Name = core.CleanString(up.Name)
	up.Email = core.CleanString(up.Email, true /* lower */)
	return core.Validate.Struct(up)
}
