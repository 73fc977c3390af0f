package document

import "github.com/trezcool/walimu/core"

// Collection is the record store collection holding teaching documents.
const Collection = "documents"

// Document types
const (
	TypeNotes      = "notes"
	TypeAssignment = "assignment"
	TypeMaterial   = "material"
)

// Document is an uploaded teaching document reference.
type Document struct {
	ID          string `json:"id"`
	TeacherKey  string `json:"teacherId"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url"`
	UploadDate  string `json:"uploadDate"`
}

// NewDocument contains information needed to register a document.
type NewDocument struct {
	Title       string `json:"title" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=notes assignment material"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
}

func (nd *NewDocument) Validate() error {
	nd.Title = core.CleanString(nd.Title)
	if nd.Type == "" {
		nd.Type = TypeNotes
	}
	return core.Validate.Struct(nd)
}

// UpdateDocument defines the editable fields of a document.
type UpdateDocument struct {
	Title       string `json:"title" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=notes assignment material"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
}

func (ud *UpdateDocument) Validate() error {
	ud.Title = core.CleanString(ud.Title)
	return core.Validate.Struct(ud)
}
