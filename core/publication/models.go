package publication

import "github.com/trezcool/walimu/core"

// Collection is the record store collection holding publications.
const Collection = "publications"

// TypeResearchPaper is the default publication type.
const TypeResearchPaper = "research-paper"

// Publication is a research output reference.
type Publication struct {
	ID          string `json:"id"`
	TeacherKey  string `json:"teacherId"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishDate string `json:"publishDate"`
}

// NewPublication contains information needed to register a publication.
type NewPublication struct {
	Title       string `json:"title" validate:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
}

func (np *NewPublication) Validate() error {
	np.Title = core.CleanString(np.Title)
	if np.Type == "" {
		np.Type = TypeResearchPaper
	}
	return core.Validate.Struct(np)
}

// UpdatePublication defines the editable fields of a publication.
type UpdatePublication struct {
	Title       string `json:"title" validate:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
}

func (up *UpdatePublication) Validate() error {
	up.Title = core.CleanString(up.Title)
	return core.Validate.Struct(up)
}
