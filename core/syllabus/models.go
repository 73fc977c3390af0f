package syllabus

import "github.com/trezcool/walimu/core"

// Collection is the record store collection holding syllabus entries.
const Collection = "syllabus"

// Entry tracks coverage progress of one subject topic.
type Entry struct {
	ID               string `json:"id"`
	TeacherKey       string `json:"teacherId"`
	Subject          string `json:"subject"`
	Topic            string `json:"topic"`
	CompletionStatus int    `json:"completionStatus"`
	LastUpdated      string `json:"lastUpdated"`
}

// NewEntry contains information needed to add a syllabus entry.
type NewEntry struct {
	Subject          string `json:"subject" validate:"required"`
	Topic            string `json:"topic"`
	CompletionStatus int    `json:"completionStatus" validate:"min=0,max=100"`
}

func (ne *NewEntry) Validate() error {
	ne.Subject = core.CleanString(ne.Subject)
	ne.Topic = core.CleanString(ne.Topic)
	return core.Validate.Struct(ne)
}

// UpdateEntry defines the editable fields of a syllabus entry.
type UpdateEntry struct {
	Subject          string `json:"subject" validate:"required"`
	Topic            string `json:"topic"`
	CompletionStatus int    `json:"completionStatus" validate:"min=0,max=100"`
}

func (ue *UpdateEntry) Validate() error {
	ue.Subject = core.CleanString(ue.Subject)
	ue.Topic = core.CleanString(ue.Topic)
	return core.Validate.Struct(ue)
}
