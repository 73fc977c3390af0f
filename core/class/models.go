package class

import "github.com/trezcool/walimu/core"

// Collection is the record store collection holding class sessions.
const Collection = "classes"

// Session is one taught class period.
type Session struct {
	ID              string   `json:"id"`
	TeacherKey      string   `json:"teacherId"`
	Subject         string   `json:"subject"`
	Date            string   `json:"date"`
	Period          int      `json:"period"`
	AttendanceCount int      `json:"attendanceCount"`
	TopicsCovered   []string `json:"topicsCovered"`
}

// NewSession contains information needed to record a new class.
type NewSession struct {
	Subject         string   `json:"subject" validate:"required"`
	Date            string   `json:"date" validate:"required"`
	Period          int      `json:"period" validate:"required,min=1,max=10"`
	AttendanceCount int      `json:"attendanceCount" validate:"min=0"`
	TopicsCovered   []string `json:"topicsCovered"`
}

func (ns *NewSession) Validate() error {
	ns.Subject = core.CleanString(ns.Subject)
	ns.Date = core.CleanString(ns.Date)
	return core.Validate.Struct(ns)
}

// UpdateSession defines the editable fields of a class session.
type UpdateSession struct {
	Subject       string   `json:"subject" validate:"required"`
	Date          string   `json:"date" validate:"required"`
	Period        int      `json:"period" validate:"required,min=1,max=10"`
	TopicsCovered []string `json:"topicsCovered"`
}

func (us *UpdateSession) Validate() error {
	us.Subject = core.CleanString(us.Subject)
	us.Date = core.CleanString(us.Date)
	return core.Validate.Struct(us)
}
