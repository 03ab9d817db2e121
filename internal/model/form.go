package model

import "strings"

// QuestionType defines the input type of a question
type QuestionType string

const (
	QuestionTypeText        QuestionType = "text"
	QuestionTypeDropdown    QuestionType = "dropdown"
	QuestionTypeMultiSelect QuestionType = "multiSelect"
	QuestionTypeNumber      QuestionType = "number"
	QuestionTypePartner     QuestionType = "partner"
)

// FatalOption is the synthetic answer value that zeroes the report score.
// It is never stored in a question's Options string; renderers and the
// scorer reconstruct it for fatal questions.
const FatalOption = "Fatal"

// Question is a single scorable item inside a section
type Question struct {
	ID                string       `json:"id" bson:"id"`
	Text              string       `json:"text" bson:"text"`
	Type              QuestionType `json:"type" bson:"type"`
	Options           string       `json:"options,omitempty" bson:"options,omitempty"` // comma-separated
	Weightage         float64      `json:"weightage" bson:"weightage"`                 // 0 means informational, non-scored
	DeductionPoints   float64      `json:"deductionPoints,omitempty" bson:"deductionPoints,omitempty"`
	Mandatory         bool         `json:"mandatory" bson:"mandatory"`
	IsFatal           bool         `json:"isFatal" bson:"isFatal"`
	EnableRemarks     bool         `json:"enableRemarks,omitempty" bson:"enableRemarks,omitempty"`
	GrazingLogic      bool         `json:"grazingLogic,omitempty" bson:"grazingLogic,omitempty"`
	GrazingPercentage float64      `json:"grazingPercentage,omitempty" bson:"grazingPercentage,omitempty"` // 1-100
	ControlledBy      string       `json:"controlledBy,omitempty" bson:"controlledBy,omitempty"`           // controlling question id in same section
	ControlsSection   string       `json:"controlsSection,omitempty" bson:"controlsSection,omitempty"`     // section name this answer shows/hides
	VisibleOnValues   string       `json:"visibleOnValues,omitempty" bson:"visibleOnValues,omitempty"`     // comma-separated
}

// Section groups questions; a repeatable section is a template cloned
// into "Interaction N" instances at audit time
type Section struct {
	Name         string     `json:"name" bson:"name"`
	Questions    []Question `json:"questions" bson:"questions"`
	IsRepeatable bool       `json:"isRepeatable,omitempty" bson:"isRepeatable,omitempty"`
	ControlledBy string     `json:"controlledBy,omitempty" bson:"controlledBy,omitempty"`
}

// FormDefinition is an audit form template. Immutable once a submitted
// report references it: reports keep their own deep section snapshot.
type FormDefinition struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Sections  []Section `json:"sections" bson:"sections"`
	CreatedBy string    `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt int64     `json:"createdAt" bson:"createdAt"` // epoch ms
	UpdatedAt int64     `json:"updatedAt" bson:"updatedAt"` // epoch ms
}

// OptionList splits the stored comma-separated options
func (q *Question) OptionList() []string {
	return SplitValues(q.Options)
}

// DisplayOptions returns the options a renderer must offer, with the
// synthetic Fatal option appended for fatal questions
func (q *Question) DisplayOptions() []string {
	opts := q.OptionList()
	if q.IsFatal {
		opts = append(opts, FatalOption)
	}
	return opts
}

// VisibleOnList splits the visibility value set
func (q *Question) VisibleOnList() []string {
	return SplitValues(q.VisibleOnValues)
}

// SplitValues splits a comma-separated wire string, trimming each entry
// and dropping empties
func SplitValues(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
