package model

// ReportStatus tracks where a scored report sits in the rebuttal workflow.
// The report's own status field is the sole workflow authority; rebuttal
// records are history, never the source of truth.
type ReportStatus string

const (
	StatusCompleted        ReportStatus = "completed"
	StatusUnderRebuttal    ReportStatus = "under_rebuttal"
	StatusRebuttalRejected ReportStatus = "rebuttal_rejected"
	StatusUnderReRebuttal  ReportStatus = "under_re_rebuttal"
	StatusAccepted         ReportStatus = "accepted"
)

// Valid reports whether s is a known workflow status
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusUnderRebuttal, StatusRebuttalRejected, StatusUnderReRebuttal, StatusAccepted:
		return true
	}
	return false
}

// Terminal reports whether no further workflow action is possible
func (s ReportStatus) Terminal() bool {
	return s == StatusAccepted
}

// Answer is a recorded response to a single question. Spawned repeat
// sections disambiguate their answers with "<id>_repeat_<n>" ids.
type Answer struct {
	QuestionID string `json:"questionId" bson:"questionId"`
	Value      string `json:"answer" bson:"answer"`
	Remarks    string `json:"remarks,omitempty" bson:"remarks,omitempty"`
	Rating     int    `json:"rating,omitempty" bson:"rating,omitempty"`
}

// SectionAnswers groups a report's answers by section, in form order
type SectionAnswers struct {
	SectionName string   `json:"sectionName" bson:"sectionName"`
	Answers     []Answer `json:"answers" bson:"answers"`
}

// EditEntry is one append-only edit-history record
type EditEntry struct {
	Editor    Identity `json:"editor" bson:"editor"`
	Action    string   `json:"action" bson:"action"`
	Timestamp int64    `json:"timestamp" bson:"timestamp"` // epoch ms
}

// AuditReport is a scored audit. Form holds a deep snapshot of the
// form's sections at submission time so later form edits never change
// how a stored report reads back.
type AuditReport struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	FormName    string           `json:"formName" bson:"formName"`
	Agent       Identity         `json:"agent" bson:"agent"`
	Auditor     Identity         `json:"auditor" bson:"auditor"`
	Timestamp   int64            `json:"timestamp" bson:"timestamp"` // epoch ms
	Sections    []SectionAnswers `json:"sections" bson:"sections"`
	Form        []Section        `json:"form" bson:"form"`
	Score       int              `json:"score" bson:"score"`
	MaxScore    int              `json:"maxScore" bson:"maxScore"` // fixed 100
	HasFatal    bool             `json:"hasFatal" bson:"hasFatal"`
	Status      ReportStatus     `json:"status" bson:"status"`
	EditHistory []EditEntry      `json:"editHistory,omitempty" bson:"editHistory,omitempty"`
	ATAReview   *ATAReview       `json:"ataReview,omitempty" bson:"ataReview,omitempty"`
	Rebuttals   []RebuttalRecord `json:"rebuttals,omitempty" bson:"rebuttals,omitempty"`
}

// AnswerMap flattens the report's section answers into questionId -> value
func (r *AuditReport) AnswerMap() map[string]string {
	m := make(map[string]string)
	for _, sec := range r.Sections {
		for _, a := range sec.Answers {
			m[a.QuestionID] = a.Value
		}
	}
	return m
}

// LatestRebuttal returns the most recent rebuttal record, or nil
func (r *AuditReport) LatestRebuttal() *RebuttalRecord {
	if len(r.Rebuttals) == 0 {
		return nil
	}
	return &r.Rebuttals[len(r.Rebuttals)-1]
}
