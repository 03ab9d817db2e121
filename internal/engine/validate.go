package engine

import (
	"strings"

	"auditdesk/internal/model"
)

// MissingQuestion identifies an unanswered mandatory question
type MissingQuestion struct {
	SectionName string `json:"sectionName"`
	QuestionID  string `json:"questionId"`
	Text        string `json:"text"`
}

// ValidationResult is the outcome of a submission-time completeness check
type ValidationResult struct {
	IsValid bool              `json:"isValid"`
	Missing []MissingQuestion `json:"missing,omitempty"`
}

// Validate checks every visible mandatory question for a non-empty
// answer. Hidden sections are skipped wholesale, hidden questions
// individually, so a conditionally hidden question is never required
// even when marked mandatory. Run at submission time only.
func Validate(sections []model.Section, answers map[string]string) ValidationResult {
	var missing []MissingQuestion

	for _, sec := range sections {
		if !SectionVisible(sec, sections, answers) {
			continue
		}
		for _, q := range sec.Questions {
			if !q.Mandatory {
				continue
			}
			if !QuestionVisible(q, sec, answers) {
				continue
			}
			if strings.TrimSpace(answers[q.ID]) == "" {
				missing = append(missing, MissingQuestion{
					SectionName: sec.Name,
					QuestionID:  q.ID,
					Text:        q.Text,
				})
			}
		}
	}

	return ValidationResult{IsValid: len(missing) == 0, Missing: missing}
}
