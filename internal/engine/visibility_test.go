package engine

import (
	"testing"

	"auditdesk/internal/model"
)

func TestSectionVisible(t *testing.T) {
	controlled := model.Section{Name: "Escalation", ControlledBy: "q_escalated"}
	form := []model.Section{
		{
			Name: "Opening",
			Questions: []model.Question{
				{ID: "q_escalated", Text: "Was the call escalated?", ControlsSection: "Escalation", VisibleOnValues: "Yes, Maybe"},
			},
		},
		controlled,
	}

	cases := []struct {
		name    string
		section model.Section
		answers map[string]string
		want    bool
	}{
		{"no controller marker is always visible", form[0], nil, true},
		{"controlling answer in set", controlled, map[string]string{"q_escalated": "Yes"}, true},
		{"trimmed member of set", controlled, map[string]string{"q_escalated": "Maybe"}, true},
		{"controlling answer not in set", controlled, map[string]string{"q_escalated": "No"}, false},
		{"unanswered controller hides", controlled, map[string]string{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SectionVisible(tc.section, form, tc.answers); got != tc.want {
				t.Errorf("SectionVisible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSectionVisibleFailOpen(t *testing.T) {
	// ControlledBy set but no question in the form targets the section
	orphan := model.Section{Name: "Orphan", ControlledBy: "gone"}
	form := []model.Section{{Name: "Main"}, orphan}

	if !SectionVisible(orphan, form, map[string]string{}) {
		t.Fatal("section with missing controller must stay visible")
	}
}

func TestQuestionVisible(t *testing.T) {
	owner := model.Section{
		Name: "Main",
		Questions: []model.Question{
			{ID: "q_type", Text: "Issue type", Options: "Billing, Technical"},
			{ID: "q_refund", Text: "Refund offered?", ControlledBy: "q_type", VisibleOnValues: "Billing"},
		},
	}
	dependent := owner.Questions[1]

	cases := []struct {
		name    string
		q       model.Question
		answers map[string]string
		want    bool
	}{
		{"no controller is always visible", owner.Questions[0], nil, true},
		{"controlling answer matches", dependent, map[string]string{"q_type": "Billing"}, true},
		{"controlling answer differs", dependent, map[string]string{"q_type": "Technical"}, false},
		{"unanswered controller hides", dependent, map[string]string{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := QuestionVisible(tc.q, owner, tc.answers); got != tc.want {
				t.Errorf("QuestionVisible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestQuestionVisibleFailOpen(t *testing.T) {
	owner := model.Section{
		Name: "Main",
		Questions: []model.Question{
			{ID: "q_dep", ControlledBy: "missing", VisibleOnValues: "Yes"},
		},
	}

	if !QuestionVisible(owner.Questions[0], owner, map[string]string{}) {
		t.Fatal("question with missing controller must stay visible")
	}
}

func TestQuestionVisibleControllerMustBeInSameSection(t *testing.T) {
	owner := model.Section{
		Name: "Main",
		Questions: []model.Question{
			{ID: "q_dep", ControlledBy: "q_ctrl", VisibleOnValues: "Yes"},
		},
	}

	// q_ctrl lives in another section, so lookup fails and we fail open
	if !QuestionVisible(owner.Questions[0], owner, map[string]string{"q_ctrl": "No"}) {
		t.Fatal("cross-section controller must not hide the question")
	}
}
