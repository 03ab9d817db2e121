// Package engine holds the audit core: visibility resolution, section
// expansion, mandatory validation, scoring, ATA reconciliation and the
// rebuttal state machine. Everything here is a pure function of the
// form snapshot and the current answer map; persistence and transport
// live elsewhere.
package engine

import "auditdesk/internal/model"

// SectionVisible reports whether a section is active given the current
// answers. A section with no ControlledBy marker is always visible. The
// controlling question is the one whose ControlsSection targets this
// section, searched across the whole form; if it cannot be found the
// section stays visible (fail-open, tolerates malformed legacy forms).
func SectionVisible(section model.Section, sections []model.Section, answers map[string]string) bool {
	if section.ControlledBy == "" {
		return true
	}

	controller := findSectionController(section.Name, sections)
	if controller == nil {
		return true
	}

	return contains(controller.VisibleOnList(), answers[controller.ID])
}

// QuestionVisible reports whether a question is active within its
// owning section. The controlling question is looked up by id in the
// same section; if absent, fail-open. Membership is checked against the
// dependent question's own VisibleOnValues set.
func QuestionVisible(q model.Question, owner model.Section, answers map[string]string) bool {
	if q.ControlledBy == "" {
		return true
	}

	var controller *model.Question
	for i := range owner.Questions {
		if owner.Questions[i].ID == q.ControlledBy {
			controller = &owner.Questions[i]
			break
		}
	}
	if controller == nil {
		return true
	}

	return contains(q.VisibleOnList(), answers[controller.ID])
}

func findSectionController(sectionName string, sections []model.Section) *model.Question {
	for i := range sections {
		for j := range sections[i].Questions {
			if sections[i].Questions[j].ControlsSection == sectionName {
				return &sections[i].Questions[j]
			}
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, val := range values {
		if val == v {
			return true
		}
	}
	return false
}
