package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"auditdesk/internal/model"
)

const (
	// interactionTrigger is matched case-insensitively against the text
	// of the question whose answer just changed
	interactionTrigger = "another interaction"
	// affirmative is the answer value that spawns a new instance
	affirmative = "Yes"

	repeatSeparator = "_repeat_"
)

var (
	interactionNameRe = regexp.MustCompile(`^Interaction (\d+)$`)
	repeatSuffixRe    = regexp.MustCompile(`_repeat_(\d+)$`)
)

// SpawnInteraction materializes the next instance of the repeatable
// section when the changed question asks for another interaction and
// the answer is affirmative. Returns (nil, false) when nothing should
// spawn: wrong trigger, negative answer, or no repeatable template in
// the form. Index derivation scans both already-spawned section names
// and raw answer-key suffixes, so a reload that lost spawned-section
// state but kept answers never duplicates an index.
func SpawnInteraction(changed model.Question, value string, sections []model.Section, answers map[string]string) (*model.Section, bool) {
	if !strings.Contains(strings.ToLower(changed.Text), interactionTrigger) || value != affirmative {
		return nil, false
	}

	template := findRepeatableTemplate(sections)
	if template == nil {
		return nil, false
	}

	n := NextInteractionIndex(sections, answers)
	clone := CloneSection(*template, n)
	return &clone, true
}

// NextInteractionIndex computes the index for the next spawned
// instance: 1 + the highest index already present in spawned section
// names or in _repeat_<k> answer keys, never below 2.
func NextInteractionIndex(sections []model.Section, answers map[string]string) int {
	max := 1
	for _, sec := range sections {
		if m := interactionNameRe.FindStringSubmatch(sec.Name); m != nil {
			if k, err := strconv.Atoi(m[1]); err == nil && k > max {
				max = k
			}
		}
	}
	for key := range answers {
		if m := repeatSuffixRe.FindStringSubmatch(key); m != nil {
			if k, err := strconv.Atoi(m[1]); err == nil && k > max {
				max = k
			}
		}
	}
	return max + 1
}

// CloneSection copies the repeatable template into instance n, naming
// it "Interaction n" and rewriting question ids to <id>_repeat_<n>.
// Intra-section ControlledBy references are rewritten the same way so
// conditional questions keep resolving inside the clone.
func CloneSection(template model.Section, n int) model.Section {
	clone := model.Section{
		Name:      fmt.Sprintf("Interaction %d", n),
		Questions: make([]model.Question, len(template.Questions)),
	}
	for i, q := range template.Questions {
		q.ID = RepeatID(q.ID, n)
		if q.ControlledBy != "" {
			q.ControlledBy = RepeatID(q.ControlledBy, n)
		}
		clone.Questions[i] = q
	}
	return clone
}

// RepeatID builds the disambiguated question id for instance n
func RepeatID(id string, n int) string {
	return id + repeatSeparator + strconv.Itoa(n)
}

// EffectiveSections returns the form's sections plus one spawned
// instance for every repeat index implied by the answer keys. Reports
// persist answers, not spawned-section state, so scoring and validation
// rebuild the instances from the answers alone.
func EffectiveSections(sections []model.Section, answers map[string]string) []model.Section {
	effective := make([]model.Section, len(sections))
	copy(effective, sections)

	template := findRepeatableTemplate(sections)
	if template == nil {
		return effective
	}

	seen := map[int]bool{}
	for key := range answers {
		if m := repeatSuffixRe.FindStringSubmatch(key); m != nil {
			if k, err := strconv.Atoi(m[1]); err == nil && k >= 2 {
				seen[k] = true
			}
		}
	}

	// Deterministic order: ascending instance index
	maxIdx := 0
	for k := range seen {
		if k > maxIdx {
			maxIdx = k
		}
	}
	for k := 2; k <= maxIdx; k++ {
		if seen[k] {
			effective = append(effective, CloneSection(*template, k))
		}
	}
	return effective
}

func findRepeatableTemplate(sections []model.Section) *model.Section {
	for i := range sections {
		if sections[i].IsRepeatable {
			return &sections[i]
		}
	}
	return nil
}
