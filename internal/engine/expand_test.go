package engine

import (
	"testing"

	"auditdesk/internal/model"
)

func interactionForm() []model.Section {
	return []model.Section{
		{Name: "Opening", Questions: []model.Question{{ID: "q_greeting", Weightage: 10}}},
		{
			Name:         "Interaction 1",
			IsRepeatable: true,
			Questions: []model.Question{
				{ID: "q_res", Text: "Did the agent resolve the issue?", Weightage: 30},
				{ID: "q_res_detail", Text: "Detail", ControlledBy: "q_res", VisibleOnValues: "No"},
				{ID: "q_another", Text: "Was there another interaction on this call?"},
			},
		},
	}
}

func TestSpawnInteraction(t *testing.T) {
	form := interactionForm()
	trigger := form[1].Questions[2]

	sec, ok := SpawnInteraction(trigger, "Yes", form, map[string]string{})
	if !ok {
		t.Fatal("expected a spawned section")
	}
	if sec.Name != "Interaction 2" {
		t.Fatalf("name = %q, want Interaction 2", sec.Name)
	}
	if sec.Questions[0].ID != "q_res_repeat_2" {
		t.Fatalf("question id = %q, want q_res_repeat_2", sec.Questions[0].ID)
	}
	if sec.Questions[1].ControlledBy != "q_res_repeat_2" {
		t.Fatalf("controlledBy = %q, want q_res_repeat_2", sec.Questions[1].ControlledBy)
	}
	if sec.IsRepeatable {
		t.Fatal("spawned instance must not itself be a template")
	}
}

func TestSpawnInteractionNoTrigger(t *testing.T) {
	form := interactionForm()

	if _, ok := SpawnInteraction(form[1].Questions[2], "No", form, nil); ok {
		t.Fatal("negative answer must not spawn")
	}
	if _, ok := SpawnInteraction(form[0].Questions[0], "Yes", form, nil); ok {
		t.Fatal("non-trigger question must not spawn")
	}
}

func TestSpawnInteractionNoTemplate(t *testing.T) {
	form := []model.Section{{Name: "Main", Questions: []model.Question{
		{ID: "q_another", Text: "Another interaction?"},
	}}}

	if _, ok := SpawnInteraction(form[0].Questions[0], "Yes", form, nil); ok {
		t.Fatal("form without a repeatable template must no-op")
	}
}

func TestNextInteractionIndex(t *testing.T) {
	form := interactionForm()

	cases := []struct {
		name     string
		sections []model.Section
		answers  map[string]string
		want     int
	}{
		{"fresh form", form, map[string]string{}, 2},
		{
			"spawned sections counted",
			append(interactionForm(), CloneSection(form[1], 2), CloneSection(form[1], 3)),
			map[string]string{},
			4,
		},
		{
			"answer keys counted after reload",
			form,
			map[string]string{"q_res_repeat_2": "Yes", "q_res_repeat_5": "No"},
			6,
		},
		{
			"max of both sources wins",
			append(interactionForm(), CloneSection(form[1], 4)),
			map[string]string{"q_res_repeat_2": "Yes"},
			5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextInteractionIndex(tc.sections, tc.answers); got != tc.want {
				t.Errorf("NextInteractionIndex = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSpawnInteractionNeverDuplicatesIndex(t *testing.T) {
	form := interactionForm()
	answers := map[string]string{}

	sec, ok := SpawnInteraction(form[1].Questions[2], "Yes", form, answers)
	if !ok {
		t.Fatal("expected spawn")
	}
	form = append(form, *sec)
	// The user answered inside the new instance and triggers again
	answers[RepeatID("q_res", 2)] = "Yes"

	sec2, ok := SpawnInteraction(form[1].Questions[2], "Yes", form, answers)
	if !ok {
		t.Fatal("expected second spawn")
	}
	if sec2.Name == sec.Name {
		t.Fatalf("duplicate instance %q spawned", sec2.Name)
	}
	if sec2.Name != "Interaction 3" {
		t.Fatalf("name = %q, want Interaction 3", sec2.Name)
	}
}

func TestEffectiveSections(t *testing.T) {
	form := interactionForm()
	answers := map[string]string{
		"q_greeting":     "Yes",
		"q_res":          "Yes",
		"q_res_repeat_2": "No",
		"q_res_repeat_3": "Yes",
	}

	effective := EffectiveSections(form, answers)
	if len(effective) != 4 {
		t.Fatalf("len = %d, want 4", len(effective))
	}
	if effective[2].Name != "Interaction 2" || effective[3].Name != "Interaction 3" {
		t.Fatalf("unexpected order: %q, %q", effective[2].Name, effective[3].Name)
	}
}

func TestEffectiveSectionsWithoutRepeats(t *testing.T) {
	form := interactionForm()
	effective := EffectiveSections(form, map[string]string{"q_greeting": "Yes"})
	if len(effective) != len(form) {
		t.Fatalf("len = %d, want %d", len(effective), len(form))
	}
}
