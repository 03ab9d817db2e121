package engine

import (
	"math/rand"
	"testing"

	"auditdesk/internal/model"
)

func scored(id string, w float64) model.Question {
	return model.Question{ID: id, Text: id, Type: model.QuestionTypeDropdown, Options: "Yes, No, NA", Weightage: w}
}

func TestComputeScore(t *testing.T) {
	cases := []struct {
		name      string
		questions []model.Question
		answers   map[string]string
		wantScore int
		wantFatal bool
	}{
		{
			name:      "all yes scores 100",
			questions: []model.Question{scored("q1", 10), scored("q2", 20)},
			answers:   map[string]string{"q1": "Yes", "q2": "Yes"},
			wantScore: 100,
		},
		{
			name:      "single no deducts full weightage",
			questions: []model.Question{scored("q1", 10)},
			answers:   map[string]string{"q1": "No"},
			wantScore: 0,
		},
		{
			name: "fatal no deducts twice and clamps at zero",
			questions: []model.Question{
				func() model.Question { q := scored("q1", 50); q.IsFatal = true; return q }(),
				scored("q2", 5),
			},
			answers:   map[string]string{"q1": "No", "q2": "Yes"},
			wantScore: 0,
		},
		{
			name: "fatal answer zeroes the score",
			questions: []model.Question{
				func() model.Question { q := scored("q1", 10); q.IsFatal = true; return q }(),
				scored("q2", 90),
			},
			answers:   map[string]string{"q1": model.FatalOption, "q2": "Yes"},
			wantScore: 0,
			wantFatal: true,
		},
		{
			name: "grazing deducts a percentage",
			questions: []model.Question{
				func() model.Question {
					q := scored("q1", 10)
					q.GrazingLogic = true
					q.GrazingPercentage = 50
					return q
				}(),
				scored("q2", 10),
			},
			answers:   map[string]string{"q1": "No", "q2": "Yes"},
			wantScore: 75, // 5 of 20 deducted
		},
		{
			name:      "na contributes no deduction",
			questions: []model.Question{scored("q1", 10), scored("q2", 10)},
			answers:   map[string]string{"q1": "NA", "q2": "No"},
			wantScore: 50,
		},
		{
			name:      "unanswered stays in denominator",
			questions: []model.Question{scored("q1", 10), scored("q2", 10)},
			answers:   map[string]string{"q1": "No"},
			wantScore: 50,
		},
		{
			name:      "zero weightage questions are ignored",
			questions: []model.Question{scored("q1", 10), scored("q2", 0)},
			answers:   map[string]string{"q1": "Yes", "q2": "No"},
			wantScore: 100,
		},
		{
			name:      "zero denominator yields zero",
			questions: []model.Question{scored("q1", 0)},
			answers:   map[string]string{"q1": "Yes"},
			wantScore: 0,
		},
		{
			name:      "no questions yields zero",
			questions: nil,
			answers:   map[string]string{},
			wantScore: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sections := []model.Section{{Name: "Main", Questions: tc.questions}}
			got := ComputeScore(sections, tc.answers)
			if got.Score != tc.wantScore {
				t.Errorf("score = %d, want %d (deducted %.1f of %.1f)", got.Score, tc.wantScore, got.Deducted, got.TotalWeightage)
			}
			if got.HasFatal != tc.wantFatal {
				t.Errorf("hasFatal = %v, want %v", got.HasFatal, tc.wantFatal)
			}
		})
	}
}

// Pins the doubled deduction for a fatal question answered "No": the
// fatal-specific pass and the generic pass both fire, grazing applying
// to the second only. Intentional until a product decision changes it.
func TestComputeScoreFatalNoDoubleDeduction(t *testing.T) {
	q := scored("q1", 40)
	q.IsFatal = true
	q.GrazingLogic = true
	q.GrazingPercentage = 25
	sections := []model.Section{{Name: "Main", Questions: []model.Question{q, scored("q2", 60)}}}

	got := ComputeScore(sections, map[string]string{"q1": "No", "q2": "Yes"})

	// 40 (fatal pass) + 10 (grazed generic pass) of 100
	if got.Deducted != 50 {
		t.Fatalf("deducted = %.1f, want 50", got.Deducted)
	}
	if got.Score != 50 {
		t.Fatalf("score = %d, want 50", got.Score)
	}
}

func TestComputeScoreSpansSections(t *testing.T) {
	sections := []model.Section{
		{Name: "A", Questions: []model.Question{scored("a1", 10)}},
		{Name: "Interaction 2", Questions: []model.Question{scored("a1_repeat_2", 10)}},
	}
	got := ComputeScore(sections, map[string]string{"a1": "Yes", "a1_repeat_2": "No"})
	if got.Score != 50 {
		t.Fatalf("score = %d, want 50", got.Score)
	}
}

func TestComputeScoreInvariants(t *testing.T) {
	values := []string{"Yes", "No", "NA", model.FatalOption, ""}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		var questions []model.Question
		answers := map[string]string{}
		n := rng.Intn(8)
		for j := 0; j < n; j++ {
			q := scored(string(rune('a'+j)), float64(rng.Intn(11)))
			q.IsFatal = rng.Intn(4) == 0
			if rng.Intn(3) == 0 {
				q.GrazingLogic = true
				q.GrazingPercentage = float64(1 + rng.Intn(100))
			}
			questions = append(questions, q)
			if v := values[rng.Intn(len(values))]; v != "" {
				answers[q.ID] = v
			}
		}

		got := ComputeScore([]model.Section{{Name: "Main", Questions: questions}}, answers)
		if got.Score < 0 || got.Score > 100 {
			t.Fatalf("score %d out of range for case %d", got.Score, i)
		}
		if got.HasFatal && got.Score != 0 {
			t.Fatalf("hasFatal with score %d for case %d", got.Score, i)
		}
	}
}
