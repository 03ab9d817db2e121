package engine

import (
	"errors"
	"testing"

	"auditdesk/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func reviewedReport(values ...string) *model.AuditReport {
	report := &model.AuditReport{ID: "r1", Score: 90, MaxScore: 100, Status: model.StatusCompleted}
	sec := model.SectionAnswers{SectionName: "Main"}
	for i, v := range values {
		sec.Answers = append(sec.Answers, model.Answer{QuestionID: "q" + string(rune('1'+i)), Value: v})
	}
	report.Sections = []model.SectionAnswers{sec}
	return report
}

func TestReconcileAccuracy(t *testing.T) {
	report := reviewedReport("Yes", "Yes", "No", "Yes", "NA")

	in := ReviewInput{
		MasterAuditor: model.Identity{ID: "m1", Username: "master", Role: model.RoleMasterAuditor},
		MasterRating:  8,
		Ratings: map[string]RatingInput{
			"q3": {ATAAnswer: "Yes", IsCE: true, Comments: "missed the defect"},
			"q4": {IsNCE: true},
		},
	}

	review, err := Reconcile(report, in, 123)
	if err != nil {
		t.Fatal(err)
	}

	m := review.AccuracyMetrics
	if m.TotalQuestions != 5 || m.CorrectAnswers != 3 || m.IncorrectAnswers != 2 {
		t.Fatalf("metrics = %+v", m)
	}
	if m.CEErrors != 1 || m.NCEErrors != 1 {
		t.Fatalf("error classes = CE %d, NCE %d", m.CEErrors, m.NCEErrors)
	}
	if m.OverallAccuracy != 60 {
		t.Fatalf("accuracy = %d, want 60", m.OverallAccuracy)
	}
	if review.ATAScore != 80 {
		t.Fatalf("ataScore = %d, want 80", review.ATAScore)
	}
	if review.Variance != 10 {
		t.Fatalf("variance = %d, want 10", review.Variance)
	}
}

func TestReconcileDefaults(t *testing.T) {
	report := reviewedReport("Yes")

	review, err := Reconcile(report, ReviewInput{MasterRating: 10}, 0)
	if err != nil {
		t.Fatal(err)
	}

	r := review.Ratings[0]
	if r.ATAAnswer != "Yes" || !r.IsCorrect || r.IsCE || r.IsNCE {
		t.Fatalf("unedited answer should default correct: %+v", r)
	}
}

func TestReconcileCEWinsOverNCE(t *testing.T) {
	report := reviewedReport("Yes")

	in := ReviewInput{
		MasterRating: 5,
		Ratings: map[string]RatingInput{
			"q1": {IsCE: true, IsNCE: true, IsCorrect: boolPtr(true)},
		},
	}

	review, err := Reconcile(report, in, 0)
	if err != nil {
		t.Fatal(err)
	}

	r := review.Ratings[0]
	if !r.IsCE || r.IsNCE {
		t.Fatalf("CE must clear NCE: %+v", r)
	}
	if r.IsCorrect {
		t.Fatal("an error class must force the answer incorrect")
	}
}

func TestReconcileFatalOverridesStoredScore(t *testing.T) {
	report := reviewedReport("Yes", model.FatalOption)
	report.Score = 90 // stale: a fatal answer means the true score is 0

	review, err := Reconcile(report, ReviewInput{MasterRating: 3}, 0)
	if err != nil {
		t.Fatal(err)
	}

	if review.OriginalScore != 0 {
		t.Fatalf("originalScore = %d, want 0", review.OriginalScore)
	}
	if review.Variance != 30 {
		t.Fatalf("variance = %d, want 30", review.Variance)
	}
}

func TestReconcileZeroQuestions(t *testing.T) {
	report := &model.AuditReport{ID: "r1", Score: 50}

	review, err := Reconcile(report, ReviewInput{MasterRating: 5}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if review.AccuracyMetrics.OverallAccuracy != 100 {
		t.Fatalf("accuracy = %d, want 100 for empty review", review.AccuracyMetrics.OverallAccuracy)
	}
}

func TestReconcileRatingBounds(t *testing.T) {
	report := reviewedReport("Yes")

	for _, rating := range []int{0, -1, 11} {
		if _, err := Reconcile(report, ReviewInput{MasterRating: rating}, 0); !errors.Is(err, ErrMasterRatingRange) {
			t.Errorf("rating %d: err = %v, want ErrMasterRatingRange", rating, err)
		}
	}
}
