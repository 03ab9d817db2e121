package engine

import (
	"errors"
	"math"

	"auditdesk/internal/model"
)

// ErrMasterRatingRange means the master auditor's rating fell outside 1-10
var ErrMasterRatingRange = errors.New("master rating must be between 1 and 10")

// RatingInput is the master auditor's judgement of one original answer.
// Zero values fall back to "unedited and correct": an empty ATAAnswer
// keeps the original, a nil IsCorrect defaults to true.
type RatingInput struct {
	ATAAnswer string `json:"ataAnswer,omitempty"`
	IsCorrect *bool  `json:"isCorrect,omitempty"`
	IsCE      bool   `json:"isCE,omitempty"`
	IsNCE     bool   `json:"isNCE,omitempty"`
	Comments  string `json:"comments,omitempty"`
}

// ReviewInput is a full ATA review submission
type ReviewInput struct {
	MasterAuditor model.Identity         `json:"masterAuditor"`
	MasterRating  int                    `json:"masterRating"` // 1-10
	Ratings       map[string]RatingInput `json:"ratings"`      // keyed by question id
}

// Reconcile compares the master auditor's re-answers against the
// report's original answers and produces the immutable ATA review. The
// CE and NCE flags are mutually exclusive (CE wins when both arrive)
// and either one forces the answer incorrect. The original score is
// recomputed with the fatal override re-applied rather than trusting
// the stored value.
func Reconcile(report *model.AuditReport, in ReviewInput, now int64) (*model.ATAReview, error) {
	if in.MasterRating < 1 || in.MasterRating > 10 {
		return nil, ErrMasterRatingRange
	}

	review := &model.ATAReview{
		AuditReportID: report.ID,
		MasterAuditor: in.MasterAuditor,
		Timestamp:     now,
	}

	hasFatalAnswer := false
	for _, sec := range report.Sections {
		for _, ans := range sec.Answers {
			if ans.Value == model.FatalOption {
				hasFatalAnswer = true
			}

			input := in.Ratings[ans.QuestionID]

			rating := model.QuestionRating{
				QuestionID:    ans.QuestionID,
				AuditorAnswer: ans.Value,
				ATAAnswer:     ans.Value,
				IsCorrect:     true,
				Comments:      input.Comments,
			}
			if input.ATAAnswer != "" {
				rating.ATAAnswer = input.ATAAnswer
			}
			if input.IsCorrect != nil {
				rating.IsCorrect = *input.IsCorrect
			}
			if input.IsCE {
				rating.IsCE = true
			} else if input.IsNCE {
				rating.IsNCE = true
			}
			if rating.IsCE || rating.IsNCE {
				rating.IsCorrect = false
			}

			review.Ratings = append(review.Ratings, rating)
		}
	}

	m := &review.AccuracyMetrics
	m.TotalQuestions = len(review.Ratings)
	for _, r := range review.Ratings {
		if r.IsCorrect {
			m.CorrectAnswers++
			continue
		}
		m.IncorrectAnswers++
		if r.IsCE {
			m.CEErrors++
		}
		if r.IsNCE {
			m.NCEErrors++
		}
	}
	if m.TotalQuestions == 0 {
		m.OverallAccuracy = 100
	} else {
		m.OverallAccuracy = int(math.Round(float64(m.CorrectAnswers) / float64(m.TotalQuestions) * 100))
	}

	review.OriginalScore = report.Score
	if hasFatalAnswer {
		review.OriginalScore = 0
	}
	review.ATAScore = in.MasterRating * 10
	review.Variance = review.OriginalScore - review.ATAScore
	if review.Variance < 0 {
		review.Variance = -review.Variance
	}

	return review, nil
}
