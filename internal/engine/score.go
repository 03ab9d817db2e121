package engine

import (
	"math"

	"auditdesk/internal/model"
)

// Answer values with scoring meaning
const (
	AnswerYes = "Yes"
	AnswerNo  = "No"
	AnswerNA  = "NA"
)

// ScoreResult is the outcome of scoring one report
type ScoreResult struct {
	Score          int     `json:"score"` // 0-100
	HasFatal       bool    `json:"hasFatal"`
	Deducted       float64 `json:"deducted"`
	TotalWeightage float64 `json:"totalWeightage"`
}

// ComputeScore converts the effective sections (spawned repeats
// included) and the answer map into a percentage score and a fatal
// flag. Total function: a zero denominator yields score 0, never a
// panic.
//
// The denominator counts every question with positive weightage whether
// or not it was answered; an unanswered scored question therefore costs
// nothing but still dilutes deductions.
//
// A fatal question answered "No" is deducted twice: once by the
// fatal-specific pass and once by the generic "No" pass (grazing
// applies to the second only). The two passes are kept structurally
// separate on purpose; regression tests pin the doubled arithmetic.
func ComputeScore(sections []model.Section, answers map[string]string) ScoreResult {
	var totalWeightage, deducted float64
	hasFatal := false

	for _, sec := range sections {
		for _, q := range sec.Questions {
			if q.Weightage <= 0 {
				continue
			}
			totalWeightage += q.Weightage

			value, answered := answers[q.ID]
			if !answered || value == "" {
				continue
			}

			// Fatal-specific pass
			if q.IsFatal {
				switch value {
				case model.FatalOption:
					hasFatal = true
				case AnswerNo:
					deducted += q.Weightage
				}
			}

			// Generic pass, evaluated for every answered value
			switch value {
			case AnswerYes, AnswerNA, model.FatalOption:
				// no deduction; Fatal is handled by the flag
			case AnswerNo:
				if q.GrazingLogic {
					deducted += q.Weightage * q.GrazingPercentage / 100
				} else {
					deducted += q.Weightage
				}
			}
		}
	}

	result := ScoreResult{
		HasFatal:       hasFatal,
		Deducted:       deducted,
		TotalWeightage: totalWeightage,
	}

	if hasFatal || totalWeightage == 0 {
		result.Score = 0
		return result
	}

	score := int(math.Round(100 - deducted/totalWeightage*100))
	if score < 0 {
		score = 0
	}
	result.Score = score
	return result
}
