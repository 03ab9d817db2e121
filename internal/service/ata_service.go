package service

import (
	"context"
	"errors"
	"log"
	"time"

	"auditdesk/internal/cache"
	"auditdesk/internal/engine"
	"auditdesk/internal/model"
	"auditdesk/internal/repository"
)

var ErrNoATAReview = errors.New("report has no ATA review")

// ATAService runs master-auditor reconciliation over completed reports
type ATAService struct {
	reportRepo  repository.ReportRepo
	scoreboard  cache.ScoreboardCache
	broadcaster Broadcaster
}

// NewATAService creates a new ATA service
func NewATAService(reportRepo repository.ReportRepo, scoreboard cache.ScoreboardCache) *ATAService {
	return &ATAService{
		reportRepo: reportRepo,
		scoreboard: scoreboard,
	}
}

// SetBroadcaster sets the broadcaster for dashboard events
func (s *ATAService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Review reconciles the master auditor's answers against the report and
// attaches the resulting review. A later review replaces the previous
// one outright; the original auditor's accuracy feeds the auditor
// scoreboard.
func (s *ATAService) Review(ctx context.Context, reportID string, in engine.ReviewInput) (*model.ATAReview, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	now := time.Now().UnixMilli()
	review, err := engine.Reconcile(report, in, now)
	if err != nil {
		return nil, err
	}

	report.ATAReview = review
	report.EditHistory = append(report.EditHistory, model.EditEntry{
		Editor:    in.MasterAuditor,
		Action:    "ata_review",
		Timestamp: now,
	})

	if err := s.reportRepo.Replace(ctx, report); err != nil {
		return nil, err
	}

	if err := s.scoreboard.Record(ctx, cache.BoardAuditors, report.Auditor.ID, float64(review.AccuracyMetrics.OverallAccuracy)); err != nil {
		log.Printf("scoreboard update failed for auditor %s: %v", report.Auditor.ID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToDashboard(EventATAReviewed, map[string]interface{}{
			"reportId": report.ID,
			"accuracy": review.AccuracyMetrics.OverallAccuracy,
			"variance": review.Variance,
		})
	}

	return review, nil
}

// GetReview returns the report's ATA review
func (s *ATAService) GetReview(ctx context.Context, reportID string) (*model.ATAReview, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if report.ATAReview == nil {
		return nil, ErrNoATAReview
	}
	return report.ATAReview, nil
}
