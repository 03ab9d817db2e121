package service

import (
	"context"
	"errors"
	"time"

	"auditdesk/internal/engine"
	"auditdesk/internal/model"
	"auditdesk/internal/repository"

	"github.com/google/uuid"
)

// ErrStatusConflict means another actor moved the report between our
// read and our write; the caller should reload and retry
var ErrStatusConflict = errors.New("report status changed concurrently")

// RebuttalService applies workflow actions to scored reports
type RebuttalService struct {
	reportRepo  repository.ReportRepo
	broadcaster Broadcaster
}

// NewRebuttalService creates a new rebuttal service
func NewRebuttalService(reportRepo repository.ReportRepo) *RebuttalService {
	return &RebuttalService{
		reportRepo: reportRepo,
	}
}

// SetBroadcaster sets the broadcaster for dashboard events
func (s *RebuttalService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Act reads the report's current status, applies one workflow action
// through the transition table, and writes back guarded on the status
// it read. Partner and management acting near-simultaneously therefore
// cannot produce a lost update: the second writer gets ErrStatusConflict.
func (s *RebuttalService) Act(ctx context.Context, reportID string, in engine.RebuttalInput) (*model.AuditReport, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	previous := report.Status
	now := time.Now().UnixMilli()

	if err := engine.ApplyRebuttal(report, uuid.New().String(), in, now); err != nil {
		return nil, err
	}

	report.EditHistory = append(report.EditHistory, model.EditEntry{
		Editor:    in.Actor,
		Action:    "rebuttal_" + string(in.Action),
		Timestamp: now,
	})

	ok, err := s.reportRepo.ReplaceIfStatus(ctx, report, previous)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStatusConflict
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToDashboard(EventRebuttalUpdate, map[string]interface{}{
			"reportId": report.ID,
			"status":   report.Status,
			"action":   in.Action,
		})
	}

	return report, nil
}
