package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"auditdesk/internal/cache"
	"auditdesk/internal/engine"
	"auditdesk/internal/model"
	"auditdesk/internal/repository"

	"github.com/google/uuid"
)

var ErrReportNotFound = errors.New("audit report not found")

// ValidationError carries the full list of missing mandatory questions
// back to the caller; nothing is persisted when it is returned
type ValidationError struct {
	Result engine.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submission incomplete: %d mandatory questions unanswered", len(e.Result.Missing))
}

// SubmitRequest is an audit submission
type SubmitRequest struct {
	FormName string                 `json:"formName"`
	Agent    model.Identity         `json:"agent"`
	Sections []model.SectionAnswers `json:"sections"`
}

// PreviewResult is the dry-run outcome for an in-progress audit
type PreviewResult struct {
	Validation engine.ValidationResult `json:"validation"`
	Score      engine.ScoreResult      `json:"score"`
}

// AuditService scores and persists audit submissions
type AuditService struct {
	formSvc     *FormService
	reportRepo  repository.ReportRepo
	scoreboard  cache.ScoreboardCache
	broadcaster Broadcaster
}

// NewAuditService creates a new audit service
func NewAuditService(formSvc *FormService, reportRepo repository.ReportRepo, scoreboard cache.ScoreboardCache) *AuditService {
	return &AuditService{
		formSvc:    formSvc,
		reportRepo: reportRepo,
		scoreboard: scoreboard,
	}
}

// SetBroadcaster sets the broadcaster for dashboard events
func (s *AuditService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates and scores a completed audit, then persists it as a
// new report in status completed. Visibility always resolves before
// validation and scoring; spawned repeat sections are rebuilt from the
// answer keys so a client reload cannot lose instances.
func (s *AuditService) Submit(ctx context.Context, auditor model.Identity, req *SubmitRequest) (*model.AuditReport, error) {
	form, err := s.formSvc.GetByName(ctx, req.FormName)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}

	answers := flattenAnswers(req.Sections)
	effective := engine.EffectiveSections(form.Sections, answers)
	warnStaleAnswers(req.FormName, effective, answers)

	validation := engine.Validate(effective, answers)
	if !validation.IsValid {
		return nil, &ValidationError{Result: validation}
	}

	score := engine.ComputeScore(effective, answers)
	now := time.Now().UnixMilli()

	report := &model.AuditReport{
		ID:        uuid.New().String(),
		FormName:  form.Name,
		Agent:     req.Agent,
		Auditor:   auditor,
		Timestamp: now,
		Sections:  req.Sections,
		Form:      effective,
		Score:     score.Score,
		MaxScore:  100,
		HasFatal:  score.HasFatal,
		Status:    model.StatusCompleted,
		EditHistory: []model.EditEntry{
			{Editor: auditor, Action: "submitted", Timestamp: now},
		},
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	if err := s.scoreboard.Record(ctx, cache.BoardAgents, req.Agent.ID, float64(score.Score)); err != nil {
		log.Printf("scoreboard update failed for agent %s: %v", req.Agent.ID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToDashboard(EventReportSubmitted, map[string]interface{}{
			"reportId": report.ID,
			"formName": report.FormName,
			"score":    report.Score,
			"hasFatal": report.HasFatal,
		})
	}

	return report, nil
}

// Preview runs validation and scoring without persisting anything
func (s *AuditService) Preview(ctx context.Context, req *SubmitRequest) (*PreviewResult, error) {
	form, err := s.formSvc.GetByName(ctx, req.FormName)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}

	answers := flattenAnswers(req.Sections)
	effective := engine.EffectiveSections(form.Sections, answers)

	return &PreviewResult{
		Validation: engine.Validate(effective, answers),
		Score:      engine.ComputeScore(effective, answers),
	}, nil
}

// Get returns one report by id
func (s *AuditService) Get(ctx context.Context, id string) (*model.AuditReport, error) {
	return s.reportRepo.GetByID(ctx, id)
}

// List returns reports matching the filter, newest first
func (s *AuditService) List(ctx context.Context, filter repository.ReportFilter) ([]*model.AuditReport, error) {
	return s.reportRepo.List(ctx, filter)
}

func flattenAnswers(sections []model.SectionAnswers) map[string]string {
	m := make(map[string]string)
	for _, sec := range sections {
		for _, a := range sec.Answers {
			m[a.QuestionID] = a.Value
		}
	}
	return m
}

// warnStaleAnswers logs answers whose question id resolves nowhere in
// the effective section list, e.g. a stale repeat index. They are
// skipped, not fatal, to stay tolerant of partially-migrated data.
func warnStaleAnswers(formName string, sections []model.Section, answers map[string]string) {
	known := make(map[string]bool)
	for _, sec := range sections {
		for _, q := range sec.Questions {
			known[q.ID] = true
		}
	}
	for id := range answers {
		if !known[id] {
			log.Printf("form %q: answer for unknown question %q skipped", formName, id)
		}
	}
}
