package engine

import (
	"errors"

	"auditdesk/internal/model"
)

var (
	// ErrIllegalTransition means the action is not legal from the
	// report's current status for the acting role
	ErrIllegalTransition = errors.New("action not allowed from current report status")
	// ErrRebuttalTextRequired means a dispute was raised without text
	ErrRebuttalTextRequired = errors.New("rebuttal text is required")
	// ErrHandlerResponseRequired means management rejected a rebuttal
	// without a response
	ErrHandlerResponseRequired = errors.New("handler response is required")
)

// RebuttalAction is a workflow action taken against a scored report
type RebuttalAction string

const (
	ActionAccept     RebuttalAction = "accept"
	ActionReject     RebuttalAction = "reject"
	ActionBOD        RebuttalAction = "bod" // benefit of doubt, management only
	ActionReRebuttal RebuttalAction = "re_rebuttal"
)

// RebuttalInput carries one workflow action. Text is the rebuttal text
// for partner disputes and the handler response for management actions.
type RebuttalInput struct {
	Action RebuttalAction
	Actor  model.Identity
	Text   string
}

type transitionKey struct {
	from   model.ReportStatus
	action RebuttalAction
	role   model.Role
}

// transitions is the full legal transition table. Anything not listed
// is rejected outright.
var transitions = map[transitionKey]model.ReportStatus{
	{model.StatusCompleted, ActionAccept, model.RolePartner}:    model.StatusAccepted,
	{model.StatusCompleted, ActionAccept, model.RoleManagement}: model.StatusAccepted,
	{model.StatusCompleted, ActionReject, model.RolePartner}:    model.StatusUnderRebuttal,

	{model.StatusUnderRebuttal, ActionAccept, model.RolePartner}:    model.StatusAccepted,
	{model.StatusUnderRebuttal, ActionAccept, model.RoleManagement}: model.StatusAccepted,
	{model.StatusUnderRebuttal, ActionBOD, model.RoleManagement}:    model.StatusAccepted,
	{model.StatusUnderRebuttal, ActionReject, model.RoleManagement}: model.StatusRebuttalRejected,

	{model.StatusRebuttalRejected, ActionAccept, model.RolePartner}:     model.StatusAccepted,
	{model.StatusRebuttalRejected, ActionBOD, model.RoleManagement}:     model.StatusAccepted,
	{model.StatusRebuttalRejected, ActionReRebuttal, model.RolePartner}: model.StatusUnderReRebuttal,

	{model.StatusUnderReRebuttal, ActionAccept, model.RolePartner}: model.StatusAccepted,
	{model.StatusUnderReRebuttal, ActionBOD, model.RoleManagement}: model.StatusAccepted,
}

// NextStatus resolves the transition table without applying anything
func NextStatus(from model.ReportStatus, action RebuttalAction, role model.Role) (model.ReportStatus, bool) {
	to, ok := transitions[transitionKey{from, action, role}]
	return to, ok
}

// ApplyRebuttal runs one workflow action against the report. It is the
// sole writer of AuditReport.Status: partner disputes append a pending
// RebuttalRecord, management outcomes update the latest record. The
// report is left untouched when the action is rejected.
func ApplyRebuttal(report *model.AuditReport, recordID string, in RebuttalInput, now int64) error {
	to, ok := NextStatus(report.Status, in.Action, in.Actor.Role)
	if !ok {
		return ErrIllegalTransition
	}

	switch in.Action {
	case ActionReject:
		if report.Status == model.StatusCompleted {
			// Partner raising the first dispute
			if in.Text == "" {
				return ErrRebuttalTextRequired
			}
			report.Rebuttals = append(report.Rebuttals, model.RebuttalRecord{
				ID:            recordID,
				AuditReportID: report.ID,
				Partner:       in.Actor,
				RebuttalText:  in.Text,
				RebuttalType:  model.RebuttalFirst,
				Status:        model.RebuttalPending,
				CreatedAt:     now,
			})
		} else {
			// Management rejecting the open dispute
			if in.Text == "" {
				return ErrHandlerResponseRequired
			}
			resolveLatest(report, in, model.RebuttalRejected, now)
		}

	case ActionReRebuttal:
		if in.Text == "" {
			return ErrRebuttalTextRequired
		}
		report.Rebuttals = append(report.Rebuttals, model.RebuttalRecord{
			ID:            recordID,
			AuditReportID: report.ID,
			Partner:       in.Actor,
			RebuttalText:  in.Text,
			RebuttalType:  model.RebuttalSecond,
			Status:        model.RebuttalPending,
			CreatedAt:     now,
		})

	case ActionAccept, ActionBOD:
		resolveLatest(report, in, model.RebuttalAccepted, now)
	}

	report.Status = to
	return nil
}

// resolveLatest stamps the outcome on the most recent rebuttal record,
// if any. Accepting a report straight from completed has no record to
// resolve; the status change alone is the outcome.
func resolveLatest(report *model.AuditReport, in RebuttalInput, outcome model.RebuttalStatus, now int64) {
	rec := report.LatestRebuttal()
	if rec == nil {
		return
	}
	actor := in.Actor
	rec.Status = outcome
	rec.HandledBy = &actor
	rec.HandlerResponse = in.Text
	rec.HandledAt = now
}
