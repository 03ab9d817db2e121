package engine

import (
	"errors"
	"testing"

	"auditdesk/internal/model"
)

var (
	partner    = model.Identity{ID: "p1", Username: "partner", Role: model.RolePartner}
	management = model.Identity{ID: "m1", Username: "manager", Role: model.RoleManagement}
)

func scoredReport(status model.ReportStatus) *model.AuditReport {
	return &model.AuditReport{ID: "r1", Score: 40, MaxScore: 100, Status: status}
}

func mustApply(t *testing.T, report *model.AuditReport, in RebuttalInput) {
	t.Helper()
	if err := ApplyRebuttal(report, "rec", in, 1000); err != nil {
		t.Fatalf("ApplyRebuttal(%s by %s): %v", in.Action, in.Actor.Role, err)
	}
}

func TestTransitionTable(t *testing.T) {
	statuses := []model.ReportStatus{
		model.StatusCompleted, model.StatusUnderRebuttal, model.StatusRebuttalRejected,
		model.StatusUnderReRebuttal, model.StatusAccepted,
	}
	actions := []RebuttalAction{ActionAccept, ActionReject, ActionBOD, ActionReRebuttal}
	roles := []model.Role{model.RolePartner, model.RoleManagement, model.RoleAuditor}

	legal := map[transitionKey]model.ReportStatus{
		{model.StatusCompleted, ActionAccept, model.RolePartner}:            model.StatusAccepted,
		{model.StatusCompleted, ActionAccept, model.RoleManagement}:         model.StatusAccepted,
		{model.StatusCompleted, ActionReject, model.RolePartner}:            model.StatusUnderRebuttal,
		{model.StatusUnderRebuttal, ActionAccept, model.RolePartner}:        model.StatusAccepted,
		{model.StatusUnderRebuttal, ActionAccept, model.RoleManagement}:     model.StatusAccepted,
		{model.StatusUnderRebuttal, ActionBOD, model.RoleManagement}:        model.StatusAccepted,
		{model.StatusUnderRebuttal, ActionReject, model.RoleManagement}:     model.StatusRebuttalRejected,
		{model.StatusRebuttalRejected, ActionAccept, model.RolePartner}:     model.StatusAccepted,
		{model.StatusRebuttalRejected, ActionBOD, model.RoleManagement}:     model.StatusAccepted,
		{model.StatusRebuttalRejected, ActionReRebuttal, model.RolePartner}: model.StatusUnderReRebuttal,
		{model.StatusUnderReRebuttal, ActionAccept, model.RolePartner}:      model.StatusAccepted,
		{model.StatusUnderReRebuttal, ActionBOD, model.RoleManagement}:      model.StatusAccepted,
	}

	for _, from := range statuses {
		for _, action := range actions {
			for _, role := range roles {
				key := transitionKey{from, action, role}
				want, wantOK := legal[key]
				got, gotOK := NextStatus(from, action, role)
				if gotOK != wantOK {
					t.Errorf("%s + %s by %s: legal = %v, want %v", from, action, role, gotOK, wantOK)
					continue
				}
				if gotOK && got != want {
					t.Errorf("%s + %s by %s: to = %s, want %s", from, action, role, got, want)
				}
			}
		}
	}
}

func TestApplyRebuttalIllegalLeavesReportUnchanged(t *testing.T) {
	report := scoredReport(model.StatusAccepted)

	err := ApplyRebuttal(report, "rec", RebuttalInput{Action: ActionReject, Actor: partner, Text: "disagree"}, 0)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("err = %v, want ErrIllegalTransition", err)
	}
	if report.Status != model.StatusAccepted || len(report.Rebuttals) != 0 {
		t.Fatalf("report mutated on illegal transition: %+v", report)
	}
}

func TestApplyRebuttalFirstDispute(t *testing.T) {
	report := scoredReport(model.StatusCompleted)

	mustApply(t, report, RebuttalInput{Action: ActionReject, Actor: partner, Text: "score unfair"})

	if report.Status != model.StatusUnderRebuttal {
		t.Fatalf("status = %s", report.Status)
	}
	rec := report.LatestRebuttal()
	if rec == nil || rec.RebuttalType != model.RebuttalFirst || rec.Status != model.RebuttalPending {
		t.Fatalf("record = %+v", rec)
	}
	if rec.RebuttalText != "score unfair" || rec.Partner.ID != partner.ID || rec.CreatedAt != 1000 {
		t.Fatalf("record = %+v", rec)
	}
}

func TestApplyRebuttalTextRequired(t *testing.T) {
	report := scoredReport(model.StatusCompleted)

	err := ApplyRebuttal(report, "rec", RebuttalInput{Action: ActionReject, Actor: partner}, 0)
	if !errors.Is(err, ErrRebuttalTextRequired) {
		t.Fatalf("err = %v, want ErrRebuttalTextRequired", err)
	}
	if report.Status != model.StatusCompleted {
		t.Fatal("status changed on rejected input")
	}
}

func TestApplyRebuttalManagementReject(t *testing.T) {
	report := scoredReport(model.StatusCompleted)
	mustApply(t, report, RebuttalInput{Action: ActionReject, Actor: partner, Text: "dispute"})

	// Response is mandatory when management rejects
	err := ApplyRebuttal(report, "rec2", RebuttalInput{Action: ActionReject, Actor: management}, 2000)
	if !errors.Is(err, ErrHandlerResponseRequired) {
		t.Fatalf("err = %v, want ErrHandlerResponseRequired", err)
	}

	mustApply(t, report, RebuttalInput{Action: ActionReject, Actor: management, Text: "evidence stands"})

	if report.Status != model.StatusRebuttalRejected {
		t.Fatalf("status = %s", report.Status)
	}
	rec := report.LatestRebuttal()
	if rec.Status != model.RebuttalRejected || rec.HandlerResponse != "evidence stands" {
		t.Fatalf("record = %+v", rec)
	}
	if rec.HandledBy == nil || rec.HandledBy.ID != management.ID {
		t.Fatalf("handledBy = %+v", rec.HandledBy)
	}
}

func TestApplyRebuttalReRebuttalToAccepted(t *testing.T) {
	report := scoredReport(model.StatusRebuttalRejected)
	report.Rebuttals = []model.RebuttalRecord{{
		ID: "rec1", AuditReportID: "r1", Partner: partner,
		RebuttalType: model.RebuttalFirst, Status: model.RebuttalRejected,
	}}

	mustApply(t, report, RebuttalInput{Action: ActionReRebuttal, Actor: partner, Text: "new evidence"})

	if report.Status != model.StatusUnderReRebuttal {
		t.Fatalf("status = %s", report.Status)
	}
	if len(report.Rebuttals) != 2 || report.Rebuttals[1].RebuttalType != model.RebuttalSecond {
		t.Fatalf("rebuttals = %+v", report.Rebuttals)
	}

	mustApply(t, report, RebuttalInput{Action: ActionBOD, Actor: management})

	if report.Status != model.StatusAccepted {
		t.Fatalf("status = %s", report.Status)
	}
	if report.LatestRebuttal().Status != model.RebuttalAccepted {
		t.Fatalf("latest record = %+v", report.LatestRebuttal())
	}
}

// Partner disputes, management grants benefit of doubt, and the report
// is terminal afterwards.
func TestDisputeThenBenefitOfDoubt(t *testing.T) {
	report := scoredReport(model.StatusCompleted)

	mustApply(t, report, RebuttalInput{Action: ActionReject, Actor: partner, Text: "disagree with fatal"})
	if report.Status != model.StatusUnderRebuttal {
		t.Fatalf("status = %s", report.Status)
	}

	mustApply(t, report, RebuttalInput{Action: ActionBOD, Actor: management})
	if report.Status != model.StatusAccepted {
		t.Fatalf("status = %s", report.Status)
	}
	if !report.Status.Terminal() {
		t.Fatal("accepted must be terminal")
	}

	err := ApplyRebuttal(report, "rec", RebuttalInput{Action: ActionReject, Actor: partner, Text: "again"}, 0)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("err = %v, want ErrIllegalTransition after acceptance", err)
	}
}

func TestAcceptFromCompletedNeedsNoRecord(t *testing.T) {
	report := scoredReport(model.StatusCompleted)

	mustApply(t, report, RebuttalInput{Action: ActionAccept, Actor: partner})

	if report.Status != model.StatusAccepted {
		t.Fatalf("status = %s", report.Status)
	}
	if len(report.Rebuttals) != 0 {
		t.Fatalf("no rebuttal record expected, got %+v", report.Rebuttals)
	}
}
