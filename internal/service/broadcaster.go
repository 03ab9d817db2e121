package service

// Broadcaster pushes report lifecycle events to connected dashboard
// clients. The WebSocket hub implements it; services hold it optional
// so the engine stays testable without a hub.
type Broadcaster interface {
	BroadcastToDashboard(msgType string, payload interface{})
}

// Dashboard event types
const (
	EventReportSubmitted = "report_submitted"
	EventATAReviewed     = "ata_reviewed"
	EventRebuttalUpdate  = "rebuttal_update"
)
