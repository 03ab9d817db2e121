package model

// RebuttalType distinguishes a first dispute from a second-stage one
type RebuttalType string

const (
	RebuttalFirst  RebuttalType = "rebuttal"
	RebuttalSecond RebuttalType = "re_rebuttal"
)

// RebuttalStatus is the per-record outcome, distinct from the report's
// workflow status
type RebuttalStatus string

const (
	RebuttalPending  RebuttalStatus = "pending"
	RebuttalAccepted RebuttalStatus = "accepted"
	RebuttalRejected RebuttalStatus = "rejected"
)

// RebuttalRecord is one dispute raised by a partner plus the management
// outcome applied to it
type RebuttalRecord struct {
	ID              string         `json:"id" bson:"id"`
	AuditReportID   string         `json:"auditReportId" bson:"auditReportId"`
	Partner         Identity       `json:"partner" bson:"partner"`
	RebuttalText    string         `json:"rebuttalText" bson:"rebuttalText"`
	RebuttalType    RebuttalType   `json:"rebuttalType" bson:"rebuttalType"`
	Status          RebuttalStatus `json:"status" bson:"status"`
	HandledBy       *Identity      `json:"handledBy,omitempty" bson:"handledBy,omitempty"`
	HandlerResponse string         `json:"handlerResponse,omitempty" bson:"handlerResponse,omitempty"`
	CreatedAt       int64          `json:"createdAt" bson:"createdAt"` // epoch ms
	HandledAt       int64          `json:"handledAt,omitempty" bson:"handledAt,omitempty"`
}
