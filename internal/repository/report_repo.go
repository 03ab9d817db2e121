package repository

import (
	"context"

	"auditdesk/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportFilter narrows report listings
type ReportFilter struct {
	AgentID   string
	AuditorID string
	FormName  string
	Status    model.ReportStatus
	Limit     int64
}

// ReportRepo handles MongoDB operations for audit reports
type ReportRepo interface {
	Create(ctx context.Context, report *model.AuditReport) error
	GetByID(ctx context.Context, id string) (*model.AuditReport, error)
	List(ctx context.Context, filter ReportFilter) ([]*model.AuditReport, error)
	Replace(ctx context.Context, report *model.AuditReport) error
	// ReplaceIfStatus writes the report only when the stored status
	// still matches expected; returns false when another writer got
	// there first
	ReplaceIfStatus(ctx context.Context, report *model.AuditReport, expected model.ReportStatus) (bool, error)
}

type reportRepo struct {
	collection *mongo.Collection
}

// NewReportRepo creates a new report repository
func NewReportRepo(db *mongo.Database) ReportRepo {
	return &reportRepo{
		collection: db.Collection("audit_reports"),
	}
}

func (r *reportRepo) Create(ctx context.Context, report *model.AuditReport) error {
	_, err := r.collection.InsertOne(ctx, report)
	return err
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (*model.AuditReport, error) {
	var report model.AuditReport
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) List(ctx context.Context, filter ReportFilter) ([]*model.AuditReport, error) {
	query := bson.M{}
	if filter.AgentID != "" {
		query["agent.id"] = filter.AgentID
	}
	if filter.AuditorID != "" {
		query["auditor.id"] = filter.AuditorID
	}
	if filter.FormName != "" {
		query["formName"] = filter.FormName
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []*model.AuditReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepo) Replace(ctx context.Context, report *model.AuditReport) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": report.ID}, report)
	return err
}

func (r *reportRepo) ReplaceIfStatus(ctx context.Context, report *model.AuditReport, expected model.ReportStatus) (bool, error) {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": report.ID, "status": expected}, report)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
