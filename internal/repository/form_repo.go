package repository

import (
	"context"
	"time"

	"auditdesk/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FormRepo handles MongoDB operations for form definitions
type FormRepo interface {
	Create(ctx context.Context, form *model.FormDefinition) (string, error)
	GetByName(ctx context.Context, name string) (*model.FormDefinition, error)
	List(ctx context.Context) ([]*model.FormDefinition, error)
	Update(ctx context.Context, form *model.FormDefinition) error
	Delete(ctx context.Context, name string) error
}

type formRepo struct {
	collection *mongo.Collection
}

// NewFormRepo creates a new form repository
func NewFormRepo(db *mongo.Database) FormRepo {
	return &formRepo{
		collection: db.Collection("forms"),
	}
}

func (r *formRepo) Create(ctx context.Context, form *model.FormDefinition) (string, error) {
	now := time.Now().UnixMilli()
	form.CreatedAt = now
	form.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, form)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *formRepo) GetByName(ctx context.Context, name string) (*model.FormDefinition, error) {
	var form model.FormDefinition
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&form)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepo) List(ctx context.Context) ([]*model.FormDefinition, error) {
	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var forms []*model.FormDefinition
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepo) Update(ctx context.Context, form *model.FormDefinition) error {
	form.UpdatedAt = time.Now().UnixMilli()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"name": form.Name}, form)
	return err
}

func (r *formRepo) Delete(ctx context.Context, name string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"name": name})
	return err
}
