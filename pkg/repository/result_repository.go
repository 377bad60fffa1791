package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vaani-ai/vaani/pkg/models"
)

// mongoResultRepository is the MongoDB-backed ResultRepository.
type mongoResultRepository struct {
	results *mongo.Collection
}

// NewMongoResultRepository creates a ResultRepository over the given database.
func NewMongoResultRepository(db *mongo.Database) ResultRepository {
	return &mongoResultRepository{
		results: db.Collection("results"),
	}
}

// SaveResult persists one pipeline result.
func (r *mongoResultRepository) SaveResult(ctx context.Context, event *models.ResultEvent) error {
	if _, err := r.results.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// GetResultsBySession returns a session's archived results, newest first.
func (r *mongoResultRepository) GetResultsBySession(ctx context.Context, sessionID string) ([]*models.ResultEvent, error) {
	filter := bson.M{"session_id": sessionID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.results.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find results: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*models.ResultEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}

	return events, nil
}
