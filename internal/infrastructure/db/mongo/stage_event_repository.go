package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

const collectionStageEvents = "stage_events"

var _ ports.StageEventRepository = (*StageEventRepository)(nil)

// StageEventRepository appends one document per stage change.
type StageEventRepository struct {
	col *mongo.Collection
}

func NewStageEventRepository(db *mongo.Database) *StageEventRepository {
	return &StageEventRepository{col: db.Collection(collectionStageEvents)}
}

func (r *StageEventRepository) Record(ctx context.Context, event *domain.StageEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *event
	doc.At = doc.At.UTC()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert stage event: %w", err)
	}
	return nil
}

// ListByCandidate returns the candidate's events oldest first.
func (r *StageEventRepository) ListByCandidate(ctx context.Context, candidateID int64) ([]domain.StageEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"candidate_id": candidateID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find stage events: %w", err)
	}

	events := make([]domain.StageEvent, 0)
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode stage events: %w", err)
	}
	return events, nil
}

func (r *StageEventRepository) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear stage events: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index on the stage_events collection.
func (r *StageEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "candidate_id", Value: 1}, {Key: "at", Value: 1}},
	})
	return err
}
