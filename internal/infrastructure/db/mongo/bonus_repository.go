package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

const bonusCollection = "bonus_awards"
const bonusSequence = "bonus_awards"

// BonusRepository implements ports.BonusRepository on MongoDB.
type BonusRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewBonusRepository(db *mongo.Database) *BonusRepository {
	return &BonusRepository{db: db, col: db.Collection(bonusCollection)}
}

func (r *BonusRepository) Insert(ctx context.Context, b *domain.BonusAward) (*domain.BonusAward, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, bonusSequence)
	if err != nil {
		return nil, err
	}

	clone := *b
	clone.ID = id
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now().UTC()
	}

	if _, err := r.col.InsertOne(ctx, clone); err != nil {
		return nil, fmt.Errorf("insert bonus award: %w", err)
	}
	return &clone, nil
}

// SumForUser aggregates the total granted bonus amount for a user. A user
// without awards sums to zero.
func (r *BonusRepository) SumForUser(ctx context.Context, userID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum bonuses for user %d: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode bonus sum: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// ListByUser returns the user's bonus history, newest first.
func (r *BonusRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.BonusAward, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bonuses for user %d: %w", userID, err)
	}
	defer cursor.Close(ctx)

	awards := []*domain.BonusAward{}
	if err := cursor.All(ctx, &awards); err != nil {
		return nil, fmt.Errorf("decode bonus awards: %w", err)
	}
	return awards, nil
}

// EnsureIndexes creates the owner index used by sums and history reads.
func (r *BonusRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
