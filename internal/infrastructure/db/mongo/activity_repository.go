package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

const activitiesCollection = "activities"
const activitiesSequence = "activities"

// ActivityRepository implements ports.ActivityRepository on MongoDB.
type ActivityRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{db: db, col: db.Collection(activitiesCollection)}
}

// Insert persists a new activity, assigning its numeric id and created_at.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, activitiesSequence)
	if err != nil {
		return nil, err
	}

	clone := *a
	clone.ID = id
	clone.CreatedAt = time.Now().UTC()
	clone.UpdatedAt = clone.CreatedAt

	if _, err := r.col.InsertOne(ctx, clone); err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	return &clone, nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id int64) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Activity
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("find activity %d: %w", id, err)
	}
	return &a, nil
}

// Update rewrites the mutable fields of an existing activity.
func (r *ActivityRepository) Update(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": a.ID}, bson.M{"$set": bson.M{
		"name":        a.Name,
		"description": a.Description,
		"date":        a.Date,
		"link":        a.Link,
		"image_url":   a.ImageURL,
		"type":        a.Type,
		"arista":      a.Arista,
		"album":       a.Album,
		"word_count":  a.WordCount,
		"responses":   a.Responses,
		"traces":      a.Traces,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update activity %d: %w", a.ID, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete activity %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

// ListByOwner returns a fresh snapshot of every activity owned by userID.
func (r *ActivityRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list activities for user %d: %w", userID, err)
	}
	defer cursor.Close(ctx)

	activities := []*domain.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return activities, nil
}

// EnsureIndexes creates the owner index used by every resync.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
