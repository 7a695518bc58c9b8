package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	apperrors "github.com/Chinny123a/flightsimspot/pkg/errors"
)

// ReviewRepository implements review persistence using MongoDB.
type ReviewRepository struct {
	coll *mongo.Collection
}

// NewReviewRepository creates a MongoDB-backed review repository.
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection(CollectionReviews)}
}

// Create inserts a new review. The unique index on (aircraft_id, user_id)
// rejects a second review from the same user for the same aircraft, which
// surfaces here as a Conflict regardless of request interleaving.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("you have already reviewed this aircraft")
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by id.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var review domain.Review
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

// ListByAircraftID returns all reviews for an aircraft, newest first.
func (r *ReviewRepository) ListByAircraftID(ctx context.Context, aircraftID string) ([]domain.Review, error) {
	return r.list(ctx, bson.M{"aircraft_id": aircraftID})
}

// ListByUserID returns all reviews by a user, newest first.
func (r *ReviewRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Review, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *ReviewRepository) list(ctx context.Context, filter bson.M) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

// Delete removes a review by id.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("review", id)
	}
	return nil
}

// CountAll counts all reviews.
func (r *ReviewRepository) CountAll(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}

// CountSince counts reviews created at or after the cutoff.
func (r *ReviewRepository) CountSince(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("count recent reviews: %w", err)
	}
	return n, nil
}
