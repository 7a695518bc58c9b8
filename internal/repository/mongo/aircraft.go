package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	"github.com/Chinny123a/flightsimspot/internal/repository"
	apperrors "github.com/Chinny123a/flightsimspot/pkg/errors"
)

// AircraftRepository implements aircraft persistence using MongoDB.
type AircraftRepository struct {
	coll *mongo.Collection
}

// NewAircraftRepository creates a MongoDB-backed aircraft repository.
func NewAircraftRepository(db *mongo.Database) *AircraftRepository {
	return &AircraftRepository{coll: db.Collection(CollectionAircraft)}
}

// Create inserts a new aircraft document.
func (r *AircraftRepository) Create(ctx context.Context, aircraft *domain.Aircraft) error {
	if _, err := r.coll.InsertOne(ctx, aircraft); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.AlreadyExists("aircraft", "id", aircraft.ID)
		}
		return fmt.Errorf("insert aircraft: %w", err)
	}
	return nil
}

// GetByID retrieves an aircraft by id. Archived aircraft are returned too;
// the by-id fetch deliberately ignores the archive flag.
func (r *AircraftRepository) GetByID(ctx context.Context, id string) (*domain.Aircraft, error) {
	var aircraft domain.Aircraft
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&aircraft)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("aircraft", id)
		}
		return nil, fmt.Errorf("find aircraft: %w", err)
	}
	return &aircraft, nil
}

// List returns aircraft matching the filter.
func (r *AircraftRepository) List(ctx context.Context, filter repository.AircraftFilter) ([]domain.Aircraft, error) {
	cursor, err := r.coll.Find(ctx, buildFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("list aircraft: %w", err)
	}
	defer cursor.Close(ctx)

	aircraft := []domain.Aircraft{}
	if err := cursor.All(ctx, &aircraft); err != nil {
		return nil, fmt.Errorf("decode aircraft: %w", err)
	}
	return aircraft, nil
}

// Update applies the non-nil patch fields to an aircraft document.
func (r *AircraftRepository) Update(ctx context.Context, id string, patch *domain.AircraftPatch) error {
	set := bson.M{}
	setString := func(field string, v *string) {
		if v != nil {
			set[field] = *v
		}
	}
	setSlice := func(field string, v *[]string) {
		if v != nil {
			set[field] = *v
		}
	}

	setString("name", patch.Name)
	setString("developer", patch.Developer)
	setString("aircraft_manufacturer", patch.AircraftManufacturer)
	setString("aircraft_model", patch.AircraftModel)
	setString("variant", patch.Variant)
	setString("category", patch.Category)
	setString("price_type", patch.PriceType)
	setString("price", patch.Price)
	setString("description", patch.Description)
	setString("image_url", patch.ImageURL)
	setString("cockpit_image_url", patch.CockpitImageURL)
	setSlice("additional_images", patch.AdditionalImages)
	setString("release_date", patch.ReleaseDate)
	setSlice("compatibility", patch.Compatibility)
	setString("download_url", patch.DownloadURL)
	setString("developer_website", patch.DeveloperWebsite)
	setSlice("features", patch.Features)
	if patch.IsArchived != nil {
		set["is_archived"] = *patch.IsArchived
	}

	if len(set) == 0 {
		// Nothing to apply; still verify the aircraft exists.
		return r.exists(ctx, id)
	}
	set["updated_at"] = time.Now().UTC()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update aircraft: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("aircraft", id)
	}
	return nil
}

// SetArchived flips the soft-delete flag. Archiving stamps archived_at;
// restoring unsets it.
func (r *AircraftRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	var update bson.M
	if archived {
		update = bson.M{"$set": bson.M{"is_archived": true, "archived_at": time.Now().UTC()}}
	} else {
		update = bson.M{"$set": bson.M{"is_archived": false}, "$unset": bson.M{"archived_at": ""}}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("set archived: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("aircraft", id)
	}
	return nil
}

// SetRating writes the derived rating summary.
func (r *AircraftRepository) SetRating(ctx context.Context, id string, averageRating float64, totalReviews int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"average_rating": averageRating,
		"total_reviews":  totalReviews,
	}})
	if err != nil {
		return fmt.Errorf("set rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("aircraft", id)
	}
	return nil
}

// IncrementViewCount performs a single atomic increment and returns the
// post-increment counter. A missing id is detected from the update outcome
// itself, avoiding a check-then-increment race.
func (r *AircraftRepository) IncrementViewCount(ctx context.Context, id string, viewedAt time.Time) (int64, error) {
	var updated struct {
		ViewCount int64 `bson:"view_count"`
	}
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{
			"$inc": bson.M{"view_count": 1},
			"$set": bson.M{"last_viewed": viewedAt},
		},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"view_count": 1}),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, apperrors.NotFound("aircraft", id)
		}
		return 0, fmt.Errorf("increment view count: %w", err)
	}
	return updated.ViewCount, nil
}

// CategoriesWithCounts groups non-archived aircraft by category.
func (r *AircraftRepository) CategoriesWithCounts(ctx context.Context) ([]repository.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notArchived()}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$category",
			"count":      bson.M{"$sum": 1},
			"avg_rating": bson.M{"$avg": "$average_rating"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}
	defer cursor.Close(ctx)

	results := []repository.CategoryCount{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode category counts: %w", err)
	}
	return results, nil
}

// ManufacturersByCategory groups a category's non-archived aircraft by
// manufacturer, collecting the distinct model set.
func (r *AircraftRepository) ManufacturersByCategory(ctx context.Context, category string) ([]repository.ManufacturerCount, error) {
	match := notArchived()
	match["category"] = category

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$aircraft_manufacturer",
			"count":      bson.M{"$sum": 1},
			"models":     bson.M{"$addToSet": "$aircraft_model"},
			"avg_rating": bson.M{"$avg": "$average_rating"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate manufacturers: %w", err)
	}
	defer cursor.Close(ctx)

	results := []repository.ManufacturerCount{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode manufacturer counts: %w", err)
	}
	return results, nil
}

// MostViewed returns the top non-archived aircraft by view count.
func (r *AircraftRepository) MostViewed(ctx context.Context, limit int) ([]domain.Aircraft, error) {
	return r.findSortedByViews(ctx, notArchived(), limit)
}

// ViewedSince returns the top non-archived aircraft viewed at or after the cutoff.
func (r *AircraftRepository) ViewedSince(ctx context.Context, cutoff time.Time, limit int) ([]domain.Aircraft, error) {
	filter := notArchived()
	filter["last_viewed"] = bson.M{"$gte": cutoff}
	return r.findSortedByViews(ctx, filter, limit)
}

func (r *AircraftRepository) findSortedByViews(ctx context.Context, filter bson.M, limit int) ([]domain.Aircraft, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "view_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find by views: %w", err)
	}
	defer cursor.Close(ctx)

	aircraft := []domain.Aircraft{}
	if err := cursor.All(ctx, &aircraft); err != nil {
		return nil, fmt.Errorf("decode aircraft: %w", err)
	}
	return aircraft, nil
}

// CategoryViewStats aggregates view counts per category, most viewed first.
func (r *AircraftRepository) CategoryViewStats(ctx context.Context) ([]repository.CategoryViewStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notArchived()}},
		{{Key: "$group", Value: bson.M{
			"_id":                    "$category",
			"total_views":            bson.M{"$sum": "$view_count"},
			"aircraft_count":         bson.M{"$sum": 1},
			"avg_views_per_aircraft": bson.M{"$avg": "$view_count"},
		}}},
		{{Key: "$sort", Value: bson.M{"total_views": -1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate category views: %w", err)
	}
	defer cursor.Close(ctx)

	results := []repository.CategoryViewStats{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode category view stats: %w", err)
	}
	return results, nil
}

// TotalViews sums view_count across all non-archived aircraft.
func (r *AircraftRepository) TotalViews(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: notArchived()}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"total_views": bson.M{"$sum": "$view_count"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate total views: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalViews int64 `bson:"total_views"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode total views: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].TotalViews, nil
}

// Distinct returns the sorted distinct string values of a field.
func (r *AircraftRepository) Distinct(ctx context.Context, field string) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	sort.Strings(values)
	return values, nil
}

// Count counts aircraft matching the filter.
func (r *AircraftRepository) Count(ctx context.Context, filter repository.AircraftFilter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count aircraft: %w", err)
	}
	return n, nil
}

func (r *AircraftRepository) exists(ctx context.Context, id string) error {
	err := r.coll.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(bson.M{"id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("aircraft", id)
		}
		return fmt.Errorf("find aircraft: %w", err)
	}
	return nil
}

// buildFilter translates an AircraftFilter into a Mongo query document.
func buildFilter(f repository.AircraftFilter) bson.M {
	filter := bson.M{}

	switch {
	case f.ArchivedOnly:
		filter["is_archived"] = true
	case !f.IncludeArchived:
		filter["is_archived"] = bson.M{"$ne": true}
	}

	if f.Category != nil {
		filter["category"] = *f.Category
	}
	if f.Developer != nil {
		filter["developer"] = *f.Developer
	}
	if f.AircraftManufacturer != nil {
		filter["aircraft_manufacturer"] = *f.AircraftManufacturer
	}
	if f.PriceType != nil {
		filter["price_type"] = *f.PriceType
	}
	if f.Compatibility != nil {
		filter["compatibility"] = bson.M{"$in": []string{*f.Compatibility}}
	}
	if f.Search != nil && *f.Search != "" {
		regex := primitive.Regex{Pattern: *f.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"developer": regex},
			bson.M{"aircraft_manufacturer": regex},
			bson.M{"aircraft_model": regex},
			bson.M{"description": regex},
		}
	}

	return filter
}
