package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Chinny123a/flightsimspot/internal/domain"
	pkgkafka "github.com/Chinny123a/flightsimspot/pkg/kafka"
)

// Kafka topics for platform domain events.
const (
	TopicReviewCreated    = "flightsimspot.review.created"
	TopicReviewDeleted    = "flightsimspot.review.deleted"
	TopicAircraftArchived = "flightsimspot.aircraft.archived"
	TopicAircraftRestored = "flightsimspot.aircraft.restored"
)

// Aggregate type constants.
const (
	AggregateTypeReview   = "review"
	AggregateTypeAircraft = "aircraft"
)

// Source identifier for events originating from this service.
const SourceAPI = "flightsimspot-api"

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID         string `json:"id"`
	AircraftID string `json:"aircraft_id"`
	UserID     string `json:"user_id"`
	Overall    int    `json:"overall"`
}

// ReviewDeletedData is the payload for a review.deleted event.
type ReviewDeletedData struct {
	ID         string `json:"id"`
	AircraftID string `json:"aircraft_id"`
}

// AircraftArchiveData is the payload for aircraft.archived and
// aircraft.restored events.
type AircraftArchiveData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Producer publishes platform domain events to Kafka. All publishing is
// best-effort: callers log failures and never fail the request over them.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:         review.ID,
		AircraftID: review.AircraftID,
		UserID:     review.UserID,
		Overall:    review.Ratings.Overall,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceAPI, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("aircraft_id", review.AircraftID),
	)

	return nil
}

// PublishReviewDeleted publishes a review.deleted event.
func (p *Producer) PublishReviewDeleted(ctx context.Context, reviewID, aircraftID string) error {
	data := ReviewDeletedData{ID: reviewID, AircraftID: aircraftID}

	event, err := pkgkafka.NewEvent(TopicReviewDeleted, reviewID, AggregateTypeReview, SourceAPI, data)
	if err != nil {
		return fmt.Errorf("create review.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewDeleted, event); err != nil {
		return fmt.Errorf("publish review.deleted event: %w", err)
	}

	return nil
}

// PublishAircraftArchived publishes an aircraft.archived event.
func (p *Producer) PublishAircraftArchived(ctx context.Context, aircraft *domain.Aircraft) error {
	return p.publishArchiveEvent(ctx, TopicAircraftArchived, aircraft)
}

// PublishAircraftRestored publishes an aircraft.restored event.
func (p *Producer) PublishAircraftRestored(ctx context.Context, aircraft *domain.Aircraft) error {
	return p.publishArchiveEvent(ctx, TopicAircraftRestored, aircraft)
}

func (p *Producer) publishArchiveEvent(ctx context.Context, topic string, aircraft *domain.Aircraft) error {
	data := AircraftArchiveData{ID: aircraft.ID, Name: aircraft.Name}

	event, err := pkgkafka.NewEvent(topic, aircraft.ID, AggregateTypeAircraft, SourceAPI, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	return nil
}
