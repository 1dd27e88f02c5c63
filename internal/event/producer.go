package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/domain"
	pkgkafka "github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/kafka"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/logger"
)

// Kafka topics for review domain events.
var (
	TopicReviewSubmitted   = pkgkafka.Topic("review", "submitted")
	TopicReviewReported    = pkgkafka.Topic("review", "reported")
	TopicSubmissionPartial = pkgkafka.Topic("submission", "partial")
)

// Aggregate type constant.
const AggregateTypeReview = "review"

// Source identifier for events originating from this service.
const SourceReviewService = "reviews-service"

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	ReviewID        string            `json:"review_id"`
	ProductID       int64             `json:"product_id"`
	Rating          int               `json:"rating"`
	Recommend       bool              `json:"recommend"`
	Characteristics map[int64]float64 `json:"characteristics,omitempty"`
}

// ReviewReportedData is the payload for a review.reported event.
type ReviewReportedData struct {
	ReviewID string `json:"review_id"`
}

// SubmissionPartialData is the payload for a submission.partial event. It
// lists the records a failed submission left behind.
type SubmissionPartialData struct {
	ReviewID                 string   `json:"review_id"`
	ProductID                int64    `json:"product_id"`
	ReviewPersisted          bool     `json:"review_persisted"`
	PersistedCharacteristics []int64  `json:"persisted_characteristics"`
	Errors                   []string `json:"errors"`
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the review service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewSubmitted publishes a review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, review *domain.Review, characteristics map[int64]float64) error {
	data := ReviewSubmittedData{
		ReviewID:        review.ReviewID,
		ProductID:       review.ProductID,
		Rating:          review.Rating,
		Recommend:       review.Recommend,
		Characteristics: characteristics,
	}

	if err := p.publish(ctx, TopicReviewSubmitted, review.ReviewID, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published review.submitted event",
		slog.String("review_id", review.ReviewID),
		slog.Int64("product_id", review.ProductID),
	)

	return nil
}

// PublishReviewReported publishes a review.reported event.
func (p *Producer) PublishReviewReported(ctx context.Context, reviewID string) error {
	if err := p.publish(ctx, TopicReviewReported, reviewID, ReviewReportedData{ReviewID: reviewID}); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published review.reported event",
		slog.String("review_id", reviewID),
	)

	return nil
}

// PublishSubmissionPartial publishes a submission.partial event.
func (p *Producer) PublishSubmissionPartial(ctx context.Context, data SubmissionPartialData) error {
	if err := p.publish(ctx, TopicSubmissionPartial, data.ReviewID, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published submission.partial event",
		slog.String("review_id", data.ReviewID),
	)

	return nil
}

func (p *Producer) publish(ctx context.Context, topic, reviewID string, data any) error {
	event, err := pkgkafka.NewEvent(topic, reviewID, AggregateTypeReview, SourceReviewService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	return nil
}
