package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/domain"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/event"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/idgen"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/repository"
	apperrors "github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/errors"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/pagination"
)

// EventPublisher publishes review domain events.
type EventPublisher interface {
	PublishReviewSubmitted(ctx context.Context, review *domain.Review, characteristics map[int64]float64) error
	PublishReviewReported(ctx context.Context, reviewID string) error
	PublishSubmissionPartial(ctx context.Context, data event.SubmissionPartialData) error
}

// ListReviewsInput holds the parameters for listing a product's reviews.
type ListReviewsInput struct {
	ProductID int64
	Page      int
	Count     int
	Sort      string
}

// ReviewListResult is one page of a product's reviews.
type ReviewListResult struct {
	Product int64           `json:"product"`
	Page    int             `json:"page"`
	Count   int             `json:"count"`
	Results []domain.Review `json:"results"`
}

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	reviews         repository.ReviewRepository
	characteristics repository.CharacteristicRepository
	ids             idgen.Generator
	events          EventPublisher
	logger          *slog.Logger
	now             func() time.Time
}

// NewReviewService creates a new review service. events may be nil, in which
// case no domain events are published.
func NewReviewService(
	reviews repository.ReviewRepository,
	characteristics repository.CharacteristicRepository,
	ids idgen.Generator,
	events EventPublisher,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:         reviews,
		characteristics: characteristics,
		ids:             ids,
		events:          events,
		logger:          logger,
		now:             time.Now,
	}
}

// ListReviews returns one page of a product's reviews. An unrecognized sort
// value lists in natural order with reported reviews hidden.
func (s *ReviewService) ListReviews(ctx context.Context, input ListReviewsInput) (*ReviewListResult, error) {
	sort, ok := domain.ParseSortMode(input.Sort)
	if !ok {
		s.logger.DebugContext(ctx, "unknown sort mode, using natural order",
			slog.String("sort", input.Sort),
		)
	}

	page := pagination.New(input.Page, input.Count)

	reviews, err := s.reviews.List(ctx, repository.ReviewFilter{
		ProductID: input.ProductID,
		Page:      page.Page,
		Count:     page.PerPage,
		Sort:      sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return &ReviewListResult{
		Product: input.ProductID,
		Page:    page.Page,
		Count:   page.PerPage,
		Results: reviews,
	}, nil
}

// MarkHelpful adds one helpful vote to a review and returns the number of
// reviews affected, 0 when the id is unknown.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID string) (int64, error) {
	n, err := s.reviews.MarkHelpful(ctx, reviewID)
	if err != nil {
		return 0, fmt.Errorf("mark review helpful: %w", err)
	}
	if n > 0 {
		ReviewFeedbackTotal.WithLabelValues("helpful").Inc()
	}
	return n, nil
}

// ReportReview hides a review from default listings and returns the number
// of reviews affected. It returns 0 without side effects when the id is
// unknown or the review was already reported.
func (s *ReviewService) ReportReview(ctx context.Context, reviewID string) (int64, error) {
	n, err := s.reviews.Report(ctx, reviewID)
	if err != nil {
		return 0, fmt.Errorf("report review: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	ReviewFeedbackTotal.WithLabelValues("report").Inc()
	s.logger.InfoContext(ctx, "review reported",
		slog.String("review_id", reviewID),
	)

	if s.events != nil {
		if err := s.events.PublishReviewReported(ctx, reviewID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.reported event",
				slog.String("review_id", reviewID),
				slog.String("error", err.Error()),
			)
		}
	}

	return n, nil
}

type characteristicResult struct {
	id  int64
	err error
}

// SubmitReview stores a new review for productID together with one
// characteristic value per entry of sub.Characteristics. The review and
// every value are written concurrently without a transaction. When any write
// fails the others still run to completion and a *SubmissionError lists what
// was persisted.
func (s *ReviewService) SubmitReview(ctx context.Context, productID int64, sub *domain.ReviewSubmission) (*domain.Review, error) {
	if sub == nil {
		return nil, apperrors.InvalidInput("submission is required")
	}

	start := time.Now()
	defer func() {
		SubmissionDuration.Observe(time.Since(start).Seconds())
	}()

	reviewID, err := s.ids.Generate()
	if err != nil {
		SubmissionsTotal.WithLabelValues(outcomeFailed).Inc()
		return nil, fmt.Errorf("submit review: %w", err)
	}

	review := &domain.Review{
		ReviewID:      reviewID,
		ProductID:     productID,
		Rating:        sub.Rating,
		Summary:       sub.Summary,
		Recommend:     sub.Recommend,
		Body:          sub.Body,
		Date:          s.now().UTC(),
		ReviewerName:  sub.Name,
		ReviewerEmail: sub.Email,
		Photos:        []string{},
		Helpfulness:   0,
		Reported:      domain.ReportedVisible,
	}

	charIDs := make([]int64, 0, len(sub.Characteristics))
	for id := range sub.Characteristics {
		charIDs = append(charIDs, id)
	}
	slices.Sort(charIDs)

	var (
		wg        sync.WaitGroup
		reviewErr error
		results   = make([]characteristicResult, len(charIDs))
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		reviewErr = s.reviews.Create(ctx, review)
	}()

	for i, charID := range charIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = characteristicResult{
				id:  charID,
				err: s.writeCharacteristic(ctx, productID, reviewID, charID, sub.Characteristics[charID]),
			}
		}()
	}

	wg.Wait()

	subErr := &SubmissionError{
		ReviewID:                 reviewID,
		ProductID:                productID,
		ReviewPersisted:          reviewErr == nil,
		PersistedCharacteristics: []int64{},
	}
	if reviewErr != nil {
		subErr.Errs = append(subErr.Errs, fmt.Errorf("create review: %w", reviewErr))
	}
	for _, r := range results {
		if r.err != nil {
			subErr.Errs = append(subErr.Errs, r.err)
			continue
		}
		subErr.PersistedCharacteristics = append(subErr.PersistedCharacteristics, r.id)
	}

	if len(subErr.Errs) > 0 {
		s.reportFailedSubmission(ctx, subErr)
		return nil, subErr
	}

	SubmissionsTotal.WithLabelValues(outcomeSuccess).Inc()
	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", reviewID),
		slog.Int64("product_id", productID),
		slog.Int("rating", review.Rating),
		slog.Int("characteristics", len(charIDs)),
	)

	if s.events != nil {
		if err := s.events.PublishReviewSubmitted(ctx, review, sub.Characteristics); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.submitted event",
				slog.String("review_id", reviewID),
				slog.String("error", err.Error()),
			)
		}
	}

	return review, nil
}

// writeCharacteristic resolves the characteristic's name from its earliest
// stored value and writes the reviewer's value under it.
func (s *ReviewService) writeCharacteristic(ctx context.Context, productID int64, reviewID string, charID int64, value float64) error {
	def, err := s.characteristics.FindOne(ctx, productID, charID)
	if err != nil {
		return fmt.Errorf("characteristic %d: %w", charID, err)
	}

	if err := s.characteristics.CreateValue(ctx, &domain.CharacteristicValue{
		ProductID:        productID,
		CharacteristicID: charID,
		Name:             def.Name,
		ReviewID:         reviewID,
		Value:            value,
	}); err != nil {
		return fmt.Errorf("characteristic %d: %w", charID, err)
	}

	return nil
}

func (s *ReviewService) reportFailedSubmission(ctx context.Context, subErr *SubmissionError) {
	errMsgs := make([]string, len(subErr.Errs))
	for i, err := range subErr.Errs {
		errMsgs[i] = err.Error()
	}

	if !subErr.Persisted() {
		SubmissionsTotal.WithLabelValues(outcomeFailed).Inc()
		s.logger.ErrorContext(ctx, "submission failed",
			slog.String("review_id", subErr.ReviewID),
			slog.Int64("product_id", subErr.ProductID),
			slog.Any("errors", errMsgs),
		)
		return
	}

	SubmissionsTotal.WithLabelValues(outcomePartial).Inc()
	s.logger.WarnContext(ctx, "submission partially persisted",
		slog.String("review_id", subErr.ReviewID),
		slog.Int64("product_id", subErr.ProductID),
		slog.Bool("review_persisted", subErr.ReviewPersisted),
		slog.Any("persisted_characteristics", subErr.PersistedCharacteristics),
		slog.Any("errors", errMsgs),
	)

	if s.events == nil {
		return
	}
	if err := s.events.PublishSubmissionPartial(ctx, event.SubmissionPartialData{
		ReviewID:                 subErr.ReviewID,
		ProductID:                subErr.ProductID,
		ReviewPersisted:          subErr.ReviewPersisted,
		PersistedCharacteristics: subErr.PersistedCharacteristics,
		Errors:                   errMsgs,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish submission.partial event",
			slog.String("review_id", subErr.ReviewID),
			slog.String("error", err.Error()),
		)
	}
}

// Orphans returns the characteristic values written for reviewID when no
// review with that id exists. It returns an empty slice when the review is
// present.
func (s *ReviewService) Orphans(ctx context.Context, reviewID string) ([]domain.CharacteristicValue, error) {
	_, err := s.reviews.Get(ctx, reviewID)
	switch {
	case err == nil:
		return []domain.CharacteristicValue{}, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("find orphans: %w", err)
	}

	values, err := s.characteristics.ListByReview(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("find orphans: %w", err)
	}
	return values, nil
}
