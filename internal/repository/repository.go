package repository

import (
	"context"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/domain"
)

// ReviewFilter selects one page of a product's reviews.
type ReviewFilter struct {
	ProductID int64
	Page      int
	Count     int
	Sort      domain.SortMode
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// List returns one page of reviews for a product, ordered and filtered
	// according to the sort mode.
	List(ctx context.Context, filter ReviewFilter) ([]domain.Review, error)

	// Get retrieves a review by its identifier.
	Get(ctx context.Context, reviewID string) (*domain.Review, error)

	// Create inserts a new review. A duplicate review id is reported as
	// apperrors.ErrAlreadyExists.
	Create(ctx context.Context, review *domain.Review) error

	// MarkHelpful atomically increments the helpfulness counter and returns
	// the number of reviews affected.
	MarkHelpful(ctx context.Context, reviewID string) (int64, error)

	// Report hides a review from default listings and returns the number of
	// reviews affected.
	Report(ctx context.Context, reviewID string) (int64, error)
}

// CharacteristicRepository defines the interface for characteristic value
// persistence operations.
type CharacteristicRepository interface {
	// ListByProduct returns every characteristic value stored for a product.
	ListByProduct(ctx context.Context, productID int64) ([]domain.CharacteristicValue, error)

	// FindOne returns the first value stored for a characteristic of a
	// product. It is used to resolve the characteristic's name.
	FindOne(ctx context.Context, productID, characteristicID int64) (*domain.CharacteristicValue, error)

	// CreateValue inserts a characteristic value.
	CreateValue(ctx context.Context, value *domain.CharacteristicValue) error

	// ListByReview returns every characteristic value written for a review.
	ListByReview(ctx context.Context, reviewID string) ([]domain.CharacteristicValue, error)
}

// AggregateRepository computes review distributions for a product.
type AggregateRepository interface {
	// RecommendDistribution counts reviews per recommend bucket.
	RecommendDistribution(ctx context.Context, productID int64) (domain.Histogram, error)

	// RatingDistribution counts reviews per rating bucket.
	RatingDistribution(ctx context.Context, productID int64) (domain.Histogram, error)
}
