package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/domain"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/repository"
)

// AggregationService computes review distributions. Reported reviews are
// counted.
type AggregationService struct {
	repo   repository.AggregateRepository
	logger *slog.Logger
}

// NewAggregationService creates a new aggregation service.
func NewAggregationService(repo repository.AggregateRepository, logger *slog.Logger) *AggregationService {
	return &AggregationService{repo: repo, logger: logger}
}

// RecommendDistribution returns the count of a product's reviews per
// recommend bucket ("0", "1", "Other").
func (s *AggregationService) RecommendDistribution(ctx context.Context, productID int64) (domain.Histogram, error) {
	hist, err := s.repo.RecommendDistribution(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("recommend distribution: %w", err)
	}

	s.logger.DebugContext(ctx, "recommend distribution computed",
		slog.Int64("product_id", productID),
		slog.Int64("reviews", hist.Total()),
	)
	return hist, nil
}

// RatingDistribution returns the count of a product's reviews per rating
// bucket ("1" to "5", "Other").
func (s *AggregationService) RatingDistribution(ctx context.Context, productID int64) (domain.Histogram, error) {
	hist, err := s.repo.RatingDistribution(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("rating distribution: %w", err)
	}

	s.logger.DebugContext(ctx, "rating distribution computed",
		slog.Int64("product_id", productID),
		slog.Int64("reviews", hist.Total()),
	)
	return hist, nil
}
