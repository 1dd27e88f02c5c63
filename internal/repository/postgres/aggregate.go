package postgres

import (
	"context"
	"fmt"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/domain"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/database"
)

// AggregateRepository computes review distributions using PostgreSQL.
// Reported reviews are counted.
type AggregateRepository struct {
	pool   database.DBTX
	tracer *database.QueryTracer
}

// NewAggregateRepository creates a new PostgreSQL-backed aggregate repository.
// tracer may be nil.
func NewAggregateRepository(pool database.DBTX, tracer *database.QueryTracer) *AggregateRepository {
	return &AggregateRepository{pool: pool, tracer: tracer}
}

// RecommendDistribution counts a product's reviews per recommend bucket.
func (r *AggregateRepository) RecommendDistribution(ctx context.Context, productID int64) (_ domain.Histogram, err error) {
	query := `
		SELECT recommend, COUNT(*)
		FROM reviews
		WHERE product_id = $1
		GROUP BY recommend`

	ctx, end := r.tracer.Trace(ctx, "RecommendDistribution", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("recommend distribution: %w", err)
	}
	defer rows.Close()

	hist := domain.NewHistogram(domain.RecommendLabels)
	for rows.Next() {
		var (
			recommend *bool
			count     int64
		)
		if err := rows.Scan(&recommend, &count); err != nil {
			return nil, fmt.Errorf("scan recommend group: %w", err)
		}
		hist.Add(domain.RecommendBucket(recommend), count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommend groups: %w", err)
	}

	return hist, nil
}

// RatingDistribution counts a product's reviews per rating bucket.
func (r *AggregateRepository) RatingDistribution(ctx context.Context, productID int64) (_ domain.Histogram, err error) {
	query := `
		SELECT rating, COUNT(*)
		FROM reviews
		WHERE product_id = $1
		GROUP BY rating`

	ctx, end := r.tracer.Trace(ctx, "RatingDistribution", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("rating distribution: %w", err)
	}
	defer rows.Close()

	hist := domain.NewHistogram(domain.RatingLabels)
	for rows.Next() {
		var (
			rating *int
			count  int64
		)
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("scan rating group: %w", err)
		}
		hist.Add(domain.RatingBucket(rating), count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating groups: %w", err)
	}

	return hist, nil
}
