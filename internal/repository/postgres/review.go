package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/domain"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/repository"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/database"
	apperrors "github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/errors"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/pagination"
)

const reviewColumns = `review_id, product_id, rating, summary, recommend, response, body,
		       date, reviewer_name, reviewer_email, photos, helpfulness, reported`

// ReviewRepository implements review persistence operations using PostgreSQL.
type ReviewRepository struct {
	pool   database.DBTX
	tracer *database.QueryTracer
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
// tracer may be nil.
func NewReviewRepository(pool database.DBTX, tracer *database.QueryTracer) *ReviewRepository {
	return &ReviewRepository{pool: pool, tracer: tracer}
}

// List returns one page of a product's reviews. Every mode except "relevant"
// hides reported reviews. Ties are broken by insertion order.
func (r *ReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) (_ []domain.Review, err error) {
	page := pagination.New(filter.Page, filter.Count)

	where := "WHERE product_id = $1"
	if !filter.Sort.IncludesReported() {
		where += " AND reported = 0"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		%s
		ORDER BY %s
		LIMIT $2 OFFSET $3`, reviewColumns, where, orderBy(filter.Sort))

	ctx, end := r.tracer.Trace(ctx, "ListReviews", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, filter.ProductID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func orderBy(mode domain.SortMode) string {
	switch mode {
	case domain.SortNewest:
		return "date DESC, seq"
	case domain.SortHelpful, domain.SortRelevant:
		return "helpfulness DESC, seq"
	default:
		return "seq"
	}
}

// Get retrieves a review by its identifier.
func (r *ReviewRepository) Get(ctx context.Context, reviewID string) (_ *domain.Review, err error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE review_id = $1`, reviewColumns)

	ctx, end := r.tracer.Trace(ctx, "GetReview", query)
	defer func() { end(err) }()

	rv, err := scanReview(r.pool.QueryRow(ctx, query, reviewID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", reviewID)
		}
		return nil, err
	}

	return rv, nil
}

// Create inserts a new review into the database.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	query := fmt.Sprintf(`
		INSERT INTO reviews (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`, reviewColumns)

	ctx, end := r.tracer.Trace(ctx, "CreateReview", query)
	defer func() { end(err) }()

	photos := review.Photos
	if photos == nil {
		photos = []string{}
	}
	photosJSON, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("marshal review photos: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		review.ReviewID,
		review.ProductID,
		review.Rating,
		review.Summary,
		review.Recommend,
		review.Response,
		review.Body,
		review.Date,
		review.ReviewerName,
		review.ReviewerEmail,
		photosJSON,
		review.Helpfulness,
		review.Reported,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("review", "review_id", review.ReviewID)
		}
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// MarkHelpful increments the helpfulness counter in a single statement so
// concurrent calls never lose an increment. An unknown id affects no rows.
func (r *ReviewRepository) MarkHelpful(ctx context.Context, reviewID string) (_ int64, err error) {
	query := `UPDATE reviews SET helpfulness = helpfulness + 1 WHERE review_id = $1`

	ctx, end := r.tracer.Trace(ctx, "MarkReviewHelpful", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query, reviewID)
	if err != nil {
		return 0, fmt.Errorf("mark review helpful: %w", err)
	}

	return ct.RowsAffected(), nil
}

// Report sets the reported flag on a visible review. It returns 0 when the id
// is unknown or the review was already reported.
func (r *ReviewRepository) Report(ctx context.Context, reviewID string) (_ int64, err error) {
	query := `UPDATE reviews SET reported = 1 WHERE review_id = $1 AND reported = 0`

	ctx, end := r.tracer.Trace(ctx, "ReportReview", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query, reviewID)
	if err != nil {
		return 0, fmt.Errorf("report review: %w", err)
	}

	return ct.RowsAffected(), nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var (
		rv         domain.Review
		photosJSON []byte
	)

	if err := row.Scan(
		&rv.ReviewID,
		&rv.ProductID,
		&rv.Rating,
		&rv.Summary,
		&rv.Recommend,
		&rv.Response,
		&rv.Body,
		&rv.Date,
		&rv.ReviewerName,
		&rv.ReviewerEmail,
		&photosJSON,
		&rv.Helpfulness,
		&rv.Reported,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan review row: %w", err)
	}

	rv.Photos = []string{}
	if len(photosJSON) > 0 {
		if err := json.Unmarshal(photosJSON, &rv.Photos); err != nil {
			return nil, fmt.Errorf("unmarshal review photos: %w", err)
		}
	}

	return &rv, nil
}
