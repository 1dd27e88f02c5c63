package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/domain"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/database"
	apperrors "github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/errors"
)

// CharacteristicRepository implements characteristic value persistence
// operations using PostgreSQL.
type CharacteristicRepository struct {
	pool   database.DBTX
	tracer *database.QueryTracer
}

// NewCharacteristicRepository creates a new PostgreSQL-backed characteristic
// repository. tracer may be nil.
func NewCharacteristicRepository(pool database.DBTX, tracer *database.QueryTracer) *CharacteristicRepository {
	return &CharacteristicRepository{pool: pool, tracer: tracer}
}

// ListByProduct returns every characteristic value of a product in insertion order.
func (r *CharacteristicRepository) ListByProduct(ctx context.Context, productID int64) (_ []domain.CharacteristicValue, err error) {
	query := `
		SELECT product_id, characteristic_id, name, review_id, value
		FROM characteristics
		WHERE product_id = $1
		ORDER BY seq`

	ctx, end := r.tracer.Trace(ctx, "ListCharacteristics", query)
	defer func() { end(err) }()

	return r.list(ctx, query, productID)
}

// ListByReview returns every characteristic value written for a review.
func (r *CharacteristicRepository) ListByReview(ctx context.Context, reviewID string) (_ []domain.CharacteristicValue, err error) {
	query := `
		SELECT product_id, characteristic_id, name, review_id, value
		FROM characteristics
		WHERE review_id = $1
		ORDER BY seq`

	ctx, end := r.tracer.Trace(ctx, "ListCharacteristicsByReview", query)
	defer func() { end(err) }()

	return r.list(ctx, query, reviewID)
}

func (r *CharacteristicRepository) list(ctx context.Context, query string, arg any) ([]domain.CharacteristicValue, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list characteristics: %w", err)
	}
	defer rows.Close()

	values := []domain.CharacteristicValue{}
	for rows.Next() {
		var v domain.CharacteristicValue
		if err := rows.Scan(&v.ProductID, &v.CharacteristicID, &v.Name, &v.ReviewID, &v.Value); err != nil {
			return nil, fmt.Errorf("scan characteristic row: %w", err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characteristic rows: %w", err)
	}

	return values, nil
}

// FindOne returns the earliest value stored for a characteristic of a product.
func (r *CharacteristicRepository) FindOne(ctx context.Context, productID, characteristicID int64) (_ *domain.CharacteristicValue, err error) {
	query := `
		SELECT product_id, characteristic_id, name, review_id, value
		FROM characteristics
		WHERE product_id = $1 AND characteristic_id = $2
		ORDER BY seq
		LIMIT 1`

	ctx, end := r.tracer.Trace(ctx, "FindCharacteristic", query)
	defer func() { end(err) }()

	var v domain.CharacteristicValue
	err = r.pool.QueryRow(ctx, query, productID, characteristicID).Scan(
		&v.ProductID,
		&v.CharacteristicID,
		&v.Name,
		&v.ReviewID,
		&v.Value,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("characteristic",
				strconv.FormatInt(characteristicID, 10)+" of product "+strconv.FormatInt(productID, 10))
		}
		return nil, fmt.Errorf("find characteristic: %w", err)
	}

	return &v, nil
}

// CreateValue inserts a characteristic value.
func (r *CharacteristicRepository) CreateValue(ctx context.Context, value *domain.CharacteristicValue) (err error) {
	query := `
		INSERT INTO characteristics (product_id, characteristic_id, name, review_id, value)
		VALUES ($1, $2, $3, $4, $5)`

	ctx, end := r.tracer.Trace(ctx, "CreateCharacteristicValue", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query,
		value.ProductID,
		value.CharacteristicID,
		value.Name,
		value.ReviewID,
		value.Value,
	)
	if err != nil {
		return fmt.Errorf("insert characteristic value: %w", err)
	}

	return nil
}
