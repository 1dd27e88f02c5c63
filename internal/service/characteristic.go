package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/domain"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/repository"
)

// CharacteristicService exposes a product's characteristic values.
type CharacteristicService struct {
	repo   repository.CharacteristicRepository
	logger *slog.Logger
}

// NewCharacteristicService creates a new characteristic service.
func NewCharacteristicService(repo repository.CharacteristicRepository, logger *slog.Logger) *CharacteristicService {
	return &CharacteristicService{repo: repo, logger: logger}
}

// ListCharacteristics returns every characteristic value stored for a product.
func (s *CharacteristicService) ListCharacteristics(ctx context.Context, productID int64) ([]domain.CharacteristicValue, error) {
	values, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list characteristics: %w", err)
	}

	s.logger.DebugContext(ctx, "characteristics listed",
		slog.Int64("product_id", productID),
		slog.Int("count", len(values)),
	)
	return values, nil
}
