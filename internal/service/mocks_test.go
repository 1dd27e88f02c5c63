package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/domain"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/event"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/repository"
)

// --- Mock Review Repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Get(ctx context.Context, reviewID string) (*domain.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) MarkHelpful(ctx context.Context, reviewID string) (int64, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewRepository) Report(ctx context.Context, reviewID string) (int64, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock Characteristic Repository ---

type mockCharacteristicRepository struct {
	mock.Mock
}

func (m *mockCharacteristicRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.CharacteristicValue, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CharacteristicValue), args.Error(1)
}

func (m *mockCharacteristicRepository) FindOne(ctx context.Context, productID, characteristicID int64) (*domain.CharacteristicValue, error) {
	args := m.Called(ctx, productID, characteristicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacteristicValue), args.Error(1)
}

func (m *mockCharacteristicRepository) CreateValue(ctx context.Context, value *domain.CharacteristicValue) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *mockCharacteristicRepository) ListByReview(ctx context.Context, reviewID string) ([]domain.CharacteristicValue, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CharacteristicValue), args.Error(1)
}

// --- Mock Aggregate Repository ---

type mockAggregateRepository struct {
	mock.Mock
}

func (m *mockAggregateRepository) RecommendDistribution(ctx context.Context, productID int64) (domain.Histogram, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Histogram), args.Error(1)
}

func (m *mockAggregateRepository) RatingDistribution(ctx context.Context, productID int64) (domain.Histogram, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Histogram), args.Error(1)
}

// --- Mock ID Generator ---

type mockIDGenerator struct {
	mock.Mock
}

func (m *mockIDGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// --- Mock Event Publisher ---

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishReviewSubmitted(ctx context.Context, review *domain.Review, characteristics map[int64]float64) error {
	args := m.Called(ctx, review, characteristics)
	return args.Error(0)
}

func (m *mockEventPublisher) PublishReviewReported(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *mockEventPublisher) PublishSubmissionPartial(ctx context.Context, data event.SubmissionPartialData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
