// Command seed populates the reviews database with deterministic sample data:
// a configurable number of products, each with a set of characteristics and a
// batch of reviews submitted through the regular submission workflow.
//
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/config"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/domain"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/idgen"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/repository"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/repository/postgres"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/service"
	pkgconfig "github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/config"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/database"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/logger"
)

type seedConfig struct {
	Products          int    `env:"SEED_PRODUCTS" envDefault:"100" validate:"gte=1"`
	ReviewsPerProduct int    `env:"SEED_REVIEWS_PER_PRODUCT" envDefault:"12" validate:"gte=1"`
	FirstProductID    int64  `env:"SEED_FIRST_PRODUCT_ID" envDefault:"1" validate:"gte=1"`
	RandSeed          uint64 `env:"SEED_RAND" envDefault:"42"`
}

var characteristicNames = []string{"Fit", "Length", "Comfort", "Quality", "Size", "Width"}

var summaries = []string{
	"Exactly what I wanted",
	"Runs a little small",
	"Fell apart after a month",
	"Great value for the price",
	"Would buy again",
	"Not as pictured",
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	var seed seedConfig
	if err := pkgconfig.Load(&seed); err != nil {
		return fmt.Errorf("load seed config: %w", err)
	}

	log := logger.New("reviews-seed", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, postgres.Migrations(), log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	ids, err := idgen.NewShortID(cfg.IDWorker)
	if err != nil {
		return err
	}

	reviews := postgres.NewReviewRepository(pool, nil)
	characteristics := postgres.NewCharacteristicRepository(pool, nil)
	svc := service.NewReviewService(reviews, characteristics, ids, nil, log)

	rng := rand.New(rand.NewPCG(seed.RandSeed, seed.RandSeed))
	start := time.Now()
	var nextCharID int64 = 1

	for p := 0; p < seed.Products; p++ {
		productID := seed.FirstProductID + int64(p)

		charIDs, err := seedDefinitions(ctx, reviews, characteristics, ids, rng, productID, nextCharID)
		if err != nil {
			return fmt.Errorf("seed product %d: %w", productID, err)
		}
		nextCharID += int64(len(charIDs))

		for i := 1; i < seed.ReviewsPerProduct; i++ {
			if _, err := svc.SubmitReview(ctx, productID, randomSubmission(rng, charIDs)); err != nil {
				return fmt.Errorf("seed product %d review %d: %w", productID, i, err)
			}
		}

		if (p+1)%25 == 0 {
			log.Info("seeding progress",
				slog.Int("products", p+1),
				slog.Int("of", seed.Products),
			)
		}
	}

	log.Info("seed complete",
		slog.Int("products", seed.Products),
		slog.Int("reviews", seed.Products*seed.ReviewsPerProduct),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// seedDefinitions writes a product's first review directly so that its
// characteristic values define the names later submissions resolve.
func seedDefinitions(
	ctx context.Context,
	reviews repository.ReviewRepository,
	characteristics repository.CharacteristicRepository,
	ids idgen.Generator,
	rng *rand.Rand,
	productID, firstCharID int64,
) ([]int64, error) {
	reviewID, err := ids.Generate()
	if err != nil {
		return nil, err
	}

	sub := randomSubmission(rng, nil)
	if err := reviews.Create(ctx, &domain.Review{
		ReviewID:      reviewID,
		ProductID:     productID,
		Rating:        sub.Rating,
		Summary:       sub.Summary,
		Recommend:     sub.Recommend,
		Body:          sub.Body,
		Date:          time.Now().UTC(),
		ReviewerName:  sub.Name,
		ReviewerEmail: sub.Email,
		Photos:        []string{},
	}); err != nil {
		return nil, err
	}

	n := 2 + rng.IntN(3)
	charIDs := make([]int64, 0, n)
	for i, idx := range rng.Perm(len(characteristicNames))[:n] {
		charID := firstCharID + int64(i)
		if err := characteristics.CreateValue(ctx, &domain.CharacteristicValue{
			ProductID:        productID,
			CharacteristicID: charID,
			Name:             characteristicNames[idx],
			ReviewID:         reviewID,
			Value:            float64(1 + rng.IntN(5)),
		}); err != nil {
			return nil, err
		}
		charIDs = append(charIDs, charID)
	}

	return charIDs, nil
}

func randomSubmission(rng *rand.Rand, charIDs []int64) *domain.ReviewSubmission {
	n := rng.IntN(10_000)
	chars := make(map[int64]float64, len(charIDs))
	for _, id := range charIDs {
		chars[id] = float64(1 + rng.IntN(5))
	}
	return &domain.ReviewSubmission{
		Rating:          1 + rng.IntN(5),
		Summary:         summaries[rng.IntN(len(summaries))],
		Body:            "Seeded review body number " + fmt.Sprint(n) + ".",
		Recommend:       rng.IntN(4) > 0,
		Name:            fmt.Sprintf("shopper%d", n),
		Email:           fmt.Sprintf("shopper%d@example.com", n),
		Characteristics: chars,
	}
}
