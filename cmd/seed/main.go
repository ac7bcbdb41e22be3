package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/craftlane/storefront/internal/config"
	"github.com/craftlane/storefront/internal/domain"
	"github.com/craftlane/storefront/internal/repository/postgres"
	"github.com/craftlane/storefront/migrations"
	"github.com/craftlane/storefront/pkg/database"
	"github.com/craftlane/storefront/pkg/logger"
)

// seedProducts is the demo catalog loaded into an empty store.
func seedProducts() []domain.Product {
	tee := "/uploads/classic-tee.png"
	sneaker := "/uploads/sneaker-runner.png"
	jacket := "/uploads/denim-jacket.png"

	return []domain.Product{
		{
			Name:        "Classic Tee",
			Description: "Soft cotton tee in a relaxed fit.",
			Price:       19.99,
			Quantity:    5,
			Category:    "Apparel",
			ImageURL:    &tee,
			InStock:     true,
			Variants:    domain.StructuredVariants([]domain.Variant{{Name: "Size", Options: []string{"S", "M", "L", "XL"}}}),
		},
		{
			Name:        "Sneaker Runner",
			Description: "Lightweight everyday runner.",
			Price:       79.99,
			Quantity:    10,
			Category:    "Footwear",
			ImageURL:    &sneaker,
			InStock:     true,
			Variants:    domain.StructuredVariants([]domain.Variant{{Name: "Size", Options: []string{"40", "41", "42", "43", "44"}}}),
		},
		{
			Name:        "Denim Jacket",
			Description: "Stonewashed denim jacket.",
			Price:       99.5,
			Quantity:    3,
			Category:    "Apparel",
			ImageURL:    &jacket,
			InStock:     true,
			Variants:    domain.StructuredVariants([]domain.Variant{{Name: "Size", Options: []string{"S", "M", "L"}}}),
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("catalog-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        2,
		MinConns:        1,
		MaxConnLifetime: time.Minute,
		MaxConnIdleTime: time.Minute,
	}

	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, log)
	if err != nil {
		log.Error("connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Error("run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Seed only an empty catalog so reruns stay idempotent.
	var count int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM products").Scan(&count); err != nil {
		log.Error("count products", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if count > 0 {
		log.Info("catalog already seeded, nothing to do", slog.Int("products", count))
		return
	}

	repo := postgres.NewProductRepository(pool)
	for _, p := range seedProducts() {
		product := p
		if err := repo.Create(ctx, &product); err != nil {
			log.Error("seed product", slog.String("name", product.Name), slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("seeded product",
			slog.Int64("id", product.ID),
			slog.String("name", product.Name),
			slog.String("category", product.Category),
		)
	}

	log.Info("catalog seeded", slog.Int("products", len(seedProducts())))
}
