package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"storefront/internal/database/psql"
	"storefront/internal/seed"
	catalogservice "storefront/internal/service/catalog"
	"storefront/pkg/config"
	"storefront/pkg/lib/logger"
	"storefront/pkg/lib/logger/sl"

	"github.com/brianvoe/gofakeit/v7"
)

func main() {
	count := flag.Int("n", 30, "number of products to create")
	seedValue := flag.Uint64("seed", 0, "faker seed, 0 picks a random one")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.SetupLogger(cfg.HTTP.Env)
	if err != nil {
		panic(err)
	}

	storage, err := psql.New(log, cfg.ConnectionString())
	if err != nil {
		panic(err)
	}

	catalog := catalogservice.New(log, storage)
	code := seedCatalog(context.Background(), log, catalog, gofakeit.New(*seedValue), *count)

	storage.Close()
	os.Exit(code)
}

// seedCatalog returns the process exit code.
func seedCatalog(ctx context.Context, log *slog.Logger, creator seed.ProductCreator, faker *gofakeit.Faker, n int) int {
	if _, err := seed.Run(ctx, log, creator, faker, n); err != nil {
		log.Error("Failed to seed catalog", sl.Err(err))
		return 1
	}
	return 0
}
