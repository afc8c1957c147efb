package seed

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

var (
	Categories = []string{"jerseys", "shoes", "equipment"}

	apparelSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}
	shoeSizes    = []string{"38", "39", "40", "41", "42", "43", "44", "45"}
)

type ProductCreator interface {
	CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error)
}

// Products makes n fake catalog entries. The same faker seed gives the same
// products.
func Products(faker *gofakeit.Faker, n int) []models.ProductInput {
	products := make([]models.ProductInput, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, product(faker))
	}
	return products
}

func product(faker *gofakeit.Faker) models.ProductInput {
	category := faker.RandomString(Categories)

	var sizes []string
	switch category {
	case "jerseys":
		sizes = pick(faker, apparelSizes, 3)
	case "shoes":
		sizes = pick(faker, shoeSizes, 4)
	}

	want := faker.IntRange(1, 3)
	colors := make([]string, 0, want)
	for len(colors) < want {
		color := faker.SafeColor()
		if !contains(colors, color) {
			colors = append(colors, color)
		}
	}

	images := make([]string, faker.IntRange(1, 3))
	for i := range images {
		images[i] = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", faker.UUID())
	}

	return models.ProductInput{
		Name:        faker.ProductName(),
		Description: faker.ProductDescription(),
		Price:       decimal.NewFromFloat(faker.Price(5, 250)).Round(2),
		Category:    category,
		Images:      images,
		Sizes:       sizes,
		Colors:      colors,
		Stock:       faker.IntRange(0, 200),
	}
}

// pick returns at least min consecutive entries of values.
func pick(faker *gofakeit.Faker, values []string, min int) []string {
	start := faker.IntRange(0, len(values)-min)
	end := faker.IntRange(start+min, len(values))
	return append([]string(nil), values[start:end]...)
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// Run creates n products through creator and reports how many were stored.
func Run(ctx context.Context, log *slog.Logger, creator ProductCreator, faker *gofakeit.Faker, n int) (int, error) {
	const op = "seed.Run"
	log = log.With("op", op)

	created := 0
	for _, input := range Products(faker, n) {
		product, err := creator.CreateProduct(ctx, input)
		if err != nil {
			return created, fmt.Errorf("%s: product %d: %w", op, created+1, err)
		}
		created++
		log.Debug("product seeded", slog.String("product_id", product.Id.String()), slog.String("name", product.Name))
	}

	log.Info("catalog seeded", slog.Int("products", created))
	return created, nil
}
