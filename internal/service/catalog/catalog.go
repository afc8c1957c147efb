package catalogservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductStorage interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type CatalogService struct {
	log     *slog.Logger
	storage ProductStorage
}

func New(log *slog.Logger, storage ProductStorage) *CatalogService {
	return &CatalogService{
		log:     log,
		storage: storage,
	}
}

func (c *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	const op = "service.catalog.ListProducts"
	log := c.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, bound := range []*decimal.Decimal{filter.MinPrice, filter.MaxPrice} {
		if bound != nil && !models.ValidPrice(*bound) {
			err := fmt.Errorf("%w: price bound is out of range", serviceerrors.ErrInvalidArgument)
			log.Warn("bad price range", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		err := fmt.Errorf("%w: min_price is greater than max_price", serviceerrors.ErrInvalidArgument)
		log.Warn("bad price range", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products, err := c.storage.ListProducts(ctx, filter)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to list products", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

func (c *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	const op = "service.catalog.GetProduct"
	log := c.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	product, err := c.storage.GetProduct(ctx, id)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to get product", err)
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return product, nil
}

func (c *CatalogService) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	const op = "service.catalog.CreateProduct"
	log := c.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	product, err := fromInput(input)
	if err != nil {
		log.Warn("invalid product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	product.Id = uuid.New()
	product.CreatedAt = time.Now().UTC()

	created, err := c.storage.CreateProduct(ctx, product)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to create product", err)
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("product created", slog.String("product_id", created.Id.String()))
	return created, nil
}

func (c *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input models.ProductInput) (models.Product, error) {
	const op = "service.catalog.UpdateProduct"
	log := c.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	product, err := fromInput(input)
	if err != nil {
		log.Warn("invalid product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	product.Id = id

	updated, err := c.storage.UpdateProduct(ctx, product)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to update product", err)
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (c *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "service.catalog.DeleteProduct"
	log := c.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.storage.DeleteProduct(ctx, id); err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to delete product", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("product deleted", slog.String("product_id", id.String()))
	return nil
}

func fromInput(input models.ProductInput) (models.Product, error) {
	if input.Price.IsNegative() {
		return models.Product{}, fmt.Errorf("%w: price must not be negative", serviceerrors.ErrInvalidArgument)
	}
	if !models.ValidPrice(input.Price) {
		return models.Product{}, fmt.Errorf("%w: price is out of range", serviceerrors.ErrInvalidArgument)
	}
	price := input.Price.Round(2)
	if !models.ValidPrice(price) {
		return models.Product{}, fmt.Errorf("%w: price is out of range", serviceerrors.ErrInvalidArgument)
	}
	if input.Stock < 0 {
		return models.Product{}, fmt.Errorf("%w: stock must not be negative", serviceerrors.ErrInvalidArgument)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Product{}, fmt.Errorf("%w: name is required", serviceerrors.ErrInvalidArgument)
	}

	return models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       price,
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		Images:      cleanList(input.Images),
		Sizes:       cleanList(input.Sizes),
		Colors:      cleanList(input.Colors),
		Stock:       input.Stock,
	}, nil
}

// cleanList trims every entry and drops the empty ones, the way the admin
// form splits "S, M, ,L".
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
