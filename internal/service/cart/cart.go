package cartservice

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
)

type CartItemStorage interface {
	GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error)
	AddToCart(ctx context.Context, items []models.CartItem) ([]models.CartItem, error)
	RemoveFromCart(ctx context.Context, userId uuid.UUID, itemId uuid.UUID) error
	ViewCart(ctx context.Context, userId uuid.UUID) (models.Cart, error)
	ClearCart(ctx context.Context, userId uuid.UUID) error
}

type CartApiService struct {
	log     *slog.Logger
	storage CartItemStorage
	now     func() time.Time
}

func New(log *slog.Logger, storage CartItemStorage) *CartApiService {
	return &CartApiService{
		log:     log,
		storage: storage,
		now:     time.Now,
	}
}

// AddToCart puts one selection into the user's cart under a fresh id.
func (c *CartApiService) AddToCart(ctx context.Context, userId uuid.UUID, req models.AddToCartRequest) (models.CartItem, error) {
	const op = "service.cart.AddToCart"
	log := c.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Quantity < 1 {
		err := fmt.Errorf("%w: quantity must be at least 1", serviceerrors.ErrInvalidArgument)
		log.Warn("bad quantity", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	product, err := c.storage.GetProduct(ctx, req.ProductId)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to get product", err)
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	size, color := strings.TrimSpace(req.Size), strings.TrimSpace(req.Color)
	if err := checkVariant(product, size, color); err != nil {
		log.Warn("variant is not offered", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item := models.CartItem{
		Id:          uuid.New(),
		UserId:      userId,
		ProductId:   product.Id,
		Quantity:    req.Quantity,
		Size:        size,
		Color:       color,
		AddedAt:     c.now().UTC(),
		ProductName: product.Name,
		Price:       product.Price,
	}

	if _, err := c.storage.AddToCart(ctx, []models.CartItem{item}); err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to add item to cart", err)
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

// AddBulkToCart turns every row into its own item of quantity 1. Rows are
// stored together or not at all.
func (c *CartApiService) AddBulkToCart(ctx context.Context, userId uuid.UUID, req models.BulkAddRequest) ([]models.CartItem, error) {
	const op = "service.cart.AddBulkToCart"
	log := c.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(req.Rows) == 0 {
		err := fmt.Errorf("%w: at least one row is required", serviceerrors.ErrInvalidArgument)
		log.Warn("empty bulk order", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	product, err := c.storage.GetProduct(ctx, req.ProductId)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to get product", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	addedAt := c.now().UTC()
	items := make([]models.CartItem, 0, len(req.Rows))
	for i, row := range req.Rows {
		size, color := strings.TrimSpace(row.Size), strings.TrimSpace(row.Color)
		if err := checkVariant(product, size, color); err != nil {
			err = fmt.Errorf("row %d: %w", i+1, err)
			log.Warn("variant is not offered", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		item := models.CartItem{
			Id:          uuid.New(),
			UserId:      userId,
			ProductId:   product.Id,
			Quantity:    1,
			Size:        size,
			Color:       color,
			AddedAt:     addedAt,
			ProductName: product.Name,
			Price:       product.Price,
		}
		if name := strings.TrimSpace(row.JerseyName); name != "" {
			item.JerseyName = &name
		}
		if row.ChestNumber > 0 {
			number := row.ChestNumber
			item.ChestNumber = &number
		}
		items = append(items, item)
	}

	if _, err := c.storage.AddToCart(ctx, items); err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to add bulk items to cart", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("bulk items added", slog.Int("count", len(items)))
	return items, nil
}

func (c *CartApiService) RemoveFromCart(ctx context.Context, userId uuid.UUID, itemId uuid.UUID) error {
	const op = "service.cart.RemoveFromCart"
	log := c.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.storage.RemoveFromCart(ctx, userId, itemId); err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to remove item from cart", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ViewCart returns the cart priced at current product prices.
func (c *CartApiService) ViewCart(ctx context.Context, userId uuid.UUID) (models.Cart, error) {
	const op = "service.cart.ViewCart"
	log := c.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := c.storage.ViewCart(ctx, userId)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to view cart", err)
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.Total = models.CartTotal(cart.Items)

	return cart, nil
}

func (c *CartApiService) ClearCart(ctx context.Context, userId uuid.UUID) error {
	const op = "service.cart.ClearCart"
	log := c.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.storage.ClearCart(ctx, userId); err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to clear cart", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// checkVariant requires size and color, and when the product lists its
// sizes or colors the choice must be one of them.
func checkVariant(product models.Product, size, color string) error {
	if size == "" || color == "" {
		return fmt.Errorf("%w: size and color are required", serviceerrors.ErrInvalidArgument)
	}
	if len(product.Sizes) > 0 && !slices.Contains(product.Sizes, size) {
		return fmt.Errorf("%w: size %q is not available", serviceerrors.ErrInvalidArgument, size)
	}
	if len(product.Colors) > 0 && !slices.Contains(product.Colors, color) {
		return fmt.Errorf("%w: color %q is not available", serviceerrors.ErrInvalidArgument, color)
	}
	return nil
}
