package psql

import (
	"context"
	"fmt"
	"log/slog"

	databaseerrors "storefront/internal/database"
	"storefront/internal/models"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CreateOrder writes the order and its items, takes the ordered quantities
// out of stock and empties the owner's cart, all in one transaction.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	const op = "database.psql.CreateOrder"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error("Failed to begin transaction", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, status, total, shipping_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, order.Id, order.UserId, order.Status, order.Total, order.ShippingAddress, order.CreatedAt); err != nil {
		log.Error("Failed to insert order", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, item := range order.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1
			WHERE id=$2 AND stock >= $1;
		`, item.Quantity, item.ProductId)
		if err != nil {
			log.Error("Failed to reserve stock", sl.Err(err))
			return models.Order{}, fmt.Errorf("%s: %w", op, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			log.Error("Failed to get affected rows", sl.Err(err))
			return models.Order{}, fmt.Errorf("%s: %w", op, err)
		}
		if affected == 0 {
			log.Warn("Not enough stock", slogProduct(item.ProductId), sl.Err(databaseerrors.ErrInsufficientStock))
			return models.Order{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrInsufficientStock)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, size, color, jersey_name, chest_number, price_at_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`,
			item.Id, order.Id, item.ProductId, item.Quantity, item.Size, item.Color,
			item.JerseyName, item.ChestNumber, item.PriceAtTime,
		); err != nil {
			log.Error("Failed to insert order item", sl.Err(err))
			return models.Order{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id=$1;
	`, order.UserId); err != nil {
		log.Error("Failed to clear cart", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

func (s *Storage) ListOrdersByUser(ctx context.Context, userId uuid.UUID) ([]models.Order, error) {
	const op = "database.psql.ListOrdersByUser"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, user_id, status, total, shipping_address, created_at FROM orders
		WHERE user_id=$1
		ORDER BY created_at DESC;
	`, userId)
	if err != nil {
		log.Error("Failed to select orders", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.Id, &o.UserId, &o.Status, &o.Total, &o.ShippingAddress, &o.CreatedAt); err != nil {
			log.Error("Failed to scan row", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("Failed to iterate rows", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachOrderItems(ctx, orders); err != nil {
		log.Error("Failed to load order items", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}

// ListOrders returns every order with its customer, newest first.
func (s *Storage) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "database.psql.ListOrders"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT o.id, o.user_id, o.status, o.total, o.shipping_address, o.created_at, u.email, u.full_name
		FROM orders AS o
		JOIN users AS u
		ON o.user_id = u.id
		ORDER BY o.created_at DESC;
	`)
	if err != nil {
		log.Error("Failed to select orders", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var (
			o        models.Order
			customer models.Customer
		)
		if err := rows.Scan(
			&o.Id, &o.UserId, &o.Status, &o.Total, &o.ShippingAddress, &o.CreatedAt,
			&customer.Email, &customer.FullName,
		); err != nil {
			log.Error("Failed to scan row", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		o.Customer = &customer
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("Failed to iterate rows", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachOrderItems(ctx, orders); err != nil {
		log.Error("Failed to load order items", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}

func (s *Storage) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	const op = "database.psql.UpdateOrderStatus"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status=$1
		WHERE id=$2;
	`, status, id)
	if err != nil {
		log.Error("Failed to update order status", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Error("Failed to get affected rows", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		log.Warn("Order doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}

// AdvanceOrderStatus moves the order to status `to` only while it is still in
// `from`. It reports false when the order exists but is in another status.
func (s *Storage) AdvanceOrderStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	const op = "database.psql.AdvanceOrderStatus"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status=$1
		WHERE id=$2 AND status=$3;
	`, to, id, from)
	if err != nil {
		log.Error("Failed to update order status", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Error("Failed to get affected rows", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if affected > 0 {
		return true, nil
	}

	var exists bool
	if err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1);
	`, id); err != nil {
		log.Error("Failed to check order", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("Order doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return false, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return false, nil
}

// attachOrderItems loads the items of all given orders with one query and
// fills Items in place.
func (s *Storage) attachOrderItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	byOrder := make(map[uuid.UUID]int, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].Id.String())
		byOrder[orders[i].Id] = i
		orders[i].Items = make([]models.OrderItem, 0)
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.size, oi.color,
		       oi.jersey_name, oi.chest_number, oi.price_at_time, p.name, p.images
		FROM order_items AS oi
		JOIN products AS p
		ON oi.product_id = p.id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.order_id;
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	return scanOrderItems(rows, orders, byOrder)
}

func scanOrderItems(rows *sqlx.Rows, orders []models.Order, byOrder map[uuid.UUID]int) error {
	for rows.Next() {
		var (
			item    models.OrderItem
			product models.ProductSummary
		)
		if err := rows.Scan(
			&item.Id, &item.OrderId, &item.ProductId, &item.Quantity, &item.Size, &item.Color,
			&item.JerseyName, &item.ChestNumber, &item.PriceAtTime, &product.Name, &product.Images,
		); err != nil {
			return err
		}
		item.Product = &product

		if i, ok := byOrder[item.OrderId]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return rows.Err()
}

func slogProduct(id uuid.UUID) slog.Attr {
	return slog.String("product_id", id.String())
}
