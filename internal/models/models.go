package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

var OrderStatuses = []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered}

func IsOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsRole(s string) bool {
	return s == RoleUser || s == RoleAdmin
}

// MaxPrice is the smallest price the NUMERIC(10, 2) price columns reject.
var MaxPrice = decimal.New(1, 8)

// ValidPrice reports whether p is a non-negative price the price columns can
// hold. The exponent is bounded before any comparison so a value such as
// 1e300000000 is never expanded into a big integer.
func ValidPrice(p decimal.Decimal) bool {
	if e := p.Exponent(); e < -10 || e > 8 {
		return false
	}
	return !p.IsNegative() && p.LessThan(MaxPrice)
}

type User struct {
	Id        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Product struct {
	Id          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	Images      pq.StringArray  `json:"images" db:"images"`
	Sizes       pq.StringArray  `json:"sizes" db:"sizes"`
	Colors      pq.StringArray  `json:"colors" db:"colors"`
	Stock       int             `json:"stock" db:"stock"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// ProductFilter narrows ListProducts. Nil fields are not applied.
type ProductFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type CartItem struct {
	Id          uuid.UUID       `json:"id" db:"id"`
	UserId      uuid.UUID       `json:"user_id" db:"user_id"`
	ProductId   uuid.UUID       `json:"product_id" db:"product_id"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Size        string          `json:"size" db:"size"`
	Color       string          `json:"color" db:"color"`
	JerseyName  *string         `json:"jersey_name,omitempty" db:"jersey_name"`
	ChestNumber *int            `json:"chest_number,omitempty" db:"chest_number"`
	AddedAt     time.Time       `json:"added_at" db:"added_at"`
	ProductName string          `json:"product_name,omitempty" db:"product_name"`
	Price       decimal.Decimal `json:"price" db:"price"`
}

type Cart struct {
	UserId uuid.UUID       `json:"user_id"`
	Items  []CartItem      `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

// BulkRow is one line of a bulk order: a personalised item of quantity 1.
type BulkRow struct {
	Size        string `json:"size" validate:"required"`
	Color       string `json:"color" validate:"required"`
	JerseyName  string `json:"jersey_name" validate:"max=30"`
	ChestNumber int    `json:"chest_number" validate:"min=0,max=99"`
}

type Order struct {
	Id              uuid.UUID       `json:"id" db:"id"`
	UserId          uuid.UUID       `json:"user_id" db:"user_id"`
	Status          string          `json:"status" db:"status"`
	Total           decimal.Decimal `json:"total" db:"total"`
	ShippingAddress ShippingAddress `json:"shipping_address" db:"shipping_address"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	Customer        *Customer       `json:"user,omitempty"`
}

type Customer struct {
	Email    string `json:"email" db:"email"`
	FullName string `json:"full_name" db:"full_name"`
}

type OrderItem struct {
	Id          uuid.UUID       `json:"id" db:"id"`
	OrderId     uuid.UUID       `json:"order_id" db:"order_id"`
	ProductId   uuid.UUID       `json:"product_id" db:"product_id"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Size        string          `json:"size" db:"size"`
	Color       string          `json:"color" db:"color"`
	JerseyName  *string         `json:"jersey_name,omitempty" db:"jersey_name"`
	ChestNumber *int            `json:"chest_number,omitempty" db:"chest_number"`
	PriceAtTime decimal.Decimal `json:"price_at_time" db:"price_at_time"`
	Product     *ProductSummary `json:"product,omitempty"`
}

type ProductSummary struct {
	Name   string         `json:"name" db:"name"`
	Images pq.StringArray `json:"images" db:"images"`
}

type ShippingAddress struct {
	FullName     string `json:"full_name" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Country      string `json:"country" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
}

type Stats struct {
	TotalSales    decimal.Decimal `json:"total_sales" db:"total_sales"`
	TotalOrders   int             `json:"total_orders" db:"total_orders"`
	TotalProducts int             `json:"total_products" db:"total_products"`
	TotalUsers    int             `json:"total_users" db:"total_users"`
}

// OrderPlacedEvent is published once an order is committed.
type OrderPlacedEvent struct {
	OrderId  uuid.UUID       `json:"order_id"`
	UserId   uuid.UUID       `json:"user_id"`
	Total    decimal.Decimal `json:"total"`
	Items    []OrderItem     `json:"items"`
	PlacedAt time.Time       `json:"placed_at"`
}
