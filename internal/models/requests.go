package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	FullName  string  `json:"full_name" validate:"required,max=200"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered"`
}

// ProductInput is the admin form for creating or replacing a product.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"required"`
	Images      []string        `json:"images" validate:"dive,url"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int             `json:"stock" validate:"min=0"`
}

type AddToCartRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=100"`
	Size      string    `json:"size" validate:"required"`
	Color     string    `json:"color" validate:"required"`
}

type BulkAddRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
	Rows      []BulkRow `json:"rows" validate:"required,min=1,max=100,dive"`
}

type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address"`
	CardNumber      string          `json:"card_number" validate:"required,credit_card"`
}

func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
