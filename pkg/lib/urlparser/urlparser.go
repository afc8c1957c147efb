package urlparser

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidParam = errors.New("invalid parameter")

// maxPrice matches the NUMERIC(10, 2) price columns.
var maxPrice = decimal.New(1, 8)

// ParseID reads a path segment such as {productId} as a uuid.
func ParseID(name, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a uuid", ErrInvalidParam, name)
	}
	return id, nil
}

type ProductFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ParseProductFilter reads ?category=&min_price=&max_price=. Empty values
// are treated as absent.
func ParseProductFilter(query url.Values) (ProductFilter, error) {
	filter := ProductFilter{
		Category: strings.ToLower(strings.TrimSpace(query.Get("category"))),
	}

	var err error
	if filter.MinPrice, err = parsePrice(query, "min_price"); err != nil {
		return ProductFilter{}, err
	}
	if filter.MaxPrice, err = parsePrice(query, "max_price"); err != nil {
		return ProductFilter{}, err
	}

	return filter, nil
}

func parsePrice(query url.Values, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return nil, nil
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidParam, name)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidParam, name)
	}
	if e := price.Exponent(); e < -10 || e > 8 || !price.LessThan(maxPrice) {
		return nil, fmt.Errorf("%w: %s is out of range", ErrInvalidParam, name)
	}
	return &price, nil
}
