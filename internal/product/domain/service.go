package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	SKU         string
	Name        string
	Quantity    int
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	ExpiryDate  string
	Description string
	ImageURL    string
}

// UpdateProductRequest is a partial update: only non-nil fields are merged
// over the stored record. Business rules are not re-validated on update.
type UpdateProductRequest struct {
	SKU         *string
	Name        *string
	Quantity    *int
	CostPrice   *decimal.Decimal
	SalePrice   *decimal.Decimal
	ExpiryDate  *string
	Description *string
	ImageURL    *string
}

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	// Get returns nil without error when the product does not exist;
	// absence is a normal outcome for lookups.
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) (Product, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int) (Product, error)
}

var (
	ErrNameRequired   = errors.New("name_required")
	ErrSKURequired    = errors.New("sku_required")
	ErrExpiryRequired = errors.New("expiry_date_required")
	ErrInvalidCost    = errors.New("invalid_cost_price")
	ErrInvalidPrice   = errors.New("invalid_sale_price")
	ErrInvalidStock   = errors.New("invalid_quantity")
	ErrSKUExists      = errors.New("sku_already_exists")
	ErrNotFound       = errors.New("product_not_found")
)
