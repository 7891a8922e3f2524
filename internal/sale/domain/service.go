package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// FinalizeSaleRequest carries the cart as the calling collaborator assembled
// it: sale-time price snapshots included. The service does not look up current
// product prices, and stock sufficiency is the caller's pre-check.
type FinalizeSaleRequest struct {
	Items         []SaleItem
	DiscountValue decimal.Decimal
	DiscountType  DiscountType
}

type Service interface {
	Finalize(ctx context.Context, req FinalizeSaleRequest) (Sale, error)
	List(ctx context.Context) ([]Sale, error)
	ListByPeriod(ctx context.Context, year int, month time.Month) ([]Sale, error)
	ClearAll(ctx context.Context) error
}

var (
	ErrEmptySale           = errors.New("sale_has_no_items")
	ErrItemProductRequired = errors.New("item_product_required")
	ErrInvalidItemQuantity = errors.New("invalid_item_quantity")
	ErrInvalidItemPrice    = errors.New("invalid_item_price")
	ErrInvalidDiscountType = errors.New("invalid_discount_type")
	ErrInvalidDiscount     = errors.New("invalid_discount_value")
	ErrProductMissing      = errors.New("sale_product_missing")
)
