package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Product, error)
	List(ctx context.Context, db *gorm.DB) ([]*Product, error)
	Search(ctx context.Context, db *gorm.DB, query string) ([]*Product, error)
	Save(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id string) (int64, error)

	// AdjustQuantity applies a relative stock change in place and reports how
	// many rows matched, so callers inside a transaction can detect a product
	// that vanished mid-operation.
	AdjustQuantity(ctx context.Context, db *gorm.DB, id string, delta int, now time.Time) (int64, error)

	Clear(ctx context.Context, db *gorm.DB) error
	BulkInsert(ctx context.Context, db *gorm.DB, products []*Product) error
}
