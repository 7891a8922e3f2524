package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sale *Sale) error
	List(ctx context.Context, db *gorm.DB) ([]*Sale, error)
	// ListByRange returns sales with from <= created_at < to.
	ListByRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]*Sale, error)
	Clear(ctx context.Context, db *gorm.DB) error
	BulkInsert(ctx context.Context, db *gorm.DB, sales []*Sale) error
}
