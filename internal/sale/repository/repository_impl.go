package repository

import (
	"context"
	"time"

	"github.com/stockswift/stockswift/internal/sale/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sale *domain.Sale) error {
	return db.WithContext(ctx).Create(sale).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Sale, error) {
	var sales []*domain.Sale
	err := db.WithContext(ctx).Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *repo) ListByRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]*domain.Sale, error) {
	var sales []*domain.Sale
	err := db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at asc, id asc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *repo) Clear(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec("DELETE FROM sales").Error
}

func (r *repo) BulkInsert(ctx context.Context, db *gorm.DB, sales []*domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(sales).Error
}
