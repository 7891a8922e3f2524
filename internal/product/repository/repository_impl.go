package repository

import (
	"context"
	"strings"
	"time"

	"github.com/stockswift/stockswift/internal/product/domain"
	pkgdb "github.com/stockswift/stockswift/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if pkgdb.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Product, error) {
	var products []*domain.Product
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, query string) ([]*domain.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var products []*domain.Product
	err := db.WithContext(ctx).
		Where("lower(name) LIKE ? OR lower(sku) LIKE ? OR lower(internal_code) LIKE ?",
			pattern, pattern, pattern).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Save(product).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	return res.RowsAffected, res.Error
}

func (r *repo) AdjustQuantity(ctx context.Context, db *gorm.DB, id string, delta int, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

func (r *repo) Clear(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec("DELETE FROM products").Error
}

func (r *repo) BulkInsert(ctx context.Context, db *gorm.DB, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(products).Error
}
