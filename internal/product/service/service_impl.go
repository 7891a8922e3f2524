package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/stockswift/stockswift/internal/clock"
	"github.com/stockswift/stockswift/internal/product/domain"
	"github.com/stockswift/stockswift/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrNameRequired
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return domain.Product{}, domain.ErrSKURequired
	}

	expiry := strings.TrimSpace(req.ExpiryDate)
	if expiry == "" {
		return domain.Product{}, domain.ErrExpiryRequired
	}

	if !req.CostPrice.IsPositive() {
		return domain.Product{}, domain.ErrInvalidCost
	}
	if !req.SalePrice.IsPositive() {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	if req.Quantity < 0 {
		return domain.Product{}, domain.ErrInvalidStock
	}

	now := s.clock.Now()
	product := domain.Product{
		ID:           "prod_" + ulid.Make().String(),
		SKU:          sku,
		InternalCode: "INT-" + s.genID.Generate().String(),
		Name:         name,
		Quantity:     req.Quantity,
		CostPrice:    req.CostPrice,
		SalePrice:    req.SalePrice,
		ExpiryDate:   expiry,
		Description:  strings.TrimSpace(req.Description),
		ImageURL:     strings.TrimSpace(req.ImageURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Product{}, domain.ErrSKUExists
		}
		return domain.Product{}, db.WrapStorage("product insert", err)
	}

	s.log.Info("product created",
		zap.String("id", product.ID),
		zap.String("sku", product.SKU),
	)
	return product, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, db.WrapStorage("product lookup", err)
	}
	return product, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, db.WrapStorage("product list", err)
	}
	return deref(items), nil
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return s.List(ctx)
	}

	items, err := s.repo.Search(ctx, s.db, strings.TrimSpace(query))
	if err != nil {
		return nil, db.WrapStorage("product search", err)
	}
	return deref(items), nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.Product, error) {
	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Product{}, db.WrapStorage("product lookup", err)
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	if req.SKU != nil {
		product.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}
	if req.ExpiryDate != nil {
		product.ExpiryDate = strings.TrimSpace(*req.ExpiryDate)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	product.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Product{}, domain.ErrSKUExists
		}
		return domain.Product{}, db.WrapStorage("product update", err)
	}

	return *product, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	rows, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		return db.WrapStorage("product delete", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("product deleted", zap.String("id", id))
	return nil
}

func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (domain.Product, error) {
	rows, err := s.repo.AdjustQuantity(ctx, s.db, id, delta, s.clock.Now())
	if err != nil {
		return domain.Product{}, db.WrapStorage("stock adjust", err)
	}
	if rows == 0 {
		return domain.Product{}, domain.ErrNotFound
	}

	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Product{}, db.WrapStorage("product lookup", err)
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	return *product, nil
}

func deref(items []*domain.Product) []domain.Product {
	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		products = append(products, *item)
	}
	return products
}
