package service

import (
	"context"

	"github.com/stockswift/stockswift/internal/backup/domain"
	"github.com/stockswift/stockswift/internal/clock"
	productdomain "github.com/stockswift/stockswift/internal/product/domain"
	saledomain "github.com/stockswift/stockswift/internal/sale/domain"
	"github.com/stockswift/stockswift/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Products productdomain.Repository
	Sales    saledomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	products productdomain.Repository
	sales    saledomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("backup.service"),
		clock:    p.Clock,
		products: p.Products,
		sales:    p.Sales,
	}
}

func (s *Service) Export(ctx context.Context) (domain.BackupData, error) {
	products, err := s.products.List(ctx, s.db)
	if err != nil {
		return domain.BackupData{}, db.WrapStorage("backup export", err)
	}
	sales, err := s.sales.List(ctx, s.db)
	if err != nil {
		return domain.BackupData{}, db.WrapStorage("backup export", err)
	}

	data := domain.BackupData{
		Products:   make([]domain.ProductRecord, 0, len(products)),
		Sales:      make([]domain.SaleRecord, 0, len(sales)),
		ExportedAt: s.clock.Now().UnixMilli(),
	}
	for _, product := range products {
		data.Products = append(data.Products, domain.FromProduct(*product))
	}
	for _, sale := range sales {
		data.Sales = append(data.Sales, domain.FromSale(*sale))
	}

	s.log.Info("backup exported",
		zap.Int("products", len(data.Products)),
		zap.Int("sales", len(data.Sales)),
	)
	return data, nil
}

func (s *Service) Import(ctx context.Context, data domain.BackupData) error {
	if data.Products == nil || data.Sales == nil {
		return domain.ErrInvalidBackup
	}

	// Convert every record before touching the store so a malformed document
	// fails without clearing anything.
	products := make([]*productdomain.Product, 0, len(data.Products))
	for _, record := range data.Products {
		product, err := record.ToProduct()
		if err != nil {
			return err
		}
		products = append(products, &product)
	}
	sales := make([]*saledomain.Sale, 0, len(data.Sales))
	for _, record := range data.Sales {
		sale, err := record.ToSale()
		if err != nil {
			return err
		}
		sales = append(sales, &sale)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.products.Clear(ctx, tx); err != nil {
			return err
		}
		if err := s.sales.Clear(ctx, tx); err != nil {
			return err
		}
		if err := s.products.BulkInsert(ctx, tx, products); err != nil {
			return err
		}
		return s.sales.BulkInsert(ctx, tx, sales)
	})
	if err != nil {
		return db.WrapStorage("backup import", err)
	}

	s.log.Info("backup imported",
		zap.Int("products", len(products)),
		zap.Int("sales", len(sales)),
	)
	return nil
}

func (s *Service) ClearAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.products.Clear(ctx, tx); err != nil {
			return err
		}
		return s.sales.Clear(ctx, tx)
	})
	if err != nil {
		return db.WrapStorage("clear all data", err)
	}

	s.log.Warn("all data cleared")
	return nil
}
