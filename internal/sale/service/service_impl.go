package service

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stockswift/stockswift/internal/clock"
	productdomain "github.com/stockswift/stockswift/internal/product/domain"
	"github.com/stockswift/stockswift/internal/sale/domain"
	"github.com/stockswift/stockswift/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     domain.Repository
	Products productdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	products productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("sale.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		products: p.Products,
	}
}

// Finalize records the sale and decrements stock on every referenced product
// in one transaction: a product that vanished mid-operation aborts the whole
// sale with no partial decrement.
func (s *Service) Finalize(ctx context.Context, req domain.FinalizeSaleRequest) (domain.Sale, error) {
	if len(req.Items) == 0 {
		return domain.Sale{}, domain.ErrEmptySale
	}
	for _, item := range req.Items {
		if item.ProductID == "" {
			return domain.Sale{}, domain.ErrItemProductRequired
		}
		if item.Quantity <= 0 {
			return domain.Sale{}, domain.ErrInvalidItemQuantity
		}
		if item.SalePrice.IsNegative() || item.CostPrice.IsNegative() {
			return domain.Sale{}, domain.ErrInvalidItemPrice
		}
	}

	subtotal := decimal.Zero
	cogs := decimal.Zero
	for _, item := range req.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(item.SalePrice.Mul(qty))
		cogs = cogs.Add(item.CostPrice.Mul(qty))
	}

	discount, err := resolveDiscount(subtotal, req.DiscountValue, req.DiscountType)
	if err != nil {
		return domain.Sale{}, err
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	now := s.clock.Now()
	sale := domain.Sale{
		ID:              "sale_" + ulid.Make().String(),
		Items:           req.Items,
		Subtotal:        subtotal,
		Discount:        discount,
		DiscountType:    req.DiscountType,
		Total:           total,
		CostOfGoodsSold: cogs,
		CreatedAt:       now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			rows, err := s.products.AdjustQuantity(ctx, tx, item.ProductID, -item.Quantity, now)
			if err != nil {
				return err
			}
			if rows == 0 {
				return domain.ErrProductMissing
			}
		}
		return s.repo.Insert(ctx, tx, &sale)
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductMissing) {
			return domain.Sale{}, domain.ErrProductMissing
		}
		return domain.Sale{}, db.WrapStorage("sale finalize", err)
	}

	s.log.Info("sale finalized",
		zap.String("id", sale.ID),
		zap.Int("items", len(sale.Items)),
		zap.String("total", sale.Total.StringFixed(2)),
	)
	return sale, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Sale, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, db.WrapStorage("sale list", err)
	}
	return deref(items), nil
}

func (s *Service) ListByPeriod(ctx context.Context, year int, month time.Month) ([]domain.Sale, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	items, err := s.repo.ListByRange(ctx, s.db, from, to)
	if err != nil {
		return nil, db.WrapStorage("sale list by period", err)
	}
	return deref(items), nil
}

func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.repo.Clear(ctx, s.db); err != nil {
		return db.WrapStorage("sale clear", err)
	}
	return nil
}

// resolveDiscount turns the requested discount into an absolute amount. The
// amount itself is not clamped to the subtotal; only the final total is.
func resolveDiscount(subtotal, value decimal.Decimal, kind domain.DiscountType) (decimal.Decimal, error) {
	switch kind {
	case domain.DiscountFixed:
		if value.IsNegative() {
			return decimal.Zero, domain.ErrInvalidDiscount
		}
		return value, nil
	case domain.DiscountPercentage:
		if value.IsNegative() || value.GreaterThan(hundred) {
			return decimal.Zero, domain.ErrInvalidDiscount
		}
		return subtotal.Mul(value).Div(hundred), nil
	default:
		return decimal.Zero, domain.ErrInvalidDiscountType
	}
}

func deref(items []*domain.Sale) []domain.Sale {
	sales := make([]domain.Sale, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		sales = append(sales, *item)
	}
	return sales
}
