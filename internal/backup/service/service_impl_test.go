package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stockswift/stockswift/internal/backup/domain"
	"github.com/stockswift/stockswift/internal/clock"
	productdomain "github.com/stockswift/stockswift/internal/product/domain"
	productrepo "github.com/stockswift/stockswift/internal/product/repository"
	saledomain "github.com/stockswift/stockswift/internal/sale/domain"
	salerepo "github.com/stockswift/stockswift/internal/sale/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc      domain.Service
	db       *gorm.DB
	clk      *clock.FakeClock
	products productdomain.Repository
	sales    saledomain.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&productdomain.Product{}, &saledomain.Sale{}))

	clk := clock.NewFakeClock(time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC))
	products := productrepo.Provide()
	sales := salerepo.Provide()
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		Clock:    clk,
		Products: products,
		Sales:    sales,
	})
	return &fixture{svc: svc, db: db, clk: clk, products: products, sales: sales}
}

func (f *fixture) seedProduct(t *testing.T, id, sku string) productdomain.Product {
	t.Helper()
	now := f.clk.Now()
	product := productdomain.Product{
		ID:           id,
		SKU:          sku,
		InternalCode: "INT-" + id,
		Name:         "Product " + id,
		Quantity:     10,
		CostPrice:    decimal.RequireFromString("5.00"),
		SalePrice:    decimal.RequireFromString("9.90"),
		ExpiryDate:   "2025-12-31",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.products.Insert(context.Background(), f.db, &product))
	return product
}

func (f *fixture) seedSale(t *testing.T, id string) saledomain.Sale {
	t.Helper()
	sale := saledomain.Sale{
		ID: id,
		Items: []saledomain.SaleItem{
			{
				ProductID: "p1",
				Quantity:  3,
				SalePrice: decimal.RequireFromString("9.90"),
				CostPrice: decimal.RequireFromString("5.00"),
			},
		},
		Subtotal:        decimal.RequireFromString("29.70"),
		Discount:        decimal.RequireFromString("2.97"),
		DiscountType:    saledomain.DiscountPercentage,
		Total:           decimal.RequireFromString("26.73"),
		CostOfGoodsSold: decimal.RequireFromString("15.00"),
		CreatedAt:       f.clk.Now(),
	}
	require.NoError(t, f.sales.Insert(context.Background(), f.db, &sale))
	return sale
}

func TestExportImportRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product := f.seedProduct(t, "p1", "A1")
	sale := f.seedSale(t, "sale_1")

	exported, err := f.svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.clk.Now().UnixMilli(), exported.ExportedAt)
	require.Len(t, exported.Products, 1)
	require.Len(t, exported.Sales, 1)

	// Serialize and parse again, as a real backup file would be.
	encoded, err := json.MarshalIndent(exported, "", "  ")
	require.NoError(t, err)
	parsed, err := domain.ParseBackup(encoded)
	require.NoError(t, err)

	require.NoError(t, f.svc.Import(ctx, parsed))

	restored, err := f.products.FindByID(ctx, f.db, product.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, product.ID, restored.ID)
	assert.Equal(t, product.SKU, restored.SKU)
	assert.Equal(t, product.InternalCode, restored.InternalCode)
	assert.Equal(t, product.Quantity, restored.Quantity)
	assert.True(t, restored.CostPrice.Equal(product.CostPrice))
	assert.True(t, restored.SalePrice.Equal(product.SalePrice))
	assert.True(t, restored.CreatedAt.Equal(product.CreatedAt))
	assert.True(t, restored.UpdatedAt.Equal(product.UpdatedAt))

	sales, err := f.sales.List(ctx, f.db)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)
	assert.True(t, sales[0].Subtotal.Equal(sale.Subtotal))
	assert.True(t, sales[0].Discount.Equal(sale.Discount))
	assert.True(t, sales[0].Total.Equal(sale.Total))
	assert.True(t, sales[0].CreatedAt.Equal(sale.CreatedAt))
	require.Len(t, sales[0].Items, 1)
	assert.Equal(t, "p1", sales[0].Items[0].ProductID)
}

func TestImportReplacesExistingData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProduct(t, "p1", "A1")
	exported, err := f.svc.Export(ctx)
	require.NoError(t, err)

	// Data written after the export must be gone after the restore.
	f.seedProduct(t, "p2", "B2")
	f.seedSale(t, "sale_after")

	require.NoError(t, f.svc.Import(ctx, exported))

	products, err := f.products.List(ctx, f.db)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)

	sales, err := f.sales.List(ctx, f.db)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestImportRejectsMissingCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := domain.ParseBackup([]byte(`{"sales": []}`))
	assert.ErrorIs(t, err, domain.ErrInvalidBackup)

	_, err = domain.ParseBackup([]byte(`{"products": null, "sales": []}`))
	assert.ErrorIs(t, err, domain.ErrInvalidBackup)

	_, err = domain.ParseBackup([]byte(`not json`))
	assert.ErrorIs(t, err, domain.ErrInvalidBackup)

	// Empty collections are structurally valid.
	parsed, err := domain.ParseBackup([]byte(`{"products": [], "sales": [], "exportedAt": 0}`))
	require.NoError(t, err)
	require.NoError(t, f.svc.Import(ctx, parsed))

	assert.ErrorIs(t, f.svc.Import(ctx, domain.BackupData{Sales: []domain.SaleRecord{}}), domain.ErrInvalidBackup)
}

func TestImportFailureLeavesStoreIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProduct(t, "p1", "A1")

	// Two products with the same SKU violate the unique constraint mid-import;
	// the transaction must roll the clears back too.
	broken := domain.BackupData{
		Products: []domain.ProductRecord{
			{ID: "x1", SKU: "DUP", InternalCode: "INT-x1", Name: "One", CostPrice: "1", SalePrice: "2", ExpiryDate: "2027-01-01"},
			{ID: "x2", SKU: "DUP", InternalCode: "INT-x2", Name: "Two", CostPrice: "1", SalePrice: "2", ExpiryDate: "2027-01-01"},
		},
		Sales:      []domain.SaleRecord{},
		ExportedAt: f.clk.Now().UnixMilli(),
	}

	err := f.svc.Import(ctx, broken)
	require.Error(t, err)

	products, err := f.products.List(ctx, f.db)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestImportRejectsMalformedAmounts(t *testing.T) {
	f := newFixture(t)

	broken := domain.BackupData{
		Products: []domain.ProductRecord{
			{ID: "x1", SKU: "A1", InternalCode: "INT-x1", Name: "One", CostPrice: "abc", SalePrice: "2", ExpiryDate: "2027-01-01"},
		},
		Sales: []domain.SaleRecord{},
	}

	assert.ErrorIs(t, f.svc.Import(context.Background(), broken), domain.ErrMalformedRecord)
}

func TestClearAllData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProduct(t, "p1", "A1")
	f.seedSale(t, "sale_1")

	require.NoError(t, f.svc.ClearAll(ctx))

	products, err := f.products.List(ctx, f.db)
	require.NoError(t, err)
	assert.Empty(t, products)

	sales, err := f.sales.List(ctx, f.db)
	require.NoError(t, err)
	assert.Empty(t, sales)
}
