package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stocked item. SKU is the external lookup key (barcode),
// InternalCode the system-generated secondary key; both are unique across the
// whole collection.
type Product struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	SKU          string          `gorm:"column:sku;uniqueIndex:ux_products_sku;not null" json:"sku"`
	InternalCode string          `gorm:"uniqueIndex:ux_products_internal_code;not null" json:"internalCode"`
	Name         string          `gorm:"not null" json:"name"`
	Quantity     int             `gorm:"not null;default:0" json:"quantity"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"costPrice"`
	SalePrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"salePrice"`
	ExpiryDate   string          `gorm:"not null" json:"expiryDate"`
	Description  string          `gorm:"not null;default:''" json:"description,omitempty"`
	ImageURL     string          `gorm:"not null;default:''" json:"image,omitempty"`
	// Timestamps come from the injected clock; gorm must not overwrite them.
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updatedAt"`
}
