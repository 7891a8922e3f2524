package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// SaleItem snapshots the sold product's prices at the time of sale. ProductID
// is a weak reference: deleting the product later does not touch the sale.
type SaleItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	SalePrice decimal.Decimal `json:"salePrice"`
	CostPrice decimal.Decimal `json:"costPrice"`
}

// Sale is immutable once recorded; there is no update path, only finalize and
// bulk clear.
type Sale struct {
	ID              string                        `gorm:"primaryKey" json:"id"`
	Items           datatypes.JSONSlice[SaleItem] `gorm:"not null" json:"items"`
	Subtotal        decimal.Decimal               `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Discount        decimal.Decimal               `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	DiscountType    DiscountType                  `gorm:"not null;default:fixed" json:"discountType"`
	Total           decimal.Decimal               `gorm:"type:decimal(12,2);not null" json:"total"`
	CostOfGoodsSold decimal.Decimal               `gorm:"type:decimal(12,2);not null" json:"costOfGoodsSold"`
	CreatedAt       time.Time                     `gorm:"not null;index;autoCreateTime:false" json:"createdAt"`
}
