package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	productdomain "github.com/stockswift/stockswift/internal/product/domain"
	saledomain "github.com/stockswift/stockswift/internal/sale/domain"
)

// BackupData is the portable full-dataset snapshot:
// {"products": [...], "sales": [...], "exportedAt": <epoch millis>}.
// Timestamps travel as epoch-millisecond numbers and money as plain JSON
// numbers so documents stay interoperable with previously written backups.
type BackupData struct {
	Products   []ProductRecord `json:"products"`
	Sales      []SaleRecord    `json:"sales"`
	ExportedAt int64           `json:"exportedAt"`
}

type ProductRecord struct {
	ID           string      `json:"id"`
	SKU          string      `json:"sku"`
	InternalCode string      `json:"internalCode"`
	Name         string      `json:"name"`
	Quantity     int         `json:"quantity"`
	CostPrice    json.Number `json:"costPrice"`
	SalePrice    json.Number `json:"salePrice"`
	ExpiryDate   string      `json:"expiryDate"`
	Description  string      `json:"description,omitempty"`
	Image        string      `json:"image,omitempty"`
	CreatedAt    int64       `json:"createdAt"`
	UpdatedAt    int64       `json:"updatedAt"`
}

type SaleItemRecord struct {
	ProductID string      `json:"productId"`
	Quantity  int         `json:"quantity"`
	SalePrice json.Number `json:"salePrice"`
	CostPrice json.Number `json:"costPrice"`
}

type SaleRecord struct {
	ID              string           `json:"id"`
	Items           []SaleItemRecord `json:"items"`
	Subtotal        json.Number      `json:"subtotal"`
	Discount        json.Number      `json:"discount"`
	DiscountType    string           `json:"discountType"`
	Total           json.Number      `json:"total"`
	CostOfGoodsSold json.Number      `json:"costOfGoodsSold"`
	CreatedAt       int64            `json:"createdAt"`
}

var (
	ErrInvalidBackup   = errors.New("invalid_backup_document")
	ErrMalformedRecord = errors.New("malformed_backup_record")
)

// ParseBackup decodes and structurally validates a backup document: both
// collections must be present (empty arrays are fine, absent or null are not).
func ParseBackup(data []byte) (BackupData, error) {
	var probe struct {
		Products   json.RawMessage `json:"products"`
		Sales      json.RawMessage `json:"sales"`
		ExportedAt int64           `json:"exportedAt"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return BackupData{}, ErrInvalidBackup
	}
	if isAbsent(probe.Products) || isAbsent(probe.Sales) {
		return BackupData{}, ErrInvalidBackup
	}

	backup := BackupData{ExportedAt: probe.ExportedAt}

	dec := json.NewDecoder(bytes.NewReader(probe.Products))
	dec.UseNumber()
	if err := dec.Decode(&backup.Products); err != nil {
		return BackupData{}, ErrInvalidBackup
	}

	dec = json.NewDecoder(bytes.NewReader(probe.Sales))
	dec.UseNumber()
	if err := dec.Decode(&backup.Sales); err != nil {
		return BackupData{}, ErrInvalidBackup
	}

	return backup, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func FromProduct(p productdomain.Product) ProductRecord {
	return ProductRecord{
		ID:           p.ID,
		SKU:          p.SKU,
		InternalCode: p.InternalCode,
		Name:         p.Name,
		Quantity:     p.Quantity,
		CostPrice:    amount(p.CostPrice),
		SalePrice:    amount(p.SalePrice),
		ExpiryDate:   p.ExpiryDate,
		Description:  p.Description,
		Image:        p.ImageURL,
		CreatedAt:    p.CreatedAt.UnixMilli(),
		UpdatedAt:    p.UpdatedAt.UnixMilli(),
	}
}

func (r ProductRecord) ToProduct() (productdomain.Product, error) {
	cost, err := parseAmount(r.CostPrice)
	if err != nil {
		return productdomain.Product{}, err
	}
	price, err := parseAmount(r.SalePrice)
	if err != nil {
		return productdomain.Product{}, err
	}

	return productdomain.Product{
		ID:           r.ID,
		SKU:          r.SKU,
		InternalCode: r.InternalCode,
		Name:         r.Name,
		Quantity:     r.Quantity,
		CostPrice:    cost,
		SalePrice:    price,
		ExpiryDate:   r.ExpiryDate,
		Description:  r.Description,
		ImageURL:     r.Image,
		CreatedAt:    time.UnixMilli(r.CreatedAt).UTC(),
		UpdatedAt:    time.UnixMilli(r.UpdatedAt).UTC(),
	}, nil
}

func FromSale(s saledomain.Sale) SaleRecord {
	items := make([]SaleItemRecord, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SaleItemRecord{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			SalePrice: amount(item.SalePrice),
			CostPrice: amount(item.CostPrice),
		})
	}

	return SaleRecord{
		ID:              s.ID,
		Items:           items,
		Subtotal:        amount(s.Subtotal),
		Discount:        amount(s.Discount),
		DiscountType:    string(s.DiscountType),
		Total:           amount(s.Total),
		CostOfGoodsSold: amount(s.CostOfGoodsSold),
		CreatedAt:       s.CreatedAt.UnixMilli(),
	}
}

func (r SaleRecord) ToSale() (saledomain.Sale, error) {
	items := make([]saledomain.SaleItem, 0, len(r.Items))
	for _, item := range r.Items {
		salePrice, err := parseAmount(item.SalePrice)
		if err != nil {
			return saledomain.Sale{}, err
		}
		costPrice, err := parseAmount(item.CostPrice)
		if err != nil {
			return saledomain.Sale{}, err
		}
		items = append(items, saledomain.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			SalePrice: salePrice,
			CostPrice: costPrice,
		})
	}

	subtotal, err := parseAmount(r.Subtotal)
	if err != nil {
		return saledomain.Sale{}, err
	}
	discount, err := parseAmount(r.Discount)
	if err != nil {
		return saledomain.Sale{}, err
	}
	total, err := parseAmount(r.Total)
	if err != nil {
		return saledomain.Sale{}, err
	}
	cogs, err := parseAmount(r.CostOfGoodsSold)
	if err != nil {
		return saledomain.Sale{}, err
	}

	return saledomain.Sale{
		ID:              r.ID,
		Items:           items,
		Subtotal:        subtotal,
		Discount:        discount,
		DiscountType:    saledomain.DiscountType(r.DiscountType),
		Total:           total,
		CostOfGoodsSold: cogs,
		CreatedAt:       time.UnixMilli(r.CreatedAt).UTC(),
	}, nil
}

func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func parseAmount(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Zero, ErrMalformedRecord
	}
	return d, nil
}
