package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockswift/stockswift/internal/clock"
	saledomain "github.com/stockswift/stockswift/internal/sale/domain"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Clock clock.Clock
}

// Exporter renders a period report in its portable encodings. Given the same
// sales, summary and period (and clock instant) every encoding is
// deterministic.
type Exporter struct {
	clock clock.Clock
}

func NewExporter(p Params) *Exporter {
	return &Exporter{clock: p.Clock}
}

type documentMetrics struct {
	GrossRevenue    json.Number `json:"grossRevenue"`
	TotalDiscount   json.Number `json:"totalDiscount"`
	NetRevenue      json.Number `json:"netRevenue"`
	CostOfGoodsSold json.Number `json:"costOfGoodsSold"`
	NetProfit       json.Number `json:"netProfit"`
	TotalUnits      int         `json:"totalUnits"`
}

type saleLineItem struct {
	ProductID string      `json:"productId"`
	Quantity  int         `json:"quantity"`
	SalePrice json.Number `json:"salePrice"`
	CostPrice json.Number `json:"costPrice"`
}

// saleLine is the report's own rendering of a sale: camelCase keys,
// epoch-millisecond timestamps, money as plain JSON numbers.
type saleLine struct {
	ID              string         `json:"id"`
	Items           []saleLineItem `json:"items"`
	Subtotal        json.Number    `json:"subtotal"`
	Discount        json.Number    `json:"discount"`
	DiscountType    string         `json:"discountType"`
	Total           json.Number    `json:"total"`
	CostOfGoodsSold json.Number    `json:"costOfGoodsSold"`
	CreatedAt       int64          `json:"createdAt"`
}

type document struct {
	Period     string          `json:"period"`
	Metrics    documentMetrics `json:"metrics"`
	Sales      []saleLine      `json:"sales"`
	ExportedAt string          `json:"exportedAt"`
}

func toSaleLine(s saledomain.Sale) saleLine {
	items := make([]saleLineItem, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, saleLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			SalePrice: amount(item.SalePrice),
			CostPrice: amount(item.CostPrice),
		})
	}

	return saleLine{
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

func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// JSON renders the structured period document: full metric set, the raw sale
// records, and the export timestamp.
func (e *Exporter) JSON(sales []saledomain.Sale, summary Summary, period Period) ([]byte, error) {
	lines := make([]saleLine, 0, len(sales))
	for _, sale := range sales {
		lines = append(lines, toSaleLine(sale))
	}

	doc := document{
		Period: period.Label(),
		Metrics: documentMetrics{
			GrossRevenue:    json.Number(summary.GrossRevenue.StringFixed(2)),
			TotalDiscount:   json.Number(summary.TotalDiscount.StringFixed(2)),
			NetRevenue:      json.Number(summary.NetRevenue.StringFixed(2)),
			CostOfGoodsSold: json.Number(summary.CostOfGoodsSold.StringFixed(2)),
			NetProfit:       json.Number(summary.NetProfit.StringFixed(2)),
			TotalUnits:      summary.TotalUnits,
		},
		Sales:      lines,
		ExportedAt: e.clock.Now().Format(time.RFC3339),
	}

	return json.MarshalIndent(doc, "", "  ")
}

// CSV renders the flat tabular encoding: one row per sale followed by a
// trailing period-summary block.
func (e *Exporter) CSV(sales []saledomain.Sale, summary Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Subtotal", "Discount", "Total", "COGS", "Profit"}); err != nil {
		return nil, err
	}
	for _, sale := range sales {
		row := []string{
			sale.CreatedAt.Format("2006-01-02"),
			sale.Subtotal.StringFixed(2),
			sale.Discount.StringFixed(2),
			sale.Total.StringFixed(2),
			sale.CostOfGoodsSold.StringFixed(2),
			sale.Total.Sub(sale.CostOfGoodsSold).StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	summaryRows := [][]string{
		{""},
		{"PERIOD SUMMARY"},
		{"Gross Revenue", summary.GrossRevenue.StringFixed(2)},
		{"Total Discounts", summary.TotalDiscount.StringFixed(2)},
		{"Net Revenue", summary.NetRevenue.StringFixed(2)},
		{"COGS", summary.CostOfGoodsSold.StringFixed(2)},
		{"Net Profit", summary.NetProfit.StringFixed(2)},
		{"Units Sold", strconv.Itoa(summary.TotalUnits)},
	}
	for _, row := range summaryRows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
