package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	saledomain "github.com/stockswift/stockswift/internal/sale/domain"
)

// Summary is the financial roll-up of one reporting period.
type Summary struct {
	GrossRevenue    decimal.Decimal
	TotalDiscount   decimal.Decimal
	NetRevenue      decimal.Decimal
	CostOfGoodsSold decimal.Decimal
	NetProfit       decimal.Decimal
	TotalUnits      int
}

// Period identifies a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

func (p Period) Label() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Summarize aggregates a period's sale set. Pure: no storage access, an empty
// set yields a zero summary rather than an error.
func Summarize(sales []saledomain.Sale) Summary {
	summary := Summary{
		GrossRevenue:    decimal.Zero,
		TotalDiscount:   decimal.Zero,
		NetRevenue:      decimal.Zero,
		CostOfGoodsSold: decimal.Zero,
		NetProfit:       decimal.Zero,
	}

	for _, sale := range sales {
		summary.GrossRevenue = summary.GrossRevenue.Add(sale.Subtotal)
		summary.TotalDiscount = summary.TotalDiscount.Add(sale.Discount)
		summary.NetRevenue = summary.NetRevenue.Add(sale.Total)
		summary.CostOfGoodsSold = summary.CostOfGoodsSold.Add(sale.CostOfGoodsSold)
		for _, item := range sale.Items {
			summary.TotalUnits += item.Quantity
		}
	}

	summary.NetProfit = summary.NetRevenue.Sub(summary.CostOfGoodsSold)
	return summary
}
