package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	saledomain "github.com/stockswift/stockswift/internal/sale/domain"
)

// PDF renders the period report as a printable document.
func (e *Exporter) PDF(sales []saledomain.Sale, summary Summary, period Period) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Monthly Sales Report", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, period.Label(), props.Text{Size: 12}),
	)

	metricRows := []struct {
		label string
		value string
	}{
		{"Gross Revenue", summary.GrossRevenue.StringFixed(2)},
		{"Total Discounts", summary.TotalDiscount.StringFixed(2)},
		{"Net Revenue", summary.NetRevenue.StringFixed(2)},
		{"Cost of Goods Sold", summary.CostOfGoodsSold.StringFixed(2)},
		{"Net Profit", summary.NetProfit.StringFixed(2)},
		{"Units Sold", fmt.Sprintf("%d", summary.TotalUnits)},
	}
	for _, metric := range metricRows {
		m.AddRow(7,
			text.NewCol(4, metric.label, props.Text{Size: 9}),
			text.NewCol(3, metric.value, props.Text{Size: 9, Align: align.Right}),
			col.New(5),
		)
	}

	// Table Header
	m.AddRow(10,
		text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Subtotal", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Discount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "COGS", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Profit", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, sale := range sales {
		m.AddRow(7,
			text.NewCol(2, sale.CreatedAt.Format("2006-01-02"), props.Text{Size: 9}),
			text.NewCol(2, sale.Subtotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, sale.Discount.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, sale.Total.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, sale.CostOfGoodsSold.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, sale.Total.Sub(sale.CostOfGoodsSold).StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
