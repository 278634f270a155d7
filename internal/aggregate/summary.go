package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/KaramelBytes/saleslens-cli/internal/dataset"
)

// Summary holds the headline statistics for a loaded table. Money totals
// are computed with decimal arithmetic so they are exact at cent precision.
type Summary struct {
	Transactions      int
	TotalSales        decimal.Decimal
	AverageSale       decimal.Decimal
	Start             time.Time
	End               time.Time
	DistinctCustomers int
	TopProducts       []Group
	TopRegions        []Group
	TopReps           []Group
}

// Summarize computes a Summary over the table.
func Summarize(t *dataset.Table, topN int) (*Summary, error) {
	if t == nil || t.Len() == 0 {
		return nil, dataset.ErrNoData
	}
	if topN <= 0 {
		topN = 5
	}

	total := decimal.Zero
	customers := make(map[string]bool)
	for _, r := range t.Records {
		total = total.Add(decimal.NewFromFloat(r.TotalSales))
		if r.CustomerID != "" {
			customers[r.CustomerID] = true
		}
	}
	start, end := t.Span()

	s := &Summary{
		Transactions:      t.Len(),
		TotalSales:        total,
		AverageSale:       total.Div(decimal.NewFromInt(int64(t.Len()))).Round(2),
		Start:             start,
		End:               end,
		DistinctCustomers: len(customers),
		TopProducts:       TopN(GroupBy(t, ByProduct, FieldTotalSales, MetricSum), topN),
		TopRegions:        TopN(GroupBy(t, ByRegion, FieldTotalSales, MetricSum), topN),
	}
	if t.Has(dataset.ColSalesRep) {
		s.TopReps = TopN(GroupBy(t, ByRep, FieldTotalSales, MetricSum), topN)
	}
	return s, nil
}
