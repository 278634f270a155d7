package aggregate

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/saleslens-cli/internal/dataset"
)

// Matrix is a symmetric Pearson correlation matrix.
type Matrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// pairAcc accumulates the sums needed for an exact Pearson r.
type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (p *pairAcc) add(x, y float64) {
	p.n++
	p.sumX += x
	p.sumY += y
	p.sumXX += x * x
	p.sumYY += y * y
	p.sumXY += x * y
}

func (p *pairAcc) r() float64 {
	if p.n < 2 {
		return 0
	}
	denom := math.Sqrt((p.n*p.sumXX - p.sumX*p.sumX) * (p.n*p.sumYY - p.sumY*p.sumY))
	if denom == 0 {
		return 0
	}
	r := (p.n*p.sumXY - p.sumX*p.sumY) / denom
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

// Correlations computes the Pearson correlation matrix over the table's
// numeric fields (quantity, unit_price, total_sales). It requires at least
// two of them to be present in the source.
func Correlations(t *dataset.Table) (*Matrix, error) {
	if t == nil || t.Len() == 0 {
		return nil, dataset.ErrNoData
	}

	type numField struct {
		name  string
		value func(dataset.Record) float64
	}
	var fields []numField
	if t.Has(dataset.ColQuantity) {
		fields = append(fields, numField{dataset.ColQuantity, func(r dataset.Record) float64 { return float64(r.Quantity) }})
	}
	if t.Has(dataset.ColUnitPrice) {
		fields = append(fields, numField{dataset.ColUnitPrice, func(r dataset.Record) float64 { return r.UnitPrice }})
	}
	fields = append(fields, numField{dataset.ColTotalSales, func(r dataset.Record) float64 { return r.TotalSales }})

	if len(fields) < 2 {
		return nil, fmt.Errorf("correlation needs at least two numeric columns, have %d", len(fields))
	}

	n := len(fields)
	accs := make([][]*pairAcc, n)
	for i := range accs {
		accs[i] = make([]*pairAcc, n)
		for j := 0; j < i; j++ {
			accs[i][j] = &pairAcc{}
		}
	}
	for _, rec := range t.Records {
		for i := 1; i < n; i++ {
			for j := 0; j < i; j++ {
				accs[i][j].add(fields[i].value(rec), fields[j].value(rec))
			}
		}
	}

	m := &Matrix{Columns: make([]string, n), Values: make([][]float64, n)}
	for i := range fields {
		m.Columns[i] = fields[i].name
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			r := accs[i][j].r()
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}
