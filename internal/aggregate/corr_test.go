package aggregate

import (
	"errors"
	"math"
	"testing"

	"github.com/KaramelBytes/saleslens-cli/internal/dataset"
)

func TestCorrelations(t *testing.T) {
	tab := dataset.NewTable("test", append(dataset.RequiredColumns, dataset.ColQuantity, dataset.ColUnitPrice))
	// total_sales is exactly 10 × quantity, so r(quantity, total_sales) = 1.
	// unit_price moves opposite quantity, so its correlations are -1.
	for i := 1; i <= 5; i++ {
		tab.Records = append(tab.Records, dataset.Record{
			Quantity:   i,
			UnitPrice:  float64(60 - 10*i),
			TotalSales: float64(10 * i),
		})
	}

	m, err := Correlations(tab)
	if err != nil {
		t.Fatalf("Correlations: %v", err)
	}
	wantCols := []string{dataset.ColQuantity, dataset.ColUnitPrice, dataset.ColTotalSales}
	if len(m.Columns) != 3 {
		t.Fatalf("columns = %#v", m.Columns)
	}
	for i, c := range m.Columns {
		if c != wantCols[i] {
			t.Fatalf("column %d = %q, want %q", i, c, wantCols[i])
		}
	}

	idx := func(col string) int {
		for i, c := range m.Columns {
			if c == col {
				return i
			}
		}
		t.Fatalf("column %s missing", col)
		return -1
	}
	qi, pi, ti := idx(dataset.ColQuantity), idx(dataset.ColUnitPrice), idx(dataset.ColTotalSales)

	for i := range m.Columns {
		if m.Values[i][i] != 1 {
			t.Fatalf("diagonal[%d] = %v", i, m.Values[i][i])
		}
	}
	if math.Abs(m.Values[qi][ti]-1) > 1e-9 {
		t.Fatalf("r(quantity, total) = %v, want 1", m.Values[qi][ti])
	}
	if math.Abs(m.Values[qi][pi]+1) > 1e-9 {
		t.Fatalf("r(quantity, price) = %v, want -1", m.Values[qi][pi])
	}
	if m.Values[qi][ti] != m.Values[ti][qi] {
		t.Fatal("matrix not symmetric")
	}
}

func TestCorrelationsConstantColumn(t *testing.T) {
	tab := dataset.NewTable("test", append(dataset.RequiredColumns, dataset.ColQuantity))
	for i := 1; i <= 4; i++ {
		tab.Records = append(tab.Records, dataset.Record{Quantity: 3, TotalSales: float64(i)})
	}

	m, err := Correlations(tab)
	if err != nil {
		t.Fatalf("Correlations: %v", err)
	}
	// Zero variance yields r = 0, not NaN.
	qi, ti := 0, 1
	if m.Values[qi][ti] != 0 {
		t.Fatalf("r = %v, want 0", m.Values[qi][ti])
	}
}

func TestCorrelationsNeedsTwoColumns(t *testing.T) {
	tab := dataset.NewTable("test", dataset.RequiredColumns)
	tab.Records = append(tab.Records, dataset.Record{TotalSales: 10})
	if _, err := Correlations(tab); err == nil {
		t.Fatal("expected error with a single numeric column")
	}
}

func TestCorrelationsEmpty(t *testing.T) {
	if _, err := Correlations(nil); !errors.Is(err, dataset.ErrNoData) {
		t.Fatalf("err = %v", err)
	}
}
