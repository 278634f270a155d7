package dataset

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KaramelBytes/saleslens-cli/internal/utils"
)

// productPrice pairs a product with its plausible unit price band.
type productPrice struct {
	name     string
	min, max float64
}

var products = []productPrice{
	{"Laptop", 800, 3000},
	{"Desktop", 500, 2500},
	{"Phone", 200, 1500},
	{"Tablet", 150, 1200},
	{"Monitor", 150, 800},
	{"Keyboard", 20, 200},
	{"Mouse", 10, 150},
	{"Headphones", 30, 500},
	{"Speaker", 50, 1000},
	{"Camera", 200, 2000},
}

var regions = []string{
	"North America", "South America", "Europe", "Asia", "Africa", "Oceania",
}

const (
	repCount     = 50
	customerLow  = 1000
	customerHigh = 9999
	maxQuantity  = 19
	maxDiscount  = 20 // percent
)

// GenerateOptions controls synthetic data generation.
type GenerateOptions struct {
	Records int
	Seed    int64
	Start   time.Time
	End     time.Time
}

// DefaultGenerateOptions returns the generator defaults.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Records: 1000,
		Seed:    42,
		Start:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

var one = decimal.NewFromInt(1)

// Generate produces a synthetic sales table. Output is deterministic for a
// given seed. Every record satisfies
// total_sales == quantity × unit_price × (1 − discount) at cent precision:
// unit prices are cent amounts and discounts are whole percents, so the
// product is exact without further rounding.
func Generate(opt GenerateOptions) *Table {
	if opt.Records <= 0 {
		opt.Records = 1000
	}
	if opt.End.Before(opt.Start) {
		opt.Start, opt.End = opt.End, opt.Start
	}
	rng := rand.New(rand.NewSource(opt.Seed))
	days := int(opt.End.Sub(opt.Start).Hours()/24) + 1

	allCols := append(append([]string(nil), RequiredColumns...), OptionalColumns...)
	t := NewTable("generated", allCols)
	t.Records = make([]Record, 0, opt.Records)

	for i := 0; i < opt.Records; i++ {
		p := products[rng.Intn(len(products))]
		price := decimal.NewFromFloat(p.min + rng.Float64()*(p.max-p.min)).Round(2)
		qty := 1 + rng.Intn(maxQuantity)
		disc := decimal.New(int64(rng.Intn(maxDiscount+1)), -2)
		total := price.Mul(decimal.NewFromInt(int64(qty))).Mul(one.Sub(disc))

		t.Records = append(t.Records, Record{
			Date:       opt.Start.AddDate(0, 0, rng.Intn(days)),
			Product:    p.name,
			Region:     regions[rng.Intn(len(regions))],
			SalesRep:   fmt.Sprintf("Rep_%03d", 1+rng.Intn(repCount)),
			CustomerID: fmt.Sprintf("CUST_%04d", customerLow+rng.Intn(customerHigh-customerLow)),
			Quantity:   qty,
			UnitPrice:  price.InexactFloat64(),
			Discount:   disc.InexactFloat64(),
			TotalSales: total.InexactFloat64(),
		})
	}
	return t
}

// WriteCSV saves a table in the canonical column layout, creating the
// directory if needed.
func WriteCSV(t *Table, path string) error {
	if t == nil || t.Len() == 0 {
		return ErrNoData
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("ensure data dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		ColDate, ColProduct, ColRegion, ColSalesRep, ColCustomerID,
		ColQuantity, ColUnitPrice, ColDiscount, ColTotalSales,
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range t.Records {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.Product,
			r.Region,
			r.SalesRep,
			r.CustomerID,
			strconv.Itoa(r.Quantity),
			decimal.NewFromFloat(r.UnitPrice).StringFixed(2),
			decimal.NewFromFloat(r.Discount).StringFixed(2),
			decimal.NewFromFloat(r.TotalSales).StringFixed(4),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
