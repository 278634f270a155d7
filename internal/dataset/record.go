package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Canonical column names after header normalization.
const (
	ColDate       = "date"
	ColProduct    = "product"
	ColRegion     = "region"
	ColSalesRep   = "sales_rep"
	ColCustomerID = "customer_id"
	ColQuantity   = "quantity"
	ColUnitPrice  = "unit_price"
	ColDiscount   = "discount"
	ColTotalSales = "total_sales"
)

// RequiredColumns must be present for a file to load.
var RequiredColumns = []string{ColDate, ColProduct, ColRegion, ColTotalSales}

// OptionalColumns enrich analyses when present.
var OptionalColumns = []string{ColSalesRep, ColCustomerID, ColQuantity, ColUnitPrice, ColDiscount}

// Record is a single sales transaction.
type Record struct {
	Date       time.Time
	Product    string
	Region     string
	SalesRep   string
	CustomerID string
	Quantity   int
	UnitPrice  float64
	Discount   float64
	TotalSales float64
}

// Month returns the record's month bucket, e.g. "2023-04".
func (r Record) Month() string { return r.Date.Format("2006-01") }

// Quarter returns the record's quarter bucket, e.g. "2023-Q2".
func (r Record) Quarter() string {
	q := (int(r.Date.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", r.Date.Year(), q)
}

// Day returns the record's day bucket, e.g. "2023-04-17".
func (r Record) Day() string { return r.Date.Format("2006-01-02") }

// Table is an immutable in-memory set of sales records. Tables are rebuilt
// wholesale on every load or generate; they are never mutated incrementally.
type Table struct {
	ID       string
	Source   string
	Records  []Record
	Columns  map[string]bool
	Skipped  int
	Warnings []string
	LoadedAt time.Time
}

// NewTable constructs an empty table for the given source and column set.
func NewTable(source string, columns []string) *Table {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return &Table{
		ID:       uuid.NewString(),
		Source:   source,
		Columns:  set,
		LoadedAt: time.Now(),
	}
}

// Len returns the number of loaded records.
func (t *Table) Len() int { return len(t.Records) }

// Has reports whether a canonical column was present in the source.
func (t *Table) Has(col string) bool { return t.Columns[col] }

// Span returns the earliest and latest record dates.
func (t *Table) Span() (start, end time.Time) {
	for _, r := range t.Records {
		if r.Date.IsZero() {
			continue
		}
		if start.IsZero() || r.Date.Before(start) {
			start = r.Date
		}
		if end.IsZero() || r.Date.After(end) {
			end = r.Date
		}
	}
	return start, end
}

// Presence reports which required and optional columns the source provided
// and which required ones it lacked.
func (t *Table) Presence() (present, missing []string) {
	for _, c := range RequiredColumns {
		if t.Has(c) {
			present = append(present, c)
		} else {
			missing = append(missing, c)
		}
	}
	for _, c := range OptionalColumns {
		if t.Has(c) {
			present = append(present, c)
		}
	}
	return present, missing
}

// ErrNoData indicates an operation was attempted before any data was loaded.
var ErrNoData = errors.New("no data loaded")

// MissingColumnsError reports exactly which required columns a source lacked.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	cols := append([]string(nil), e.Columns...)
	sort.Strings(cols)
	return fmt.Sprintf("missing required columns: %s", strings.Join(cols, ", "))
}

// normalizeHeader lowercases a raw header and collapses separators to
// underscores, e.g. "Unit Price " -> "unit_price".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

// canonicalColumn maps a raw header to its canonical column name, applying
// the alias rules the loader tolerates (amount/revenue -> total_sales, etc).
// Returns "" for columns the loader ignores.
func canonicalColumn(h string) string {
	n := normalizeHeader(h)
	switch n {
	case ColDate, ColProduct, ColRegion, ColSalesRep, ColCustomerID,
		ColQuantity, ColUnitPrice, ColDiscount, ColTotalSales:
		return n
	}
	switch {
	case strings.Contains(n, "date") || strings.Contains(n, "time"):
		return ColDate
	case strings.Contains(n, "sales_rep") || strings.Contains(n, "salesperson") || n == "rep":
		return ColSalesRep
	case strings.Contains(n, "customer"):
		return ColCustomerID
	case strings.Contains(n, "price"):
		return ColUnitPrice
	case strings.Contains(n, "discount"):
		return ColDiscount
	case n == "qty" || strings.Contains(n, "quantity") || n == "units":
		return ColQuantity
	case strings.Contains(n, "sales") || strings.Contains(n, "revenue") ||
		strings.Contains(n, "amount") || strings.Contains(n, "total") || n == "value":
		return ColTotalSales
	case strings.Contains(n, "product") || n == "item" || n == "sku":
		return ColProduct
	case strings.Contains(n, "region") || n == "territory" || n == "area":
		return ColRegion
	}
	return ""
}
