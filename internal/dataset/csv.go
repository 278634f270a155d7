package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LoadOptions controls loader behavior.
type LoadOptions struct {
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t', '|'.
	Delimiter rune
	// DropBadDates drops rows whose date cannot be parsed; when false the
	// row is kept with a zero date. Either way the count is reported.
	DropBadDates bool
	// Sheet selects an XLSX worksheet by name; SheetIndex is the 1-based
	// fallback when Sheet is empty.
	Sheet      string
	SheetIndex int
}

// DefaultLoadOptions returns the loader defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{DropBadDates: true, SheetIndex: 1}
}

// LoadFile loads a sales table from a CSV, TSV, or XLSX file based on the
// file extension.
func LoadFile(path string, opt LoadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return LoadCSV(path, opt)
	case ".xlsx":
		return LoadXLSX(path, opt)
	default:
		return nil, fmt.Errorf("unsupported file format %q (want .csv, .tsv, or .xlsx)", filepath.Ext(path))
	}
}

// LoadCSV reads a delimited file into a Table, validating the required
// column contract and skipping unparseable rows.
func LoadCSV(path string, opt LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MissingColumnsError{Columns: RequiredColumns}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	t := NewTable(filepath.Base(path), colNames(cols))
	builder := newRecordBuilder(cols, opt)
	malformed := 0
	for {
		row, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// Malformed row: count and continue, per the skip-and-report
			// contract.
			malformed++
			continue
		}
		if rec, ok := builder.build(row); ok {
			t.Records = append(t.Records, rec)
		}
	}
	builder.finish(t)
	if malformed > 0 {
		t.Skipped += malformed
		t.Warnings = append(t.Warnings, fmt.Sprintf("skipped %d malformed rows", malformed))
	}
	return t, nil
}

// sniffDelimiter picks a CSV delimiter: .tsv extension wins, otherwise the
// candidate occurring most often in the first line.
func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	f, err := os.Open(path)
	if err != nil {
		return ','
	}
	defer f.Close()
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return ','
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, cand := range []rune{';', '\t', '|'} {
		if c := strings.Count(line, string(cand)); c > bestCount {
			best, bestCount = cand, c
		}
	}
	return best
}

// mapColumns resolves raw headers to canonical column indices and enforces
// the required column contract. On a duplicate alias the first column wins.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int)
	for i, h := range header {
		c := canonicalColumn(h)
		if c == "" {
			continue
		}
		if _, dup := cols[c]; dup {
			continue
		}
		cols[c] = i
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return cols, nil
}

func colNames(cols map[string]int) []string {
	names := make([]string, 0, len(cols))
	for c := range cols {
		names = append(names, c)
	}
	return names
}

// recordBuilder converts raw string rows into Records, tracking date and
// numeric parse failures across the pass.
type recordBuilder struct {
	cols     map[string]int
	opt      LoadOptions
	badDates int
	badRows  int
}

func newRecordBuilder(cols map[string]int, opt LoadOptions) *recordBuilder {
	return &recordBuilder{cols: cols, opt: opt}
}

func (b *recordBuilder) field(row []string, col string) (string, bool) {
	idx, ok := b.cols[col]
	if !ok || idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

// build returns the parsed record and whether it should be kept.
func (b *recordBuilder) build(row []string) (Record, bool) {
	var rec Record

	total, _ := b.field(row, ColTotalSales)
	v, ok := parseNumeric(total)
	if !ok {
		// Rows without a usable amount carry no signal for any aggregate.
		b.badRows++
		return rec, false
	}
	rec.TotalSales = v

	rawDate, _ := b.field(row, ColDate)
	if d, ok := parseDate(rawDate); ok {
		rec.Date = d
	} else {
		b.badDates++
		if b.opt.DropBadDates {
			return rec, false
		}
	}

	rec.Product, _ = b.field(row, ColProduct)
	rec.Region, _ = b.field(row, ColRegion)
	rec.SalesRep, _ = b.field(row, ColSalesRep)
	rec.CustomerID, _ = b.field(row, ColCustomerID)
	if s, ok := b.field(row, ColQuantity); ok {
		if q, err := strconv.Atoi(s); err == nil {
			rec.Quantity = q
		}
	}
	if s, ok := b.field(row, ColUnitPrice); ok {
		if p, ok := parseNumeric(s); ok {
			rec.UnitPrice = p
		}
	}
	if s, ok := b.field(row, ColDiscount); ok {
		if d, ok := parseNumeric(s); ok {
			rec.Discount = d
		}
	}
	return rec, true
}

// finish folds parse counters into the table's skip count and warnings.
func (b *recordBuilder) finish(t *Table) {
	t.Skipped += b.badRows
	if b.badRows > 0 {
		t.Warnings = append(t.Warnings, fmt.Sprintf("skipped %d rows with unparseable %s", b.badRows, ColTotalSales))
	}
	if b.badDates > 0 {
		if b.opt.DropBadDates {
			t.Skipped += b.badDates
			t.Warnings = append(t.Warnings, fmt.Sprintf("dropped %d rows with unparseable dates", b.badDates))
		} else {
			t.Warnings = append(t.Warnings, fmt.Sprintf("kept %d rows with unparseable dates", b.badDates))
		}
	}
}

var dateLayouts = []string{
	"2006-01-02", time.RFC3339, "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04:05", "2006-01-02 15:04", "1/2/2006",
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNumeric parses a numeric cell, tolerating currency symbols, percent
// signs, thousands separators, and ',' decimal separators.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	for _, junk := range []string{"$", "€", "£", "%", " "} {
		raw = strings.ReplaceAll(raw, junk, "")
	}
	raw = strings.TrimSpace(raw)

	// Decide the decimal separator from the rightmost of ',' and '.'.
	dec := '.'
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	if cpos > dpos {
		dec = ','
	}
	// Strip thousands separators, then normalize the decimal point.
	for _, sep := range []rune{',', '.', ' '} {
		if sep != dec {
			raw = strings.ReplaceAll(raw, string(sep), "")
		}
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
