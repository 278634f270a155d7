package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var sampleRows = []string{
	"Date,Product,Region,Sales Rep,Customer ID,Quantity,Unit Price,Discount,Total Sales",
	"2023-01-05,Laptop,Europe,Rep_001,CUST_1001,2,1200.00,0.10,2160.0000",
	"2023-01-06,Mouse,Asia,Rep_002,CUST_1002,3,25.50,0.00,76.5000",
	"2023-01-06,Laptop,Europe,Rep_001,CUST_1003,1,1500.00,0.00,1500.0000",
	"2023-02-10,Monitor,North America,Rep_003,CUST_1004,2,300.00,0.05,570.0000",
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "sales.csv", strings.Join(sampleRows, "\n"))

	tab, err := LoadCSV(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tab.Len() != 4 {
		t.Fatalf("records = %d, want 4", tab.Len())
	}
	if tab.Skipped != 0 {
		t.Fatalf("skipped = %d, want 0", tab.Skipped)
	}
	if tab.Source != "sales.csv" {
		t.Fatalf("source = %q", tab.Source)
	}
	if tab.ID == "" {
		t.Fatal("table has no id")
	}

	r := tab.Records[0]
	if r.Product != "Laptop" || r.Region != "Europe" || r.SalesRep != "Rep_001" {
		t.Fatalf("first record = %#v", r)
	}
	if r.Quantity != 2 || r.UnitPrice != 1200 || r.Discount != 0.1 {
		t.Fatalf("first record numerics = %#v", r)
	}
	if math.Abs(r.TotalSales-2160) > 1e-9 {
		t.Fatalf("total = %v, want 2160", r.TotalSales)
	}
	if got := r.Date.Format("2006-01-02"); got != "2023-01-05" {
		t.Fatalf("date = %s", got)
	}

	for _, col := range append(RequiredColumns, OptionalColumns...) {
		if !tab.Has(col) {
			t.Fatalf("column %s not detected", col)
		}
	}
	start, end := tab.Span()
	if start.Format("2006-01-02") != "2023-01-05" || end.Format("2006-01-02") != "2023-02-10" {
		t.Fatalf("span = %s..%s", start, end)
	}
}

func TestLoadCSVHeaderAliases(t *testing.T) {
	rows := []string{
		"Order Date;Item;Territory;Revenue;Salesperson;Qty",
		"2023-03-01;Tablet;Europe;450,00;Rep_004;3",
	}
	path := writeFile(t, "aliased.csv", strings.Join(rows, "\n"))

	tab, err := LoadCSV(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tab.Len() != 1 {
		t.Fatalf("records = %d, want 1", tab.Len())
	}
	r := tab.Records[0]
	if r.Product != "Tablet" || r.Region != "Europe" || r.SalesRep != "Rep_004" || r.Quantity != 3 {
		t.Fatalf("record = %#v", r)
	}
	// European decimal comma.
	if math.Abs(r.TotalSales-450) > 1e-9 {
		t.Fatalf("total = %v, want 450", r.TotalSales)
	}
}

func TestLoadCSVMissingColumns(t *testing.T) {
	rows := []string{
		"Product,Quantity",
		"Laptop,2",
	}
	path := writeFile(t, "partial.csv", strings.Join(rows, "\n"))

	_, err := LoadCSV(path, DefaultLoadOptions())
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingColumnsError", err)
	}
	want := "missing required columns: date, region, total_sales"
	if missing.Error() != want {
		t.Fatalf("error = %q, want %q", missing.Error(), want)
	}
}

func TestLoadCSVSkipsBadRows(t *testing.T) {
	rows := []string{
		"date,product,region,total_sales",
		"2023-01-01,Laptop,Europe,100.00",
		"2023-01-02,Mouse,Asia,not-a-number",
		"not-a-date,Phone,Europe,50.00",
		"2023-01-03,Tablet,Asia,75.00",
	}
	path := writeFile(t, "dirty.csv", strings.Join(rows, "\n"))

	tab, err := LoadCSV(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tab.Len() != 2 {
		t.Fatalf("records = %d, want 2", tab.Len())
	}
	if tab.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2", tab.Skipped)
	}
	if len(tab.Warnings) != 2 {
		t.Fatalf("warnings = %#v", tab.Warnings)
	}

	// Keeping bad dates retains the row with a zero date.
	opt := DefaultLoadOptions()
	opt.DropBadDates = false
	tab, err = LoadCSV(path, opt)
	if err != nil {
		t.Fatalf("LoadCSV keep: %v", err)
	}
	if tab.Len() != 3 {
		t.Fatalf("records = %d, want 3", tab.Len())
	}
	if tab.Skipped != 1 {
		t.Fatalf("skipped = %d, want 1", tab.Skipped)
	}
	var zeroDates int
	for _, r := range tab.Records {
		if r.Date.IsZero() {
			zeroDates++
		}
	}
	if zeroDates != 1 {
		t.Fatalf("zero dates = %d, want 1", zeroDates)
	}
}

func TestLoadTSV(t *testing.T) {
	rows := []string{
		"date\tproduct\tregion\ttotal_sales",
		"2023-04-01\tCamera\tAfrica\t399.99",
	}
	path := writeFile(t, "sales.tsv", strings.Join(rows, "\n"))

	tab, err := LoadFile(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if tab.Len() != 1 || tab.Records[0].Product != "Camera" {
		t.Fatalf("table = %#v", tab.Records)
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "sales.json", "{}")
	if _, err := LoadFile(path, DefaultLoadOptions()); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestSniffDelimiter(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   rune
	}{
		{"comma.csv", "date,product,region,total_sales", ','},
		{"semicolon.csv", "date;product;region;total_sales", ';'},
		{"pipe.csv", "date|product|region|total_sales", '|'},
	}
	for _, tc := range cases {
		path := writeFile(t, tc.name, tc.header+"\n")
		if got := sniffDelimiter(path); got != tc.want {
			t.Fatalf("%s: delimiter = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1234.5", 1234.5, true},
		{"$1,234.50", 1234.5, true},
		{"1.234,50", 1234.5, true},
		{"€99,95", 99.95, true},
		{"15%", 15, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumeric(tc.in)
		if ok != tc.ok || math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("parseNumeric(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseDateLayouts(t *testing.T) {
	for _, in := range []string{"2023-06-15", "2023/06/15", "15/06/2023", "2023-06-15 10:30:00"} {
		d, ok := parseDate(in)
		if !ok {
			t.Fatalf("parseDate(%q) failed", in)
		}
		if d.Year() != 2023 || d.Month() != 6 || d.Day() != 15 {
			t.Fatalf("parseDate(%q) = %v", in, d)
		}
	}
	if _, ok := parseDate("junk"); ok {
		t.Fatal("parseDate accepted junk")
	}
}
