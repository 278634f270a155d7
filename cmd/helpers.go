package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KaramelBytes/saleslens-cli/internal/aggregate"
	"github.com/KaramelBytes/saleslens-cli/internal/chart"
	"github.com/KaramelBytes/saleslens-cli/internal/config"
	"github.com/KaramelBytes/saleslens-cli/internal/dataset"
	"github.com/KaramelBytes/saleslens-cli/internal/report"
)

// ensureConfig guarantees cfg is populated even when a command is invoked
// outside Execute (tests call RunE functions directly).
func ensureConfig() *config.Global {
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg
}

// resolveInput falls back to the configured sample file when no input flag
// was given.
func resolveInput(path string) string {
	if path != "" {
		return path
	}
	return ensureConfig().SampleFile
}

// loadTable loads a sales table from path, printing the load result.
func loadTable(w io.Writer, path string) (*dataset.Table, error) {
	c := ensureConfig()
	path = resolveInput(path)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file %s: %w", path, err)
	}
	opt := dataset.DefaultLoadOptions()
	opt.DropBadDates = c.DropBadDates
	t, err := dataset.LoadFile(path, opt)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "✓ Loaded %d records from %s\n", t.Len(), path)
	if t.Skipped > 0 {
		fmt.Fprintf(w, "⚠ Skipped %d rows\n", t.Skipped)
	}
	for _, warn := range t.Warnings {
		fmt.Fprintf(w, "⚠ %s\n", warn)
	}
	return t, nil
}

func newRenderer() *chart.Renderer {
	return chart.NewRenderer(ensureConfig())
}

// printSummary writes the data summary in the classic terminal layout.
func printSummary(w io.Writer, t *dataset.Table) error {
	s, err := aggregate.Summarize(t, 5)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "=== DATA SUMMARY ===")
	fmt.Fprintf(w, "Records: %d (skipped %d)\n", t.Len(), t.Skipped)
	fmt.Fprintf(w, "Date Range: %s to %s\n", s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"))
	fmt.Fprintf(w, "Total Sales: %s\n", report.FormatUSD(s.TotalSales))
	fmt.Fprintf(w, "Average Sale: %s\n", report.FormatUSD(s.AverageSale))
	if s.DistinctCustomers > 0 {
		fmt.Fprintf(w, "Customers: %d\n", s.DistinctCustomers)
	}
	present, missing := t.Presence()
	fmt.Fprintf(w, "Columns: %s\n", strings.Join(present, ", "))
	if len(missing) > 0 {
		fmt.Fprintf(w, "⚠ Missing required columns: %s\n", strings.Join(missing, ", "))
	}
	printRanking(w, "TOP PRODUCTS", s.TopProducts)
	printRanking(w, "SALES BY REGION", s.TopRegions)
	if len(s.TopReps) > 0 {
		printRanking(w, "TOP SALES REPS", s.TopReps)
	}
	return nil
}

func printRanking(w io.Writer, title string, groups []aggregate.Group) {
	fmt.Fprintf(w, "\n=== %s ===\n", title)
	for _, g := range groups {
		fmt.Fprintf(w, "%-24s %s\n", g.Key, report.FormatUSD(decimal.NewFromFloat(g.Value)))
	}
}

// demoCharts renders the full chart set plus dashboard for a table,
// printing each saved path. Used by generate --demo and the menu.
func demoCharts(w io.Writer, t *dataset.Table) error {
	steps := []struct {
		name string
		run  func(*dataset.Table) (string, error)
	}{
		{"time series plot", renderTimeSeries},
		{"product analysis", renderProducts},
		{"regional analysis", renderRegions},
		{"sales rep performance", renderReps},
		{"monthly trends", renderMonthly},
		{"product treemap", renderTreemap},
		{"correlation heatmap", renderHeatmap},
		{"dashboard", renderDashboard},
	}
	for _, step := range steps {
		path, err := step.run(t)
		if err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
		fmt.Fprintf(w, "✓ Chart saved: %s\n", path)
	}
	return nil
}

func parseConfigDate(s string, fallback time.Time) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return fallback
}
