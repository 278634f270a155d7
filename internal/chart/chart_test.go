package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/saleslens-cli/internal/aggregate"
	"github.com/KaramelBytes/saleslens-cli/internal/config"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	return NewRenderer(cfg)
}

func readChart(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	return string(b)
}

var chartGroups = []aggregate.Group{
	{Key: "2023-01-01", Value: 1200.5, Count: 3},
	{Key: "2023-01-02", Value: 860, Count: 2},
	{Key: "2023-01-03", Value: 1430.25, Count: 4},
}

func TestRenderTimeSeries(t *testing.T) {
	r := testRenderer(t)
	path, err := r.RenderTimeSeries(chartGroups)
	if err != nil {
		t.Fatalf("RenderTimeSeries: %v", err)
	}
	if filepath.Base(path) != "time_series_plot.html" {
		t.Fatalf("path = %s", path)
	}
	html := readChart(t, path)
	for _, want := range []string{"Daily Sales Trend", "echarts", "2023-01-02", "1200.5"} {
		if !strings.Contains(html, want) {
			t.Fatalf("chart html missing %q", want)
		}
	}
}

func TestRenderProductAnalysis(t *testing.T) {
	r := testRenderer(t)
	groups := []aggregate.Group{{Key: "Laptop", Value: 3500}, {Key: "Mouse", Value: 160}}
	path, err := r.RenderProductAnalysis(groups, groups, groups, groups)
	if err != nil {
		t.Fatalf("RenderProductAnalysis: %v", err)
	}
	html := readChart(t, path)
	for _, want := range []string{"Sales by Product", "Quantity Sold by Product", "Unique Customers per Product", "Average Sale per Product"} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestRenderRegionPie(t *testing.T) {
	r := testRenderer(t)
	path, err := r.RenderRegionPie([]aggregate.Group{{Key: "Europe", Value: 2660}, {Key: "Asia", Value: 1600}})
	if err != nil {
		t.Fatalf("RenderRegionPie: %v", err)
	}
	html := readChart(t, path)
	if !strings.Contains(html, "Sales Distribution by Region") || !strings.Contains(html, "Europe") {
		t.Fatalf("pie html missing content")
	}
}

func TestRenderMonthlyTrends(t *testing.T) {
	r := testRenderer(t)
	labels := []string{"2023-01", "2023-02"}
	series := []aggregate.Series{
		{Name: "Laptop", Values: []float64{2000, 1500}},
		{Name: "Mouse", Values: []float64{100, 60}},
	}
	path, err := r.RenderMonthlyTrends(labels, series)
	if err != nil {
		t.Fatalf("RenderMonthlyTrends: %v", err)
	}
	html := readChart(t, path)
	for _, want := range []string{"Monthly Sales Trends by Product", "Laptop", "Mouse"} {
		if !strings.Contains(html, want) {
			t.Fatalf("trends html missing %q", want)
		}
	}
}

func TestRenderHeatmap(t *testing.T) {
	r := testRenderer(t)
	m := &aggregate.Matrix{
		Columns: []string{"quantity", "unit_price", "total_sales"},
		Values: [][]float64{
			{1, -0.2, 0.9},
			{-0.2, 1, 0.1},
			{0.9, 0.1, 1},
		},
	}
	path, err := r.RenderHeatmap(m)
	if err != nil {
		t.Fatalf("RenderHeatmap: %v", err)
	}
	html := readChart(t, path)
	for _, want := range []string{"Correlation of Sales Metrics", "quantity", "visualMap"} {
		if !strings.Contains(html, want) {
			t.Fatalf("heatmap html missing %q", want)
		}
	}
}

func TestRenderDashboard(t *testing.T) {
	r := testRenderer(t)
	in := DashboardInput{
		Daily:       chartGroups,
		Monthly:     []aggregate.Group{{Key: "2023-01", Value: 3490.75}},
		Regions:     []aggregate.Group{{Key: "Europe", Value: 2660}},
		TopProducts: []aggregate.Group{{Key: "Laptop", Value: 3500}},
		Products:    []aggregate.Group{{Key: "Laptop", Value: 3500}},
	}
	path, err := r.RenderDashboard(in)
	if err != nil {
		t.Fatalf("RenderDashboard: %v", err)
	}
	if filepath.Base(path) != "dashboard.html" {
		t.Fatalf("path = %s", path)
	}
	html := readChart(t, path)
	for _, want := range []string{"Sales Analytics Dashboard", "Daily Sales Trend", "Monthly Sales", "Top Products"} {
		if !strings.Contains(html, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
}

func TestRendererPaletteWraps(t *testing.T) {
	r := &Renderer{Palette: []string{"#111", "#222"}}
	if r.color(0) != "#111" || r.color(3) != "#222" {
		t.Fatalf("palette = %s %s", r.color(0), r.color(3))
	}
	empty := &Renderer{}
	if empty.color(5) != "" {
		t.Fatal("empty palette should yield empty color")
	}
}
