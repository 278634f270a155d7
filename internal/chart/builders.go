package chart

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/KaramelBytes/saleslens-cli/internal/aggregate"
)

func labelsAndValues(groups []aggregate.Group) ([]string, []float64) {
	labels := make([]string, len(groups))
	values := make([]float64, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
		values[i] = math.Round(g.Value*100) / 100
	}
	return labels, values
}

func lineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		out[i] = opts.LineData{Value: v}
	}
	return out
}

func barData(values []float64) []opts.BarData {
	out := make([]opts.BarData, len(values))
	for i, v := range values {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

// timeSeriesLine builds the daily sales trend line with a zoom slider.
func (r *Renderer) timeSeriesLine(daily []aggregate.Group) *charts.Line {
	labels, values := labelsAndValues(daily)
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(r.init("Daily Sales Trend")),
		charts.WithTitleOpts(opts.Title{Title: "Daily Sales Trend"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Sales ($)"}),
		charts.WithColorsOpts(opts.Colors{r.color(0)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	line.SetXAxis(labels).
		AddSeries("Total Sales", lineData(values),
			charts.WithLineChartOpts(opts.LineChart{Smooth: true}))
	return line
}

// RenderTimeSeries writes the daily trend chart and returns its path.
func (r *Renderer) RenderTimeSeries(daily []aggregate.Group) (string, error) {
	return r.write("time_series_plot", r.timeSeriesLine(daily))
}

func (r *Renderer) bar(title, xName, yName, series string, groups []aggregate.Group, colorIdx int) *charts.Bar {
	labels, values := labelsAndValues(groups)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(r.init(title)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, AxisLabel: &opts.AxisLabel{Show: true, Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithColorsOpts(opts.Colors{r.color(colorIdx)}),
	)
	bar.SetXAxis(labels).AddSeries(series, barData(values))
	return bar
}

// RenderProductAnalysis writes the four-panel product page: sales, quantity,
// distinct customers, and average sale per product.
func (r *Renderer) RenderProductAnalysis(sales, qty, customers, avg []aggregate.Group) (string, error) {
	page := newPage("Product Analysis")
	page.AddCharts(
		r.bar("Sales by Product", "Product", "Total Sales ($)", "Total Sales", sales, 0),
		r.bar("Quantity Sold by Product", "Product", "Quantity", "Quantity", qty, 1),
		r.bar("Unique Customers per Product", "Product", "Customers", "Customers", customers, 2),
		r.bar("Average Sale per Product", "Product", "Average Sale ($)", "Avg Sale", avg, 3),
	)
	return r.write("product_analysis", page)
}

func (r *Renderer) regionPie(groups []aggregate.Group) *charts.Pie {
	items := make([]opts.PieData, len(groups))
	for i, g := range groups {
		items[i] = opts.PieData{Name: g.Key, Value: math.Round(g.Value*100) / 100}
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(r.init("Sales Distribution by Region")),
		charts.WithTitleOpts(opts.Title{Title: "Sales Distribution by Region"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithColorsOpts(opts.Colors(r.Palette)),
	)
	pie.AddSeries("Region", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}: {d}%"}))
	return pie
}

// RenderRegionPie writes the regional share pie chart.
func (r *Renderer) RenderRegionPie(groups []aggregate.Group) (string, error) {
	return r.write("regional_analysis", r.regionPie(groups))
}

// RenderTopReps writes the top-N sales representative bar chart.
func (r *Renderer) RenderTopReps(top []aggregate.Group) (string, error) {
	return r.write("sales_rep_performance",
		r.bar("Top Sales Representatives", "Sales Rep", "Total Sales ($)", "Total Sales", top, 0))
}

// RenderMonthlyTrends writes the per-product monthly trend lines.
func (r *Renderer) RenderMonthlyTrends(labels []string, series []aggregate.Series) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(r.init("Monthly Sales Trends by Product")),
		charts.WithTitleOpts(opts.Title{Title: "Monthly Sales Trends by Product"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "30px"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month", AxisLabel: &opts.AxisLabel{Show: true, Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Sales ($)"}),
		charts.WithColorsOpts(opts.Colors(r.Palette)),
	)
	line.SetXAxis(labels)
	for _, s := range series {
		line.AddSeries(s.Name, lineData(s.Values))
	}
	return r.write("monthly_trends", line)
}

func (r *Renderer) productTreemap(groups []aggregate.Group) *charts.TreeMap {
	nodes := make([]opts.TreeMapNode, len(groups))
	for i, g := range groups {
		nodes[i] = opts.TreeMapNode{Name: g.Key, Value: int(math.Round(g.Value))}
	}
	tm := charts.NewTreeMap()
	tm.SetGlobalOptions(
		charts.WithInitializationOpts(r.init("Sales Share by Product")),
		charts.WithTitleOpts(opts.Title{Title: "Sales Share by Product"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithColorsOpts(opts.Colors(r.Palette)),
	)
	tm.AddSeries("Products", nodes).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}"}))
	return tm
}

// RenderTreemap writes the product share treemap.
func (r *Renderer) RenderTreemap(groups []aggregate.Group) (string, error) {
	return r.write("product_treemap", r.productTreemap(groups))
}

// RenderHeatmap writes the correlation heatmap for the numeric sales fields.
func (r *Renderer) RenderHeatmap(m *aggregate.Matrix) (string, error) {
	data := make([]opts.HeatMapData, 0, len(m.Columns)*len(m.Columns))
	for i := range m.Columns {
		for j := range m.Columns {
			v := math.Round(m.Values[i][j]*100) / 100
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(r.init("Correlation of Sales Metrics")),
		charts.WithTitleOpts(opts.Title{Title: "Correlation of Sales Metrics"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: m.Columns, SplitArea: &opts.SplitArea{Show: true}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: m.Columns, SplitArea: &opts.SplitArea{Show: true}}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: []string{"#313695", "#ffffff", "#a50026"}},
		}),
	)
	hm.AddSeries("pearson", data,
		charts.WithLabelOpts(opts.Label{Show: true}))
	return r.write("correlation_heatmap", hm)
}
