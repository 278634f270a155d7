package chart

import (
	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/KaramelBytes/saleslens-cli/internal/aggregate"
)

func newPage(title string) *components.Page {
	page := components.NewPage()
	page.PageTitle = title
	page.SetLayout(components.PageFlexLayout)
	return page
}

// DashboardInput carries the pre-aggregated series the dashboard combines.
type DashboardInput struct {
	Daily       []aggregate.Group
	Monthly     []aggregate.Group
	Regions     []aggregate.Group
	TopProducts []aggregate.Group
	Products    []aggregate.Group
}

// RenderDashboard writes a single page combining the trend line, monthly
// bars, regional pie, top-product ranking, and product treemap.
func (r *Renderer) RenderDashboard(in DashboardInput) (string, error) {
	topBar := r.bar("Top Products", "Product", "Total Sales ($)", "Total Sales", in.TopProducts, 2)
	topBar.XYReversal()

	page := newPage("Sales Analytics Dashboard")
	page.AddCharts(
		r.timeSeriesLine(in.Daily),
		r.bar("Monthly Sales", "Month", "Total Sales ($)", "Total Sales", in.Monthly, 1),
		r.regionPie(in.Regions),
		topBar,
		r.productTreemap(in.Products),
	)
	return r.write("dashboard", page)
}
