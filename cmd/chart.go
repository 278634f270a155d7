package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/saleslens-cli/internal/aggregate"
	"github.com/KaramelBytes/saleslens-cli/internal/chart"
	"github.com/KaramelBytes/saleslens-cli/internal/dataset"
)

var chartInput string

var chartKinds = map[string]func(*dataset.Table) (string, error){
	"timeseries": renderTimeSeries,
	"products":   renderProducts,
	"regions":    renderRegions,
	"reps":       renderReps,
	"monthly":    renderMonthly,
	"treemap":    renderTreemap,
	"heatmap":    renderHeatmap,
}

func chartKindNames() string {
	return strings.Join([]string{"timeseries", "products", "regions", "reps", "monthly", "treemap", "heatmap"}, "|")
}

var chartCmd = &cobra.Command{
	Use:   "chart <kind>",
	Short: "Render a single chart as an interactive HTML file",
	Long: `Renders one chart kind for the loaded dataset and saves it under the
configured charts directory. Kinds: ` + chartKindNames() + `.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := strings.ToLower(args[0])
		render, ok := chartKinds[kind]
		if !ok {
			return fmt.Errorf("unknown chart kind %q (choose %s)", args[0], chartKindNames())
		}
		w := cmd.OutOrStdout()
		t, err := loadTable(w, chartInput)
		if err != nil {
			return err
		}
		path, err := render(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Chart saved: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chartInput, "input", "i", "", "input data file (CSV, TSV or XLSX)")
}

func dailySales(t *dataset.Table) []aggregate.Group {
	daily := aggregate.GroupBy(t, aggregate.ByDay, aggregate.FieldTotalSales, aggregate.MetricSum)
	aggregate.SortByKey(daily)
	return daily
}

func renderTimeSeries(t *dataset.Table) (string, error) {
	return newRenderer().RenderTimeSeries(dailySales(t))
}

func renderProducts(t *dataset.Table) (string, error) {
	sales := aggregate.GroupBy(t, aggregate.ByProduct, aggregate.FieldTotalSales, aggregate.MetricSum)
	qty := aggregate.GroupBy(t, aggregate.ByProduct, aggregate.FieldQuantity, aggregate.MetricSum)
	customers := aggregate.GroupBy(t, aggregate.ByProduct, aggregate.FieldTotalSales, aggregate.MetricDistinctCustomers)
	avg := aggregate.GroupBy(t, aggregate.ByProduct, aggregate.FieldTotalSales, aggregate.MetricMean)
	return newRenderer().RenderProductAnalysis(sales, qty, customers, avg)
}

func renderRegions(t *dataset.Table) (string, error) {
	regions := aggregate.GroupBy(t, aggregate.ByRegion, aggregate.FieldTotalSales, aggregate.MetricSum)
	return newRenderer().RenderRegionPie(regions)
}

func renderReps(t *dataset.Table) (string, error) {
	if !t.Has(dataset.ColSalesRep) {
		return "", fmt.Errorf("dataset has no %s column", dataset.ColSalesRep)
	}
	reps := aggregate.GroupBy(t, aggregate.ByRep, aggregate.FieldTotalSales, aggregate.MetricSum)
	return newRenderer().RenderTopReps(aggregate.TopN(reps, ensureConfig().TopN))
}

func renderMonthly(t *dataset.Table) (string, error) {
	labels, series := aggregate.Pivot(t, aggregate.ByMonth, aggregate.ByProduct, aggregate.FieldTotalSales, aggregate.MetricSum)
	return newRenderer().RenderMonthlyTrends(labels, series)
}

func renderTreemap(t *dataset.Table) (string, error) {
	products := aggregate.GroupBy(t, aggregate.ByProduct, aggregate.FieldTotalSales, aggregate.MetricSum)
	return newRenderer().RenderTreemap(products)
}

func renderHeatmap(t *dataset.Table) (string, error) {
	m, err := aggregate.Correlations(t)
	if err != nil {
		return "", err
	}
	return newRenderer().RenderHeatmap(m)
}

func renderDashboard(t *dataset.Table) (string, error) {
	products := aggregate.GroupBy(t, aggregate.ByProduct, aggregate.FieldTotalSales, aggregate.MetricSum)
	monthly := aggregate.GroupBy(t, aggregate.ByMonth, aggregate.FieldTotalSales, aggregate.MetricSum)
	aggregate.SortByKey(monthly)
	in := chart.DashboardInput{
		Daily:       dailySales(t),
		Monthly:     monthly,
		Regions:     aggregate.GroupBy(t, aggregate.ByRegion, aggregate.FieldTotalSales, aggregate.MetricSum),
		TopProducts: aggregate.TopN(products, ensureConfig().TopN),
		Products:    products,
	}
	return newRenderer().RenderDashboard(in)
}
