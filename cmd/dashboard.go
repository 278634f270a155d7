package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dashboardInput string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the combined analytics dashboard",
	Long: `Renders a single HTML page combining the daily sales trend, monthly
totals, regional distribution, top products, and the product treemap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		t, err := loadTable(w, dashboardInput)
		if err != nil {
			return err
		}
		path, err := renderDashboard(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Dashboard saved: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVarP(&dashboardInput, "input", "i", "", "input data file (CSV, TSV or XLSX)")
}
