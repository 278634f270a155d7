package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/saleslens-cli/internal/report"
)

var reportInput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a standalone HTML sales report",
	Long: `Loads a sales data file and writes a timestamped HTML report with the
executive summary and the top products, regions, and sales reps.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ensureConfig()
		w := cmd.OutOrStdout()
		t, err := loadTable(w, reportInput)
		if err != nil {
			return err
		}
		path, err := report.Write(c.ReportsDir(), t, c.TopN)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Report saved: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "", "input data file (CSV, TSV or XLSX)")
}
