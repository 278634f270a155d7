package cmd

import (
	"github.com/spf13/cobra"
)

var summaryInput string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a terminal summary of a sales dataset",
	Long: `Loads a sales data file and prints record counts, the date range,
total and average sales, and the top products, regions, and sales reps.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		t, err := loadTable(w, summaryInput)
		if err != nil {
			return err
		}
		return printSummary(w, t)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&summaryInput, "input", "i", "", "input data file (CSV, TSV or XLSX)")
}
