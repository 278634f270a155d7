package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/saleslens-cli/internal/dataset"
	"github.com/KaramelBytes/saleslens-cli/internal/report"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive menu",
	Long: `Starts an interactive session: generate or load a dataset once, then
summarize it and render any of the charts without reloading between steps.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func printMenu(w io.Writer) {
	fmt.Fprintln(w, "\nWhat would you like to do?")
	fmt.Fprintln(w, "1. Generate sample data and run demo")
	fmt.Fprintln(w, "2. Load data from file")
	fmt.Fprintln(w, "3. View data summary")
	fmt.Fprintln(w, "4. Create time series plot")
	fmt.Fprintln(w, "5. Create product analysis")
	fmt.Fprintln(w, "6. Create regional analysis")
	fmt.Fprintln(w, "7. Create sales rep performance")
	fmt.Fprintln(w, "8. Create monthly trends")
	fmt.Fprintln(w, "9. Create correlation heatmap")
	fmt.Fprintln(w, "10. Create comprehensive dashboard")
	fmt.Fprintln(w, "11. Generate full report")
	fmt.Fprintln(w, "0. Exit")
	fmt.Fprint(w, "\nEnter your choice (0-11): ")
}

// runMenu drives the interactive loop. Errors from individual actions are
// printed and the loop continues; only exhausting the input ends the session.
func runMenu(in io.Reader, w io.Writer) error {
	c := ensureConfig()
	banner := strings.Repeat("=", 50)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "SalesLens: Sales Data Visualization Tool")
	fmt.Fprintln(w, banner)

	var table *dataset.Table
	scanner := bufio.NewScanner(in)
	for {
		printMenu(w)
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		choice := strings.TrimSpace(scanner.Text())

		switch choice {
		case "0":
			fmt.Fprintln(w, "Thank you for using SalesLens!")
			return nil
		case "1":
			fmt.Fprintln(w, "\nGenerating sample data...")
			opt := dataset.DefaultGenerateOptions()
			opt.Records = c.SampleRecords
			opt.Seed = c.Seed
			opt.Start = parseConfigDate(c.DateStart, opt.Start)
			opt.End = parseConfigDate(c.DateEnd, opt.End)
			t := dataset.Generate(opt)
			if err := dataset.WriteCSV(t, c.SampleFile); err != nil {
				fmt.Fprintf(w, "✗ Error: %v\n", err)
				continue
			}
			table = t
			fmt.Fprintf(w, "✓ Sample data saved to %s\n", c.SampleFile)
			fmt.Fprintln(w, "\nRunning demo with all visualizations...")
			if err := demoCharts(w, table); err != nil {
				fmt.Fprintf(w, "✗ Error: %v\n", err)
				continue
			}
			fmt.Fprintln(w, "✓ Demo completed successfully!")
		case "2":
			fmt.Fprint(w, "Enter the path to your data file: ")
			if !scanner.Scan() {
				fmt.Fprintln(w)
				return scanner.Err()
			}
			path := strings.TrimSpace(scanner.Text())
			t, err := loadTable(w, path)
			if err != nil {
				fmt.Fprintf(w, "✗ Error: %v\n", err)
				continue
			}
			table = t
		case "3":
			withTable(w, table, func(t *dataset.Table) error {
				return printSummary(w, t)
			})
		case "4":
			menuChart(w, table, "time series plot", renderTimeSeries)
		case "5":
			menuChart(w, table, "product analysis", renderProducts)
		case "6":
			menuChart(w, table, "regional analysis", renderRegions)
		case "7":
			menuChart(w, table, "sales rep performance", renderReps)
		case "8":
			menuChart(w, table, "monthly trends", renderMonthly)
		case "9":
			menuChart(w, table, "correlation heatmap", renderHeatmap)
		case "10":
			menuChart(w, table, "comprehensive dashboard", renderDashboard)
		case "11":
			withTable(w, table, func(t *dataset.Table) error {
				path, err := report.Write(c.ReportsDir(), t, c.TopN)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "✓ Report saved: %s\n", path)
				return nil
			})
		default:
			fmt.Fprintln(w, "Invalid choice. Please try again.")
		}
	}
}

func withTable(w io.Writer, t *dataset.Table, fn func(*dataset.Table) error) {
	if t == nil {
		fmt.Fprintln(w, "Please load data first (option 1 or 2)")
		return
	}
	if err := fn(t); err != nil {
		fmt.Fprintf(w, "✗ Error: %v\n", err)
	}
}

func menuChart(w io.Writer, t *dataset.Table, name string, render func(*dataset.Table) (string, error)) {
	withTable(w, t, func(t *dataset.Table) error {
		fmt.Fprintf(w, "Creating %s...\n", name)
		path, err := render(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Chart saved: %s\n", path)
		return nil
	})
}
