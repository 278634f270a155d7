package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/saleslens-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set SalesLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ensureConfig()
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "data_dir: %s\n", c.DataDir)
		fmt.Fprintf(w, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(w, "sample_file: %s\n", c.SampleFile)
		fmt.Fprintf(w, "chart_width: %d\n", c.ChartWidth)
		fmt.Fprintf(w, "chart_height: %d\n", c.ChartHeight)
		if c.ChartTheme != "" {
			fmt.Fprintf(w, "chart_theme: %s\n", c.ChartTheme)
		}
		fmt.Fprintf(w, "palette: %s\n", strings.Join(c.Palette, ","))
		fmt.Fprintf(w, "top_n: %d\n", c.TopN)
		fmt.Fprintf(w, "sample_records: %d\n", c.SampleRecords)
		fmt.Fprintf(w, "seed: %d\n", c.Seed)
		fmt.Fprintf(w, "date_start: %s\n", c.DateStart)
		fmt.Fprintf(w, "date_end: %s\n", c.DateEnd)
		fmt.Fprintf(w, "drop_bad_dates: %t\n", c.DropBadDates)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := ensureConfig()
		if err := applyConfigValue(c, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func applyConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "data_dir":
		c.DataDir = val
	case "output_dir":
		c.OutputDir = val
	case "sample_file":
		c.SampleFile = val
	case "chart_theme":
		c.ChartTheme = val
	case "date_start", "date_end":
		if _, err := time.Parse("2006-01-02", val); err != nil {
			return fmt.Errorf("invalid date for %s: %s (use YYYY-MM-DD)", key, val)
		}
		if key == "date_start" {
			c.DateStart = val
		} else {
			c.DateEnd = val
		}
	case "palette":
		colors := strings.Split(val, ",")
		for i := range colors {
			colors[i] = strings.TrimSpace(colors[i])
		}
		c.Palette = colors
	case "chart_width", "chart_height", "top_n", "sample_records":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid positive int for %s: %v", key, val)
		}
		switch key {
		case "chart_width":
			c.ChartWidth = i
		case "chart_height":
			c.ChartHeight = i
		case "top_n":
			c.TopN = i
		case "sample_records":
			c.SampleRecords = i
		}
	case "seed":
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid int for seed: %v", val)
		}
		c.Seed = i
	case "drop_bad_dates":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for drop_bad_dates: %v", val)
		}
		c.DropBadDates = b
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
