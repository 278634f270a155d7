package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataDir    string `mapstructure:"data_dir" yaml:"data_dir"`
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	SampleFile string `mapstructure:"sample_file" yaml:"sample_file"`

	// Chart rendering
	ChartWidth  int      `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int      `mapstructure:"chart_height" yaml:"chart_height"`
	ChartTheme  string   `mapstructure:"chart_theme" yaml:"chart_theme"`
	Palette     []string `mapstructure:"palette" yaml:"palette"`

	// Analysis defaults
	TopN int `mapstructure:"top_n" yaml:"top_n"`

	// Sample data generation
	SampleRecords int    `mapstructure:"sample_records" yaml:"sample_records"`
	Seed          int64  `mapstructure:"seed" yaml:"seed"`
	DateStart     string `mapstructure:"date_start" yaml:"date_start"`
	DateEnd       string `mapstructure:"date_end" yaml:"date_end"`

	// Loader behavior: drop rows with unparseable dates instead of keeping
	// them with a zero date.
	DropBadDates bool `mapstructure:"drop_bad_dates" yaml:"drop_bad_dates"`
}

// ChartsDir is the directory chart HTML files are written to.
func (g *Global) ChartsDir() string { return filepath.Join(g.OutputDir, "charts") }

// ReportsDir is the directory summary reports are written to.
func (g *Global) ReportsDir() string { return filepath.Join(g.OutputDir, "reports") }

// defaultPalette mirrors the classic ten-color categorical palette.
var defaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("output_dir", "output")
	v.SetDefault("sample_file", filepath.Join("data", "sample_sales_data.csv"))
	v.SetDefault("chart_width", 1200)
	v.SetDefault("chart_height", 600)
	v.SetDefault("chart_theme", "westeros")
	v.SetDefault("palette", defaultPalette)
	v.SetDefault("top_n", 10)
	v.SetDefault("sample_records", 1000)
	v.SetDefault("seed", 42)
	v.SetDefault("date_start", "2023-01-01")
	v.SetDefault("date_end", "2024-12-31")
	v.SetDefault("drop_bad_dates", true)
}

// Default returns the built-in configuration without consulting files or env.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SALESLENS")
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".saleslens")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(c.Palette) == 0 {
		c.Palette = defaultPalette
	}
	return &c, nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.saleslens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".saleslens")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
