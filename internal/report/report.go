// Package report exports an HTML summary report: executive totals, top
// product/region/rep rankings, and data-quality notes.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/KaramelBytes/saleslens-cli/internal/aggregate"
	"github.com/KaramelBytes/saleslens-cli/internal/dataset"
	"github.com/KaramelBytes/saleslens-cli/internal/utils"
)

// Data is everything the report template needs.
type Data struct {
	Title       string
	RunID       string
	GeneratedAt time.Time
	Source      string
	Summary     *aggregate.Summary
	Skipped     int
	Warnings    []string
}

// FormatUSD renders a decimal amount as "$1,234.56".
func FormatUSD(d decimal.Decimal) string {
	s := d.Round(2).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	var parts []string
	for len(intPart) > 3 {
		parts = append([]string{intPart[len(intPart)-3:]}, parts...)
		intPart = intPart[:len(intPart)-3]
	}
	parts = append([]string{intPart}, parts...)
	out := "$" + strings.Join(parts, ",") + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

func formatUSDFloat(v float64) string {
	return FormatUSD(decimal.NewFromFloat(v))
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"usd":  FormatUSD,
	"usdf": formatUSDFloat,
}).Parse(reportHTML))

// Write renders the summary report for a table into dir and returns the
// file path. The filename carries a timestamp; the body carries a unique
// run id.
func Write(dir string, t *dataset.Table, topN int) (string, error) {
	s, err := aggregate.Summarize(t, topN)
	if err != nil {
		return "", err
	}
	data := Data{
		Title:       "Sales Analysis Report",
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Source:      t.Source,
		Summary:     s,
		Skipped:     t.Skipped,
		Warnings:    t.Warnings,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("ensure reports dir: %w", err)
	}
	name := fmt.Sprintf("sales_report_%s.html", data.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

const reportHTML = `<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 40px; }
  h1 { color: #333; }
  h2 { color: #666; }
  .summary { background-color: #f5f5f5; padding: 20px; margin: 20px 0; }
  .metric { display: inline-block; margin: 10px 20px; }
  .footer { color: #999; font-size: 12px; margin-top: 40px; }
  table { border-collapse: collapse; width: 100%; margin: 20px 0; }
  th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
  th { background-color: #f2f2f2; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Generated on: {{.GeneratedAt.Format "2006-01-02 15:04:05"}} &mdash; source: {{.Source}}</p>

<div class="summary">
  <h2>Executive Summary</h2>
  <div class="metric"><strong>Total Sales:</strong> {{usd .Summary.TotalSales}}</div>
  <div class="metric"><strong>Average Sale:</strong> {{usd .Summary.AverageSale}}</div>
  <div class="metric"><strong>Transactions:</strong> {{.Summary.Transactions}}</div>
  <div class="metric"><strong>Customers:</strong> {{.Summary.DistinctCustomers}}</div>
  <div class="metric"><strong>Date Range:</strong> {{.Summary.Start.Format "2006-01-02"}} to {{.Summary.End.Format "2006-01-02"}}</div>
</div>

<h2>Top Products by Sales</h2>
<table>
  <tr><th>Product</th><th>Total Sales</th></tr>
  {{range .Summary.TopProducts}}<tr><td>{{.Key}}</td><td>{{usdf .Value}}</td></tr>
  {{end}}
</table>

<h2>Top Regions by Sales</h2>
<table>
  <tr><th>Region</th><th>Total Sales</th></tr>
  {{range .Summary.TopRegions}}<tr><td>{{.Key}}</td><td>{{usdf .Value}}</td></tr>
  {{end}}
</table>

{{if .Summary.TopReps}}
<h2>Top Sales Representatives</h2>
<table>
  <tr><th>Sales Rep</th><th>Total Sales</th></tr>
  {{range .Summary.TopReps}}<tr><td>{{.Key}}</td><td>{{usdf .Value}}</td></tr>
  {{end}}
</table>
{{end}}

{{if or .Skipped .Warnings}}
<h2>Data Quality</h2>
<ul>
  {{if .Skipped}}<li>{{.Skipped}} rows were skipped during load.</li>{{end}}
  {{range .Warnings}}<li>{{.}}</li>
  {{end}}
</ul>
{{end}}

<div class="footer">Report {{.RunID}}</div>
</body>
</html>
`
