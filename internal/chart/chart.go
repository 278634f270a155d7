// Package chart renders aggregated sales series as interactive HTML charts
// using go-echarts, and assembles several charts into a dashboard page.
package chart

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/KaramelBytes/saleslens-cli/internal/config"
	"github.com/KaramelBytes/saleslens-cli/internal/utils"
)

// Renderer writes chart HTML files to an output directory.
type Renderer struct {
	Dir     string
	Width   string
	Height  string
	Theme   string
	Palette []string
}

// NewRenderer builds a Renderer from global config.
func NewRenderer(cfg *config.Global) *Renderer {
	return &Renderer{
		Dir:     cfg.ChartsDir(),
		Width:   fmt.Sprintf("%dpx", cfg.ChartWidth),
		Height:  fmt.Sprintf("%dpx", cfg.ChartHeight),
		Theme:   cfg.ChartTheme,
		Palette: cfg.Palette,
	}
}

func (r *Renderer) init(title string) opts.Initialization {
	return opts.Initialization{
		PageTitle: title,
		Width:     r.Width,
		Height:    r.Height,
		Theme:     r.Theme,
	}
}

// color returns the palette entry for a series index, wrapping around.
func (r *Renderer) color(i int) string {
	if len(r.Palette) == 0 {
		return ""
	}
	return r.Palette[i%len(r.Palette)]
}

type renderable interface {
	Render(w io.Writer) error
}

// write renders a chart to <dir>/<name>.html and returns the file path.
// An unwritable directory surfaces as the underlying I/O error.
func (r *Renderer) write(name string, c renderable) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	if err := utils.EnsureDir(r.Dir); err != nil {
		return "", fmt.Errorf("ensure charts dir: %w", err)
	}
	path := filepath.Join(r.Dir, name+".html")
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return path, nil
}
