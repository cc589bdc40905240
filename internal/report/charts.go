package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/harness/ar-stats/internal/stats"
	"github.com/harness/ar-stats/util/common/errors"
	"github.com/harness/ar-stats/util/common/fileutil"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	skyBlue    = drawing.ColorFromHex("87CEEB")
	lightGreen = drawing.ColorFromHex("90EE90")
)

// renderer is satisfied by chart.BarChart and chart.PieChart
type renderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Chart is one image placed on the Graphs sheet
type Chart struct {
	Title  string
	File   string
	Anchor string
	// Scale shrinks the rendered PNG so charts don't overlap their
	// neighbours' anchors.
	Scale float64
	// Empty is true when there is nothing to plot.
	Empty bool
	graph renderer
}

// Charts builds the three report charts for s: yearly uploads at B2,
// uploads by user at B20 and monthly uploads at B40
func Charts(s stats.Summary) []Chart {
	return []Chart{
		yearlyUploadsChart(s),
		uploadsByUserChart(s),
		monthlyUploadsChart(s),
	}
}

func yearlyUploadsChart(s stats.Summary) Chart {
	bars := make([]chart.Value, 0, len(s.Yearly))
	for _, y := range s.Yearly {
		bars = append(bars, bar(float64(y.ArtifactCount), fmt.Sprint(y.Year), skyBlue))
	}
	return Chart{
		Title:  "Yearly Uploads",
		File:   "yearly_uploads.png",
		Anchor: "B2",
		Scale:  0.55,
		Empty:  len(bars) == 0,
		graph:  barChart("Yearly Uploads", bars),
	}
}

func uploadsByUserChart(s stats.Summary) Chart {
	total := 0
	for _, u := range s.Users {
		total += u.UploadCount
	}
	values := make([]chart.Value, 0, len(s.Users))
	for _, u := range s.Users {
		share := 100 * float64(u.UploadCount) / float64(total)
		values = append(values, chart.Value{
			Value: float64(u.UploadCount),
			Label: fmt.Sprintf("%s (%.1f%%)", u.User, share),
		})
	}
	return Chart{
		Title:  "Uploads by User",
		File:   "uploads_by_user.png",
		Anchor: "B20",
		Scale:  0.45,
		Empty:  len(values) == 0,
		graph: chart.PieChart{
			Title:      "Uploads by User",
			Width:      800,
			Height:     800,
			Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
			Values:     values,
		},
	}
}

func monthlyUploadsChart(s stats.Summary) Chart {
	bars := make([]chart.Value, 0, len(s.Monthly))
	for _, m := range s.Monthly {
		bars = append(bars, bar(float64(m.UploadCount), m.Label, lightGreen))
	}
	return Chart{
		Title:  "Monthly Uploads Breakdown",
		File:   "monthly_uploads.png",
		Anchor: "B40",
		Scale:  0.55,
		Empty:  len(bars) == 0,
		graph:  barChart("Monthly Uploads Breakdown", bars),
	}
}

func bar(v float64, label string, color drawing.Color) chart.Value {
	return chart.Value{
		Value: v,
		Label: label,
		Style: chart.Style{FillColor: color, StrokeColor: color},
	}
}

// barChart sizes the canvas so every bar fits and pins the y range at
// zero; go-chart refuses a range whose min equals its max.
func barChart(title string, bars []chart.Value) chart.BarChart {
	const (
		minWidth = 1000
		spacing  = 10
	)
	barWidth := 60
	if len(bars) > 12 {
		barWidth = 30
	}
	width := len(bars)*(barWidth+spacing) + 200
	if width < minWidth {
		width = minWidth
	}

	top := 1.0
	for _, b := range bars {
		top = math.Max(top, b.Value)
	}
	step := math.Max(1, math.Ceil(top/10))
	top = step * math.Ceil(top/step+0.5)

	ticks := make([]chart.Tick, 0, int(top/step)+1)
	for v := 0.0; v <= top; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}

	return chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     600,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			Ticks: ticks,
		},
		Bars: bars,
	}
}

// RenderPNG writes the chart into dir, creating it if needed, and
// returns the file path
func (c Chart) RenderPNG(dir, prefix string) (string, error) {
	if c.Empty {
		return "", fmt.Errorf("chart %q has no data", c.Title)
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		return "", err
	}

	name := c.File
	if prefix != "" {
		name = prefix + "-" + name
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.NewFileError(path, "create", err)
	}
	defer f.Close()

	if err := c.graph.Render(chart.PNG, f); err != nil {
		return "", errors.NewFileError(path, "render", err)
	}
	return path, nil
}
