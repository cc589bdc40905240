package pipeline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/harness/ar-stats/internal/report"
	"github.com/harness/ar-stats/internal/stats"
	"github.com/harness/ar-stats/internal/style"
	"github.com/harness/ar-stats/util/common"
	"github.com/harness/ar-stats/util/common/printer"
)

// summaryDoc is the json/yaml form of a repository summary
type summaryDoc struct {
	Report        string `json:"report" yaml:"report"`
	stats.Summary `yaml:",inline"`
}

type metric struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

var (
	metricMapping = printer.ColumnMapping{{"metric", "Metric"}, {"value", "Value"}}
	rangeMapping  = printer.ColumnMapping{{"range", "Download Range"}, {"count", "Count"}}
	yearMapping   = printer.ColumnMapping{{"year", "Year"}, {"artifactCount", "Artifact Count"}, {"totalSizeGB", "Total Size (GB)"}}
	monthMapping  = printer.ColumnMapping{{"month", "Month"}, {"uploadCount", "Upload Count"}}
	userMapping   = printer.ColumnMapping{{"user", "User"}, {"uploadCount", "Upload Count"}}
)

// PrintSummary writes the summary of one written report in format
func PrintSummary(w io.Writer, format string, res report.Result) error {
	switch format {
	case printer.FormatNone:
		return nil
	case printer.FormatJSON, printer.FormatYAML:
		return printer.PrintWithOptions(summaryDoc{Report: res.Path, Summary: res.Summary}, printer.PrintOptions{
			Format: format,
			Writer: w,
		})
	}

	s := res.Summary
	fmt.Fprintln(w, style.Title.Render(s.Repository))

	metrics := []metric{
		{"Total Artifacts", strconv.Itoa(s.TotalArtifacts)},
		{"Total Size", common.GetSize(s.TotalSize)},
		{"Zero Downloads", strconv.Itoa(s.ZeroDownloads)},
		{"Downloaded Artifacts", strconv.Itoa(s.BucketedArtifacts())},
		{"Report", res.Path},
	}

	tables := []struct {
		title   string
		rows    any
		mapping printer.ColumnMapping
	}{
		{"Overview", metrics, metricMapping},
		{"Download Ranges", s.DownloadRanges, rangeMapping},
		{"Yearly Uploads", s.Yearly, yearMapping},
		{"Monthly Uploads", s.Monthly, monthMapping},
		{"Uploads by User", s.Users, userMapping},
	}
	for _, t := range tables {
		if err := printer.PrintTableWithOptions(t.rows, printer.TableOptions{
			Writer:        w,
			Title:         t.title,
			ColumnMapping: t.mapping,
			EmptyMessage:  "no data",
		}); err != nil {
			return err
		}
	}
	return nil
}
