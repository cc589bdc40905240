// Package report renders a repository's artifact table into an xlsx
// workbook with Data, Summary and Graphs sheets.
package report

import (
	"fmt"
	_ "image/png" // register the decoder excelize needs for AddPicture
	"path/filepath"
	"strings"
	"time"

	"github.com/harness/ar-stats/internal/stats"
	"github.com/harness/ar-stats/util/common/errors"
	"github.com/harness/ar-stats/util/common/fileutil"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	DataSheet    = "Data"
	SummarySheet = "Summary"
	GraphsSheet  = "Graphs"
)

// DefaultImagesDir is where chart PNGs are rendered when not configured
const DefaultImagesDir = "images"

// Columns of the Data sheet, in order
var Columns = []string{
	"repo", "path", "name", "type", "size",
	"created", "created_by", "modified", "modified_by", "updated",
	"downloads", "downloaded_by", "last_downloaded",
	"year", "month", "size_in_gb", "month_year", "download_range",
}

const dateFormat = "yyyy-mm-dd hh:mm:ss"

// FileName is {repository}-{YYYYMonDDTHHMM}HZ-stats.xlsx
func FileName(repository string, t time.Time) string {
	return fmt.Sprintf("%s-%sHZ-stats.xlsx", repository, t.Format("2006Jan02T1504"))
}

// Writer renders reports to disk
type Writer struct {
	outputDir string
	imagesDir string
	now       func() time.Time
}

// Option configures a Writer
type Option func(*Writer)

// WithOutputDir sets the directory workbooks are saved to
func WithOutputDir(dir string) Option {
	return func(w *Writer) { w.outputDir = dir }
}

// WithImagesDir sets the directory chart PNGs are rendered to
func WithImagesDir(dir string) Option {
	return func(w *Writer) { w.imagesDir = dir }
}

// WithClock replaces time.Now for file naming
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// NewWriter writes to the working directory and ./images by default
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		outputDir: ".",
		imagesDir: DefaultImagesDir,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Result describes one written report
type Result struct {
	Path    string
	Summary stats.Summary
	Images  []string
}

// Write aggregates table and saves the workbook for repository
func (w *Writer) Write(repository string, table stats.Table) (Result, error) {
	summary := stats.Summarize(repository, table)
	res := Result{Summary: summary}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return res, fmt.Errorf("rename data sheet: %w", err)
	}
	if err := writeData(f, table); err != nil {
		return res, fmt.Errorf("write %s sheet: %w", DataSheet, err)
	}
	if err := writeSummary(f, summary); err != nil {
		return res, fmt.Errorf("write %s sheet: %w", SummarySheet, err)
	}
	images, err := w.writeGraphs(f, summary)
	if err != nil {
		return res, fmt.Errorf("write %s sheet: %w", GraphsSheet, err)
	}
	res.Images = images
	f.SetActiveSheet(0)

	if err := fileutil.EnsureDir(w.outputDir); err != nil {
		return res, err
	}
	path := filepath.Join(w.outputDir, FileName(repository, w.now()))
	if err := f.SaveAs(path); err != nil {
		return res, errors.NewFileError(path, "save", err)
	}
	res.Path = path

	log.Info().Str("repository", repository).Str("path", path).Int("artifacts", summary.TotalArtifacts).
		Msg("Report written")
	return res, nil
}

func writeData(f *excelize.File, table stats.Table) error {
	sw, err := f.NewStreamWriter(DataSheet)
	if err != nil {
		return err
	}
	dateFmt := dateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return err
	}
	if err := sw.SetColWidth(1, len(Columns), 16); err != nil {
		return err
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, rec := range table.Records {
		if err := sw.SetRow(cell(1, i+2), dataRow(rec, dateStyle)); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return sw.Flush()
}

func dataRow(rec stats.Record, dateStyle int) []interface{} {
	row := []interface{}{
		rec.Repo, rec.Path, rec.Name, rec.Type, rec.Size,
		timeCell(rec.Created, dateStyle), rec.CreatedBy,
		timeCell(rec.Modified, dateStyle), rec.ModifiedBy, rec.Updated,
		rec.Downloads, rec.DownloadedBy, rec.LastDownloaded,
	}
	if year, ok := rec.Year(); ok {
		month, _ := rec.Month()
		row = append(row, year, month)
	} else {
		row = append(row, nil, nil)
	}
	label, _ := rec.DownloadRange()
	return append(row, rec.SizeInGB(), rec.MonthYear(), label)
}

func timeCell(ts stats.Timestamp, style int) interface{} {
	if !ts.Valid {
		return nil
	}
	return excelize.Cell{StyleID: style, Value: ts.Time}
}

// summaryBlocks returns the Summary sheet tables in display order
func summaryBlocks(s stats.Summary) []Block {
	metrics := Block{
		Header: []interface{}{"", "Count"},
		Rows: [][]interface{}{
			{"Zero Downloads", s.ZeroDownloads},
			{"Yearly Uploads", yearlyMapping(s.Yearly)},
			{"Uploads By User", userMapping(s.Users)},
		},
	}

	ranges := Block{Header: []interface{}{"Download Range", "Count"}}
	for _, b := range s.DownloadRanges {
		ranges.Rows = append(ranges.Rows, []interface{}{b.Range, b.Count})
	}

	yearly := Block{Header: []interface{}{"Year", "Artifact Count", "Total Size (GB)"}}
	for _, y := range s.Yearly {
		yearly.Rows = append(yearly.Rows, []interface{}{y.Year, y.ArtifactCount, y.TotalSizeGB})
	}

	monthly := Block{Header: []interface{}{"Month", "Upload Count"}}
	for _, m := range s.Monthly {
		monthly.Rows = append(monthly.Rows, []interface{}{m.Label, m.UploadCount})
	}

	users := Block{Header: []interface{}{"User", "Upload Count"}}
	for _, u := range s.Users {
		users.Rows = append(users.Rows, []interface{}{u.User, u.UploadCount})
	}

	return []Block{metrics, ranges, yearly, monthly, users}
}

func writeSummary(f *excelize.File, s stats.Summary) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "C", 20); err != nil {
		return err
	}

	layout := NewLayout(f, SummarySheet, 1).WithHeaderStyle(bold)
	for _, b := range summaryBlocks(s) {
		if _, err := layout.Append(b); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeGraphs(f *excelize.File, s stats.Summary) ([]string, error) {
	if _, err := f.NewSheet(GraphsSheet); err != nil {
		return nil, err
	}

	var images []string
	for _, c := range Charts(s) {
		if c.Empty {
			log.Warn().Str("chart", c.Title).Str("repository", s.Repository).Msg("No data to plot")
			if err := f.SetCellValue(GraphsSheet, c.Anchor, fmt.Sprintf("%s: no data", c.Title)); err != nil {
				return nil, err
			}
			continue
		}

		path, err := c.RenderPNG(w.imagesDir, s.Repository)
		if err != nil {
			return nil, err
		}
		images = append(images, path)

		opts := &excelize.GraphicOptions{ScaleX: c.Scale, ScaleY: c.Scale, AltText: c.Title}
		if err := f.AddPicture(GraphsSheet, c.Anchor, path, opts); err != nil {
			return nil, errors.NewFileError(path, "embed", err)
		}
	}
	return images, nil
}

func yearlyMapping(years []stats.YearSummary) string {
	parts := make([]string, 0, len(years))
	for _, y := range years {
		parts = append(parts, fmt.Sprintf("%d: %d", y.Year, y.ArtifactCount))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func userMapping(users []stats.UserSummary) string {
	parts := make([]string, 0, len(users))
	for _, u := range users {
		parts = append(parts, fmt.Sprintf("%s: %d", u.User, u.UploadCount))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
