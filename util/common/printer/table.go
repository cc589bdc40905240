package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/harness/ar-stats/internal/style"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
)

// ColumnMapping defines a mapping between original field names and display names
type ColumnMapping [][]string

// parseTableData converts a JSON string + column mapping into headers and string rows.
func parseTableData(jsonStr string, mapping ColumnMapping) ([]string, [][]string, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &rows); err != nil {
		return nil, nil, fmt.Errorf("parse json: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var header []string
	if len(mapping) > 0 {
		for _, m := range mapping {
			if len(m) >= 2 {
				header = append(header, m[1])
			}
		}
	} else {
		for k := range rows[0] {
			header = append(header, k)
		}
		sort.Strings(header)
	}

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, len(header))
		for i := range header {
			key := header[i]
			if len(mapping) > 0 {
				key = mapping[i][0]
			}
			val, ok := r[key]
			if !ok || val == nil {
				row[i] = "-"
				continue
			}
			row[i] = fmt.Sprint(val)
		}
		tableRows = append(tableRows, row)
	}

	return header, tableRows, nil
}

// renderStyledTable renders a table using lipgloss/table with the project's colour theme.
func renderStyledTable(w io.Writer, headers []string, rows [][]string) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(style.Cyan).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Foreground(style.White).
		Padding(0, 1)

	dimCellStyle := lipgloss.NewStyle().
		Foreground(style.Dim).
		Padding(0, 1)

	t := lgtable.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(style.Subtle)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			if row%2 == 0 {
				return cellStyle
			}
			return dimCellStyle
		})

	for _, r := range rows {
		t = t.Row(r...)
	}

	fmt.Fprintln(w, t.Render())
}

// renderPtermTable renders a boxed pterm table (for non-TTY / no-color).
func renderPtermTable(w io.Writer, headers []string, rows [][]string) error {
	data := pterm.TableData{headers}
	for _, r := range rows {
		data = append(data, r)
	}
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed(true).
		WithData(data).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// TableOptions provides configuration for table output
type TableOptions struct {
	// Writer is the output destination (defaults to os.Stdout if nil)
	Writer io.Writer

	// Title is printed above the table when set
	Title string

	// ColumnMapping defines custom column ordering and display names
	// Format: [["originalField", "Display Name"], ...]
	ColumnMapping ColumnMapping

	// EmptyMessage is printed instead of the table when there are no rows
	EmptyMessage string
}

// PrintTableWithOptions prints a slice of structs as a table.
// When colour is enabled (TTY), it renders using lipgloss/table with the project theme.
// Otherwise it falls back to the pterm boxed table for plain-text environments.
func PrintTableWithOptions(res any, options TableOptions) error {
	w := options.Writer
	if w == nil {
		w = os.Stdout
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	headers, rows, err := parseTableData(string(raw), options.ColumnMapping)
	if err != nil {
		log.Error().Msgf("failed to parse table data: %v", err)
		return err
	}

	if options.Title != "" {
		fmt.Fprintln(w, style.Subtitle.Render(options.Title))
	}

	if headers == nil {
		if options.EmptyMessage != "" {
			fmt.Fprintln(w, style.DimText.Render(options.EmptyMessage))
		}
		return nil
	}

	if style.Enabled {
		renderStyledTable(w, headers, rows)
		return nil
	}
	if err := renderPtermTable(w, headers, rows); err != nil {
		log.Error().Msgf("failed to render table: %v", err)
		return err
	}
	return nil
}
