// Package printer provides output formatting utilities for the CLI
package printer

import (
	"fmt"
	"io"
	"os"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatNone  = "none"
)

// PrintOptions combines options for JSON, YAML and table output
type PrintOptions struct {
	// Format is one of the Format constants
	Format string
	// Writer is the output destination (defaults to os.Stdout if nil)
	Writer io.Writer
	// Title is printed above a table
	Title string
	// ColumnMapping defines custom column ordering and display names for table format
	// Format: [["originalField", "Display Name"], ...]
	ColumnMapping ColumnMapping
}

// PrintWithOptions formats and outputs data using the provided options
func PrintWithOptions(res any, options PrintOptions) error {
	w := options.Writer
	if w == nil {
		w = os.Stdout
	}

	switch options.Format {
	case FormatNone:
		return nil
	case FormatJSON:
		return PrintJson(w, res)
	case FormatYAML:
		return PrintYaml(w, res)
	case FormatTable, "":
		return PrintTableWithOptions(res, TableOptions{
			Writer:        w,
			Title:         options.Title,
			ColumnMapping: options.ColumnMapping,
		})
	default:
		return fmt.Errorf("unsupported output format: %s", options.Format)
	}
}
