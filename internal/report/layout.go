package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Block is a table written by Layout: one header row followed by rows
type Block struct {
	Header []interface{}
	Rows   [][]interface{}
}

// Height is the number of sheet rows the block occupies
func (b Block) Height() int {
	return 1 + len(b.Rows)
}

// Layout stacks blocks vertically on one sheet. It tracks the next free
// row so callers never compute offsets by hand.
type Layout struct {
	file        *excelize.File
	sheet       string
	row         int
	gap         int
	headerStyle int
}

// NewLayout starts at A1 and leaves gap blank rows between blocks
func NewLayout(f *excelize.File, sheet string, gap int) *Layout {
	return &Layout{file: f, sheet: sheet, row: 1, gap: gap}
}

// WithHeaderStyle applies styleID to every header row written afterwards
func (l *Layout) WithHeaderStyle(styleID int) *Layout {
	l.headerStyle = styleID
	return l
}

// Append writes b at the cursor and advances past it and the gap.
// It returns the row the block started on.
func (l *Layout) Append(b Block) (int, error) {
	start := l.row

	header := b.Header
	if err := l.file.SetSheetRow(l.sheet, cell(1, start), &header); err != nil {
		return 0, fmt.Errorf("write header at row %d: %w", start, err)
	}
	if l.headerStyle != 0 && len(header) > 0 {
		if err := l.file.SetCellStyle(l.sheet, cell(1, start), cell(len(header), start), l.headerStyle); err != nil {
			return 0, fmt.Errorf("style header at row %d: %w", start, err)
		}
	}
	for i, r := range b.Rows {
		row := r
		if err := l.file.SetSheetRow(l.sheet, cell(1, start+1+i), &row); err != nil {
			return 0, fmt.Errorf("write row %d: %w", start+1+i, err)
		}
	}

	l.row = start + b.Height() + l.gap
	return start, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
