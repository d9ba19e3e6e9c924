// Package xlsxport renders a grid snapshot into a downloadable file: a
// binary xlsx workbook via excelize, or a values-only CSV fallback for
// callers that must keep working when the workbook writer fails.
package xlsxport

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetkit/gridengine/pkg/grid"
	"github.com/sheetkit/gridengine/pkg/stylemap"
)

// Pixel measurements from the grid model are converted into Excel's units:
// column widths are roughly 7px per width unit, row heights and font sizes
// are points at 0.75pt per px.
const (
	pxPerWidthUnit = 7.0
	pointsPerPx    = 0.75
)

// Options controls workbook rendering. The zero value is usable.
type Options struct {
	SheetName            string
	DefaultColumnWidthPx float64
	DefaultRowHeightPx   float64
}

func (o Options) withDefaults() Options {
	if o.SheetName == "" {
		o.SheetName = "Sheet1"
	}
	return o
}

// Writer renders snapshots into xlsx workbooks.
type Writer struct {
	opts Options
}

// NewWriter creates a workbook writer.
func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts.withDefaults()}
}

// Write builds the workbook for one snapshot and streams it to out. Every
// cell carries its fully resolved effective style; merges and column/row
// sizing are applied from the snapshot. Any error is the caller's signal
// to fall back to WriteCSV.
func (w *Writer) Write(snap grid.Snapshot, out io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := w.opts.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsxport: rename sheet: %w", err)
	}

	for c := 0; c < snap.Cols; c++ {
		widthPx := w.opts.DefaultColumnWidthPx
		if px, ok := stylemap.PixelValue(snap.ColumnStyles[c][stylemap.KeyWidth]); ok {
			widthPx = px
		}
		if widthPx > 0 {
			colName, err := excelize.ColumnNumberToName(c + 1)
			if err != nil {
				return fmt.Errorf("xlsxport: column name: %w", err)
			}
			if err := f.SetColWidth(sheet, colName, colName, widthPx/pxPerWidthUnit); err != nil {
				return fmt.Errorf("xlsxport: column width: %w", err)
			}
		}
	}

	for r := 0; r < snap.Rows; r++ {
		heightPx := w.opts.DefaultRowHeightPx
		if px, ok := stylemap.PixelValue(snap.RowStyles[r][stylemap.KeyHeight]); ok {
			heightPx = px
		}
		if heightPx > 0 {
			if err := f.SetRowHeight(sheet, r+1, heightPx*pointsPerPx); err != nil {
				return fmt.Errorf("xlsxport: row height: %w", err)
			}
		}

		for c := 0; c < snap.Cols; c++ {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("xlsxport: cell name: %w", err)
			}
			if text := snap.Data[r][c]; text != "" {
				if err := f.SetCellValue(sheet, cell, text); err != nil {
					return fmt.Errorf("xlsxport: cell value: %w", err)
				}
			}
			style := toExcelStyle(snap.EffectiveStyle(r, c))
			if style == nil {
				continue
			}
			styleID, err := f.NewStyle(style)
			if err != nil {
				return fmt.Errorf("xlsxport: build style: %w", err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return fmt.Errorf("xlsxport: cell style: %w", err)
			}
		}
	}

	for _, m := range snap.Merges {
		start, err := excelize.CoordinatesToCellName(m.Start.Col+1, m.Start.Row+1)
		if err != nil {
			return fmt.Errorf("xlsxport: merge start: %w", err)
		}
		end, err := excelize.CoordinatesToCellName(m.End.Col+1, m.End.Row+1)
		if err != nil {
			return fmt.Errorf("xlsxport: merge end: %w", err)
		}
		if err := f.MergeCell(sheet, start, end); err != nil {
			return fmt.Errorf("xlsxport: merge cells: %w", err)
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("xlsxport: write workbook: %w", err)
	}
	return nil
}

// toExcelStyle maps a resolved canonical style onto an excelize style.
// The interchange mapping already folds fontWeight/fontStyle/textDecoration
// into bold/italic/underline/strike flags, so it is reused here. Returns
// nil when nothing maps.
func toExcelStyle(st grid.Style) *excelize.Style {
	rec := stylemap.ToInterchange(map[string]string(st))
	if rec == nil {
		return nil
	}

	style := &excelize.Style{}
	font := &excelize.Font{}
	alignment := &excelize.Alignment{}
	fontUsed, alignUsed := false, false

	if v, ok := rec["textAlign"].(string); ok {
		alignment.Horizontal = v
		alignUsed = true
	}
	if v, ok := rec["verticalAlign"].(string); ok {
		alignment.Vertical = v
		alignUsed = true
	}
	if v, ok := rec["wrap"].(bool); ok {
		alignment.WrapText = v
		alignUsed = true
	}
	if v, ok := rec["fontFamily"].(string); ok {
		font.Family = v
		fontUsed = true
	}
	if v, ok := rec["fontSize"].(float64); ok {
		font.Size = v * pointsPerPx
		fontUsed = true
	}
	if v, ok := rec["color"].(string); ok {
		font.Color = strings.TrimPrefix(v, "#")
		fontUsed = true
	}
	if v, ok := rec["bold"].(bool); ok && v {
		font.Bold = true
		fontUsed = true
	}
	if v, ok := rec["italic"].(bool); ok && v {
		font.Italic = true
		fontUsed = true
	}
	if v, ok := rec["underline"].(bool); ok && v {
		font.Underline = "single"
		fontUsed = true
	}
	if v, ok := rec["strike"].(bool); ok && v {
		font.Strike = true
		fontUsed = true
	}
	if v, ok := rec["background"].(string); ok {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(v, "#")},
			Pattern: 1,
		}
	}

	if fontUsed {
		style.Font = font
	}
	if alignUsed {
		style.Alignment = alignment
	}
	if !fontUsed && !alignUsed && style.Fill.Type == "" {
		return nil
	}
	return style
}
