package sheetjson

import (
	"fmt"

	"github.com/sheetkit/gridengine/pkg/address"
	"github.com/sheetkit/gridengine/pkg/grid"
	"github.com/sheetkit/gridengine/pkg/stylemap"
)

// Export serializes a grid snapshot into the sparse interchange envelope:
// one sheet named Sheet1, a width descriptor per column, rows and cells
// emitted only when they carry text, an explicit height, or a style that
// differs from the grid default.
func Export(snap grid.Snapshot) *Document {
	sheet := Sheet{
		Name:             DefaultSheetName,
		DefaultCellStyle: stylemap.ToInterchange(map[string]string(snap.DefaultStyle)),
	}

	for c := 0; c < snap.Cols; c++ {
		col := Column{}
		if px, ok := stylemap.PixelValue(snap.ColumnStyles[c][stylemap.KeyWidth]); ok {
			col.Width = roundPx(px)
		}
		sheet.Columns = append(sheet.Columns, col)
	}

	for r := 0; r < snap.Rows; r++ {
		row := Row{Index: r}
		if px, ok := stylemap.PixelValue(snap.RowStyles[r][stylemap.KeyHeight]); ok {
			row.Height = roundPx(px)
		}
		for c := 0; c < snap.Cols; c++ {
			text := snap.Data[r][c]
			style := stylemap.ToInterchange(map[string]string(snap.OverriddenStyle(r, c)))
			if text == "" && len(style) == 0 {
				continue
			}
			row.Cells = append(row.Cells, Cell{Index: c, Value: text, Style: style})
		}
		if len(row.Cells) > 0 || row.Height > 0 {
			sheet.Rows = append(sheet.Rows, row)
		}
	}

	for _, m := range snap.Merges {
		sheet.MergedCells = append(sheet.MergedCells, m.Label())
	}

	if addr, ok := selectionAddress(snap.Selection); ok {
		sheet.ActiveCell = addr
		sheet.Selection = addr
	}

	return &Document{
		ActiveSheet: DefaultSheetName,
		Sheets:      []Sheet{sheet},
		RowHeight:   DefaultRowHeight,
		ColumnWidth: DefaultColumnWidth,
	}
}

// selectionAddress collapses a selection to a single anchor address: cell
// and row selections anchor at the row's first column, column selections
// at the column's first row.
func selectionAddress(sel grid.Selection) (string, bool) {
	switch sel.Kind {
	case grid.SelectionCell, grid.SelectionRow:
		return address.CellName(sel.Row, 0), true
	case grid.SelectionColumn:
		return address.CellName(0, sel.Col), true
	default:
		return "", false
	}
}

// Import parses the interchange document back into a dense model. The
// grid extent is inferred from every sparse index, address and merge range
// the payload references, floored at 2×2. Returns ErrEmptySpreadsheet
// when the document has no sheets.
func Import(doc *Document) (*grid.Model, error) {
	sheet, ok := pickSheet(doc)
	if !ok {
		return nil, ErrEmptySpreadsheet
	}

	rows, cols := inferExtent(doc, sheet)
	defaultStyle := grid.Style(stylemap.FromInterchange(sheet.DefaultCellStyle))

	cand := grid.Candidate{
		Rows:         rows,
		Cols:         cols,
		Data:         make([][]interface{}, rows),
		DefaultStyle: defaultStyle,
		ColumnStyles: make([]grid.Style, cols),
		RowStyles:    make([]grid.Style, rows),
		CellStyles:   make(map[grid.CellRef]grid.Style),
		Merges:       grid.ParseRanges(sheet.MergedCells, rows, cols),
	}
	for r := range cand.Data {
		cand.Data[r] = make([]interface{}, cols)
	}

	for c := 0; c < cols; c++ {
		width := doc.ColumnWidth
		if c < len(sheet.Columns) && sheet.Columns[c].Width > 0 {
			width = sheet.Columns[c].Width
		}
		if width > 0 {
			cand.ColumnStyles[c] = grid.Style{stylemap.KeyWidth: pxString(width)}
		}
	}

	heights := make(map[int]float64, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row.Height > 0 {
			heights[row.Index] = row.Height
		}
	}
	for r := 0; r < rows; r++ {
		height := doc.RowHeight
		if h, ok := heights[r]; ok {
			height = h
		}
		if height > 0 {
			cand.RowStyles[r] = grid.Style{stylemap.KeyHeight: pxString(height)}
		}
	}

	for _, row := range sheet.Rows {
		if row.Index < 0 || row.Index >= rows {
			continue
		}
		for _, cell := range row.Cells {
			if cell.Index < 0 || cell.Index >= cols {
				continue
			}
			ref := grid.CellRef{Row: row.Index, Col: cell.Index}
			cand.Data[ref.Row][ref.Col] = cell.TextValue()

			nested := grid.Style(stylemap.FromInterchange(cell.Style))
			inline := grid.Style(stylemap.FromInterchange(cell.Inline))
			own := grid.MergeStyles(nested, inline)
			if own == nil {
				continue
			}
			// the sheet default sits underneath every imported cell style
			cand.CellStyles[ref] = grid.MergeStyles(defaultStyle, own)
		}
	}

	model := grid.Normalize(cand)
	model.SetSelection(restoreSelection(sheet, rows, cols))
	return model, nil
}

// pickSheet selects the sheet named by activeSheet, else the first one.
func pickSheet(doc *Document) (*Sheet, bool) {
	if len(doc.Sheets) == 0 {
		return nil, false
	}
	if doc.ActiveSheet != "" {
		for i := range doc.Sheets {
			if doc.Sheets[i].Name == doc.ActiveSheet {
				return &doc.Sheets[i], true
			}
		}
	}
	return &doc.Sheets[0], true
}

// inferExtent computes the grid dimensions from every coordinate the
// payload mentions, floored at the 2×2 default.
func inferExtent(doc *Document, sheet *Sheet) (rows, cols int) {
	maxRow, maxCol := -1, -1
	bump := func(r, c int) {
		if r > maxRow {
			maxRow = r
		}
		if c > maxCol {
			maxCol = c
		}
	}

	for _, row := range sheet.Rows {
		bump(row.Index, -1)
		for _, cell := range row.Cells {
			bump(-1, cell.Index)
		}
	}
	bump(-1, len(sheet.Columns)-1)

	if r, c, ok := address.ParseCell(sheet.ActiveCell); ok {
		bump(r, c)
	}
	if sr, sc, er, ec, ok := address.ParseRange(sheet.Selection); ok {
		bump(sr, sc)
		bump(er, ec)
	}
	for _, label := range sheet.MergedCells {
		if sr, sc, er, ec, ok := address.ParseRange(label); ok {
			bump(sr, sc)
			bump(er, ec)
		}
	}

	rows = maxRow + 1
	cols = maxCol + 1
	if rows < grid.DefaultRows {
		rows = grid.DefaultRows
	}
	if cols < grid.DefaultCols {
		cols = grid.DefaultCols
	}
	return rows, cols
}

// restoreSelection rebuilds the transient selection from the sheet's
// selection range, else its active cell. A range spanning the full column
// set on one row becomes a row selection, one spanning the full row set on
// one column becomes a column selection; anything else is a cell selection
// at the range start. Coordinates are clamped into bounds, never rejected.
func restoreSelection(sheet *Sheet, rows, cols int) grid.Selection {
	src := sheet.Selection
	if src == "" {
		src = sheet.ActiveCell
	}
	sr, sc, er, ec, ok := address.ParseRange(src)
	if !ok {
		return grid.Selection{Kind: grid.SelectionNone}
	}
	sr, er = clampInt(sr, rows), clampInt(er, rows)
	sc, ec = clampInt(sc, cols), clampInt(ec, cols)

	switch {
	case sr == er && sc == 0 && ec == cols-1:
		return grid.Selection{Kind: grid.SelectionRow, Row: sr}
	case sc == ec && sr == 0 && er == rows-1:
		return grid.Selection{Kind: grid.SelectionColumn, Col: sc}
	default:
		return grid.Selection{Kind: grid.SelectionCell, Row: sr, Col: sc}
	}
}

func clampInt(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func pxString(px float64) string {
	return fmt.Sprintf("%dpx", int(roundPx(px)))
}
