// Package grid owns the dense rows×cols model behind an editable grid
// widget: cell text, the four style layers (default, column, row, cell),
// the merge-region list and the transient selection. Structural edits
// keep styles and merges re-indexed so the model stays internally
// consistent.
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Default dimensions used when a caller supplies nothing usable.
const (
	DefaultRows = 2
	DefaultCols = 2
)

// maxStyleProps bounds the number of properties a single style record may
// carry, so hostile interchange payloads cannot grow memory unboundedly.
const maxStyleProps = 200

// ErrInvalidDimension is returned by New for negative row or column counts.
var ErrInvalidDimension = errors.New("grid: rows and cols must not be negative")

// Style maps canonical property names to string values. A nil map means
// "no override at this layer"; sanitization collapses empty maps to nil so
// absence and emptiness are never distinguishable.
type Style map[string]string

// Clone returns an independent copy, nil in, nil out.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// CellRef addresses a single cell by 0-based coordinates. It keys the
// sparse cell-style map; using a struct key avoids string parsing on every
// lookup.
type CellRef struct {
	Row int
	Col int
}

// SelectionKind discriminates the Selection variant.
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionCell
	SelectionRow
	SelectionColumn
)

// Selection is the widget's transient focus: a cell, a whole row, a whole
// column, or nothing. It is not part of the persistent model; the codec
// writes a derived address on export and restores it best-effort on import.
type Selection struct {
	Kind SelectionKind
	Row  int
	Col  int
}

// Model is the single source of truth for the grid. It is not safe for
// concurrent mutation; the design assumes a single writer, consistent with
// a UI event loop.
type Model struct {
	rows int
	cols int
	data [][]string

	defaultStyle Style
	columnStyles []Style
	rowStyles    []Style
	cellStyles   map[CellRef]Style

	merges    []MergeRange
	selection Selection
}

// New creates a rows×cols model of empty strings with no styles and no
// merges. Negative dimensions fail with ErrInvalidDimension.
func New(rows, cols int) (*Model, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, rows, cols)
	}
	m := &Model{
		rows:         rows,
		cols:         cols,
		data:         make([][]string, rows),
		columnStyles: make([]Style, cols),
		rowStyles:    make([]Style, rows),
		cellStyles:   make(map[CellRef]Style),
	}
	for r := range m.data {
		m.data[r] = make([]string, cols)
	}
	return m, nil
}

// MustNew is New for known-good dimensions.
func MustNew(rows, cols int) *Model {
	m, err := New(rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) Rows() int { return m.rows }
func (m *Model) Cols() int { return m.cols }

// Value returns the text at (row, col), empty string when out of range.
func (m *Model) Value(row, col int) string {
	if !m.inBounds(row, col) {
		return ""
	}
	return m.data[row][col]
}

// SetValue writes the text at (row, col). Out-of-range writes are ignored.
func (m *Model) SetValue(row, col int, value string) {
	if !m.inBounds(row, col) {
		return
	}
	m.data[row][col] = value
}

// InsertRow appends one empty row at the bottom. Cell styles and merges
// are unaffected because existing coordinates do not move.
func (m *Model) InsertRow() {
	m.data = append(m.data, make([]string, m.cols))
	m.rowStyles = append(m.rowStyles, nil)
	m.rows++
}

// InsertColumn appends one empty column to every row.
func (m *Model) InsertColumn() {
	for r := range m.data {
		m.data[r] = append(m.data[r], "")
	}
	m.columnStyles = append(m.columnStyles, nil)
	m.cols++
}

// RemoveRow deletes the row at index and shifts everything below it up by
// one: row styles, cell styles and merges. Merges cut by the removed row
// are dropped entirely rather than shrunk. A no-op when the grid has only
// one row or the index is out of range; the grid never goes below 1×N.
func (m *Model) RemoveRow(index int) {
	if m.rows <= 1 || index < 0 || index >= m.rows {
		return
	}
	m.data = append(m.data[:index], m.data[index+1:]...)
	m.rowStyles = append(m.rowStyles[:index], m.rowStyles[index+1:]...)
	m.rows--

	rekeyed := make(map[CellRef]Style, len(m.cellStyles))
	for ref, st := range m.cellStyles {
		switch {
		case ref.Row == index:
			// dropped with the row
		case ref.Row > index:
			rekeyed[CellRef{Row: ref.Row - 1, Col: ref.Col}] = st
		default:
			rekeyed[ref] = st
		}
	}
	m.cellStyles = rekeyed
	m.merges = ReindexAfterRemoveRow(m.merges, index)
}

// RemoveColumn is RemoveRow over columns.
func (m *Model) RemoveColumn(index int) {
	if m.cols <= 1 || index < 0 || index >= m.cols {
		return
	}
	for r := range m.data {
		m.data[r] = append(m.data[r][:index], m.data[r][index+1:]...)
	}
	m.columnStyles = append(m.columnStyles[:index], m.columnStyles[index+1:]...)
	m.cols--

	rekeyed := make(map[CellRef]Style, len(m.cellStyles))
	for ref, st := range m.cellStyles {
		switch {
		case ref.Col == index:
		case ref.Col > index:
			rekeyed[CellRef{Row: ref.Row, Col: ref.Col - 1}] = st
		default:
			rekeyed[ref] = st
		}
	}
	m.cellStyles = rekeyed
	m.merges = ReindexAfterRemoveColumn(m.merges, index)
}

// SetCellStyle stores the sanitized style for one cell; nil or an
// empty-after-sanitize style clears the layer. Out-of-range is ignored.
func (m *Model) SetCellStyle(row, col int, style Style) {
	if !m.inBounds(row, col) {
		return
	}
	ref := CellRef{Row: row, Col: col}
	if st := SanitizeStyle(style); st != nil {
		m.cellStyles[ref] = st
	} else {
		delete(m.cellStyles, ref)
	}
}

// CellStyle returns the per-cell layer, nil if absent or out of range.
func (m *Model) CellStyle(row, col int) Style {
	return m.cellStyles[CellRef{Row: row, Col: col}].Clone()
}

// SetRowStyle stores the sanitized style for a whole row and folds it into
// the per-cell layer of every cell in that row, the new row keys
// overriding stale per-cell values. Clearing the row layer does not undo
// an earlier propagation.
func (m *Model) SetRowStyle(row int, style Style) {
	if row < 0 || row >= m.rows {
		return
	}
	st := SanitizeStyle(style)
	m.rowStyles[row] = st
	if st == nil {
		return
	}
	for c := 0; c < m.cols; c++ {
		ref := CellRef{Row: row, Col: c}
		merged := m.cellStyles[ref].Clone()
		if merged == nil {
			merged = make(Style, len(st))
		}
		for k, v := range st {
			merged[k] = v
		}
		m.cellStyles[ref] = merged
	}
}

// RowStyle returns the per-row layer, nil if absent or out of range.
func (m *Model) RowStyle(row int) Style {
	if row < 0 || row >= m.rows {
		return nil
	}
	return m.rowStyles[row].Clone()
}

// SetColumnStyle stores the sanitized style for a whole column.
func (m *Model) SetColumnStyle(col int, style Style) {
	if col < 0 || col >= m.cols {
		return
	}
	m.columnStyles[col] = SanitizeStyle(style)
}

// ColumnStyle returns the per-column layer, nil if absent or out of range.
func (m *Model) ColumnStyle(col int) Style {
	if col < 0 || col >= m.cols {
		return nil
	}
	return m.columnStyles[col].Clone()
}

// SetDefaultStyle stores the grid-wide default layer.
func (m *Model) SetDefaultStyle(style Style) {
	m.defaultStyle = SanitizeStyle(style)
}

// DefaultStyle returns the grid-wide default layer, nil if absent.
func (m *Model) DefaultStyle() Style {
	return m.defaultStyle.Clone()
}

// SetMerges replaces the merge list after normalizing it against the
// current dimensions.
func (m *Model) SetMerges(ranges []MergeRange) {
	m.merges = NormalizeRanges(ranges, m.rows, m.cols)
}

// Merges returns a copy of the merge list.
func (m *Model) Merges() []MergeRange {
	out := make([]MergeRange, len(m.merges))
	copy(out, m.merges)
	return out
}

func (m *Model) SetSelection(sel Selection) { m.selection = sel }
func (m *Model) Selection() Selection       { return m.selection }

func (m *Model) inBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// Snapshot is an immutable dense view of a Model, the unit the codecs and
// file writers consume.
type Snapshot struct {
	Rows int
	Cols int
	Data [][]string

	DefaultStyle Style
	ColumnStyles []Style
	RowStyles    []Style
	CellStyles   map[CellRef]Style

	Merges    []MergeRange
	Selection Selection
}

// Snapshot deep-copies the model state.
func (m *Model) Snapshot() Snapshot {
	snap := Snapshot{
		Rows:         m.rows,
		Cols:         m.cols,
		Data:         make([][]string, m.rows),
		DefaultStyle: m.defaultStyle.Clone(),
		ColumnStyles: make([]Style, m.cols),
		RowStyles:    make([]Style, m.rows),
		CellStyles:   make(map[CellRef]Style, len(m.cellStyles)),
		Merges:       m.Merges(),
		Selection:    m.selection,
	}
	for r := range m.data {
		snap.Data[r] = append([]string(nil), m.data[r]...)
	}
	for c, st := range m.columnStyles {
		snap.ColumnStyles[c] = st.Clone()
	}
	for r, st := range m.rowStyles {
		snap.RowStyles[r] = st.Clone()
	}
	for ref, st := range m.cellStyles {
		snap.CellStyles[ref] = st.Clone()
	}
	return snap
}

// Candidate is a loosely-typed model description, typically decoded from
// host configuration. Normalize repairs it into a dense Model.
type Candidate struct {
	Rows         int
	Cols         int
	Data         [][]interface{}
	DefaultStyle Style
	ColumnStyles []Style
	RowStyles    []Style
	CellStyles   map[CellRef]Style
	Merges       []MergeRange
}

// Normalize produces a fully dense, bounds-consistent Model from a
// candidate: dimensions come from explicit Rows/Cols, else from the data
// shape, else the 2×2 default; style arrays are resized with missing
// entries nil; cell styles referencing out-of-range coordinates are
// dropped silently.
func Normalize(c Candidate) *Model {
	rows, cols := c.Rows, c.Cols
	if rows <= 0 {
		rows = len(c.Data)
	}
	if cols <= 0 {
		for _, row := range c.Data {
			if len(row) > cols {
				cols = len(row)
			}
		}
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}

	m := MustNew(rows, cols)
	for r := 0; r < rows && r < len(c.Data); r++ {
		for col := 0; col < cols && col < len(c.Data[r]); col++ {
			m.data[r][col] = Stringify(c.Data[r][col])
		}
	}

	m.defaultStyle = SanitizeStyle(c.DefaultStyle)
	for col := 0; col < cols && col < len(c.ColumnStyles); col++ {
		m.columnStyles[col] = SanitizeStyle(c.ColumnStyles[col])
	}
	for r := 0; r < rows && r < len(c.RowStyles); r++ {
		m.rowStyles[r] = SanitizeStyle(c.RowStyles[r])
	}
	for ref, st := range c.CellStyles {
		if !m.inBounds(ref.Row, ref.Col) {
			continue
		}
		if sanitized := SanitizeStyle(st); sanitized != nil {
			m.cellStyles[ref] = sanitized
		}
	}
	m.merges = NormalizeRanges(c.Merges, rows, cols)
	return m
}

// SanitizeStyle trims keys, drops empties and caps the property count.
// The result is a fresh map, or nil when nothing survives.
func SanitizeStyle(style Style) Style {
	if len(style) == 0 {
		return nil
	}
	out := make(Style, len(style))
	for k, v := range style {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[k] = v
		if len(out) >= maxStyleProps {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Stringify coerces an arbitrary ingested value to cell text. Nil becomes
// the empty string.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
