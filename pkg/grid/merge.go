package grid

import "github.com/sheetkit/gridengine/pkg/address"

// MergeRange is a rectangular merge region, both corners inclusive and
// normalized so Start ≤ End component-wise.
type MergeRange struct {
	Start CellRef
	End   CellRef
}

// RowSpan returns the number of rows the range covers.
func (r MergeRange) RowSpan() int { return r.End.Row - r.Start.Row + 1 }

// ColSpan returns the number of columns the range covers.
func (r MergeRange) ColSpan() int { return r.End.Col - r.Start.Col + 1 }

// Label renders the range in "A1:B2" notation.
func (r MergeRange) Label() string {
	return address.CellName(r.Start.Row, r.Start.Col) + ":" + address.CellName(r.End.Row, r.End.Col)
}

// Contains reports whether (row, col) lies inside the range.
func (r MergeRange) Contains(row, col int) bool {
	return row >= r.Start.Row && row <= r.End.Row && col >= r.Start.Col && col <= r.End.Col
}

// NormalizeRanges sanitizes a raw range list against a rows×cols grid:
// corners are ordered, clamped into bounds, and ranges that end up 1×1 are
// discarded; a single cell is not a merge.
func NormalizeRanges(ranges []MergeRange, rows, cols int) []MergeRange {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	var out []MergeRange
	for _, r := range ranges {
		norm := MergeRange{
			Start: CellRef{
				Row: clamp(min(r.Start.Row, r.End.Row), rows),
				Col: clamp(min(r.Start.Col, r.End.Col), cols),
			},
			End: CellRef{
				Row: clamp(max(r.Start.Row, r.End.Row), rows),
				Col: clamp(max(r.Start.Col, r.End.Col), cols),
			},
		}
		if norm.Start == norm.End {
			continue
		}
		out = append(out, norm)
	}
	return out
}

// ParseRanges parses "A1:B2"-style labels (or single addresses) and
// normalizes the result. Malformed labels are skipped, not errored: merge
// strings arrive from third-party interchange payloads.
func ParseRanges(labels []string, rows, cols int) []MergeRange {
	var raw []MergeRange
	for _, label := range labels {
		sr, sc, er, ec, ok := address.ParseRange(label)
		if !ok {
			continue
		}
		raw = append(raw, MergeRange{Start: CellRef{Row: sr, Col: sc}, End: CellRef{Row: er, Col: ec}})
	}
	return NormalizeRanges(raw, rows, cols)
}

// Span is the size of a merge region measured from its anchor.
type Span struct {
	Rows int
	Cols int
}

// Coverage indexes merge regions for rendering: Anchors maps each
// top-left cell to its span, Covered holds every cell hidden under a
// region without being its anchor.
type Coverage struct {
	Anchors map[CellRef]Span
	Covered map[CellRef]bool
}

// BuildCoverage computes the anchor and covered indexes. Ranges are
// processed in registration order and a later range wins coverage over an
// earlier overlapping one, including stealing its anchor.
func BuildCoverage(ranges []MergeRange) Coverage {
	cov := Coverage{
		Anchors: make(map[CellRef]Span),
		Covered: make(map[CellRef]bool),
	}
	for _, r := range ranges {
		for row := r.Start.Row; row <= r.End.Row; row++ {
			for col := r.Start.Col; col <= r.End.Col; col++ {
				ref := CellRef{Row: row, Col: col}
				delete(cov.Anchors, ref)
				cov.Covered[ref] = true
			}
		}
		anchor := CellRef{Row: r.Start.Row, Col: r.Start.Col}
		cov.Anchors[anchor] = Span{Rows: r.RowSpan(), Cols: r.ColSpan()}
		delete(cov.Covered, anchor)
	}
	return cov
}

// ReindexAfterRemoveRow re-targets merges after a row removal. A range the
// removed row passes through is destroyed rather than shrunk; ranges
// entirely below it shift up by one.
func ReindexAfterRemoveRow(ranges []MergeRange, removed int) []MergeRange {
	var out []MergeRange
	for _, r := range ranges {
		if removed >= r.Start.Row && removed <= r.End.Row {
			continue
		}
		if r.Start.Row > removed {
			r.Start.Row--
			r.End.Row--
		}
		out = append(out, r)
	}
	return out
}

// ReindexAfterRemoveColumn is ReindexAfterRemoveRow over columns.
func ReindexAfterRemoveColumn(ranges []MergeRange, removed int) []MergeRange {
	var out []MergeRange
	for _, r := range ranges {
		if removed >= r.Start.Col && removed <= r.End.Col {
			continue
		}
		if r.Start.Col > removed {
			r.Start.Col--
			r.End.Col--
		}
		out = append(out, r)
	}
	return out
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
