package grid

// MergeStyles flattens style layers in argument order, later layers
// overriding earlier ones per property. Nil layers are skipped; an empty
// result is nil.
func MergeStyles(layers ...Style) Style {
	var out Style
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		if out == nil {
			out = make(Style, len(layer))
		}
		for k, v := range layer {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// EffectiveStyle resolves the full cascade for one cell:
// default, then column, then row, then cell. Out-of-range coordinates resolve to
// whatever the default layer provides.
func (m *Model) EffectiveStyle(row, col int) Style {
	var colStyle, rowStyle, cellStyle Style
	if col >= 0 && col < m.cols {
		colStyle = m.columnStyles[col]
	}
	if row >= 0 && row < m.rows {
		rowStyle = m.rowStyles[row]
	}
	if m.inBounds(row, col) {
		cellStyle = m.cellStyles[CellRef{Row: row, Col: col}]
	}
	return MergeStyles(m.defaultStyle, colStyle, rowStyle, cellStyle)
}

// EffectiveStyle resolves the cascade over a snapshot, same order as the
// Model method.
func (s Snapshot) EffectiveStyle(row, col int) Style {
	var colStyle, rowStyle, cellStyle Style
	if col >= 0 && col < s.Cols {
		colStyle = s.ColumnStyles[col]
	}
	if row >= 0 && row < s.Rows {
		rowStyle = s.RowStyles[row]
	}
	if row >= 0 && row < s.Rows && col >= 0 && col < s.Cols {
		cellStyle = s.CellStyles[CellRef{Row: row, Col: col}]
	}
	return MergeStyles(s.DefaultStyle, colStyle, rowStyle, cellStyle)
}

// OverriddenStyle resolves column, then row, then cell (no default layer) and
// keeps only the properties whose value differs from the default layer.
// This is what the export boundary writes: values equal to the grid
// default are intentionally dropped and indistinguishable from "never
// set" on the next import.
func (s Snapshot) OverriddenStyle(row, col int) Style {
	var colStyle, rowStyle, cellStyle Style
	if col >= 0 && col < s.Cols {
		colStyle = s.ColumnStyles[col]
	}
	if row >= 0 && row < s.Rows {
		rowStyle = s.RowStyles[row]
	}
	if row >= 0 && row < s.Rows && col >= 0 && col < s.Cols {
		cellStyle = s.CellStyles[CellRef{Row: row, Col: col}]
	}
	layered := MergeStyles(colStyle, rowStyle, cellStyle)
	if layered == nil {
		return nil
	}
	out := make(Style, len(layered))
	for k, v := range layered {
		if def, ok := s.DefaultStyle[k]; ok && def == v {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
