// Package sheetjson converts between the dense grid model and the sparse,
// spreadsheet-shaped interchange JSON produced and consumed by third
// parties. The wire layout is
//
//	{ activeSheet, sheets: [{ name, columns, rows, defaultCellStyle,
//	  mergedCells, activeCell, selection }], rowHeight, columnWidth }
//
// with rows and cells keyed by sparse indices. Malformed pieces of a
// payload are repaired or ignored; only a payload with no sheets at all is
// an error.
package sheetjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Envelope defaults written on export. They match the widget's default
// column width and row height in pixels.
const (
	DefaultSheetName   = "Sheet1"
	DefaultColumnWidth = 64.0
	DefaultRowHeight   = 20.0
)

// ErrEmptySpreadsheet is returned by Import when the document carries no
// sheets. No dimensions can be inferred from nothing, so the caller must
// supply its own default model.
var ErrEmptySpreadsheet = errors.New("sheetjson: document has no sheets")

// Document is the interchange envelope.
type Document struct {
	ActiveSheet string  `json:"activeSheet,omitempty"`
	Sheets      []Sheet `json:"sheets"`
	RowHeight   float64 `json:"rowHeight,omitempty"`
	ColumnWidth float64 `json:"columnWidth,omitempty"`
}

// Sheet is one sparse worksheet.
type Sheet struct {
	Name             string                 `json:"name,omitempty"`
	Columns          []Column               `json:"columns,omitempty"`
	Rows             []Row                  `json:"rows,omitempty"`
	DefaultCellStyle map[string]interface{} `json:"defaultCellStyle,omitempty"`
	MergedCells      []string               `json:"mergedCells,omitempty"`
	ActiveCell       string                 `json:"activeCell,omitempty"`
	Selection        string                 `json:"selection,omitempty"`
}

// Column is a per-column descriptor; a zero Width means "use the envelope
// default".
type Column struct {
	Width float64 `json:"width,omitempty"`
}

// Row is a sparse row descriptor.
type Row struct {
	Index  int     `json:"index"`
	Height float64 `json:"height,omitempty"`
	Cells  []Cell  `json:"cells,omitempty"`
}

// Cell is a sparse cell descriptor. On export only Index, Value and Style
// are written. On import legacy payloads may carry the text under "text",
// "displayText" or "v", and style properties either nested under "style"
// or inline on the cell record itself; inline keys win on conflict.
type Cell struct {
	Index int
	Value interface{}
	Style map[string]interface{}

	// import-only legacy fields
	Text        interface{}
	DisplayText interface{}
	V           interface{}
	Inline      map[string]interface{}
}

// MarshalJSON writes the modern sparse shape: index, a non-empty value,
// and a nested style record.
func (c Cell) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{"index": c.Index}
	if s, ok := c.Value.(string); ok {
		if s != "" {
			out["value"] = s
		}
	} else if c.Value != nil {
		out["value"] = c.Value
	}
	if len(c.Style) > 0 {
		out["style"] = c.Style
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts both the modern shape and legacy variants, routing
// unknown keys into the inline style record.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		switch key {
		case "index":
			if f, ok := val.(float64); ok {
				c.Index = int(f)
			}
		case "value":
			c.Value = val
		case "text":
			c.Text = val
		case "displayText":
			c.DisplayText = val
		case "v":
			c.V = val
		case "style":
			if m, ok := val.(map[string]interface{}); ok {
				c.Style = m
			}
		default:
			if c.Inline == nil {
				c.Inline = make(map[string]interface{})
			}
			c.Inline[key] = val
		}
	}
	return nil
}

// TextValue returns the cell's text under the documented priority:
// value, text, displayText, v; empty string when none is present.
func (c Cell) TextValue() interface{} {
	for _, v := range []interface{}{c.Value, c.Text, c.DisplayText, c.V} {
		if v != nil {
			return v
		}
	}
	return nil
}

// Parse decodes an interchange payload.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sheetjson: decode document: %w", err)
	}
	return &doc, nil
}

// Encode serializes the document back to JSON.
func (d *Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

func roundPx(px float64) float64 {
	return math.Round(px)
}
