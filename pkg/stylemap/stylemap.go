// Package stylemap normalizes style property names between the engine's
// canonical vocabulary (CSS-flavored keys such as textAlign, fontWeight,
// whiteSpace) and the spreadsheet interchange vocabulary (hAlign, bold,
// wrap, fillColor and friends).
package stylemap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Canonical style property names.
const (
	KeyTextAlign      = "textAlign"
	KeyVerticalAlign  = "verticalAlign"
	KeyWhiteSpace     = "whiteSpace"
	KeyFontFamily     = "fontFamily"
	KeyFontSize       = "fontSize"
	KeyColor          = "color"
	KeyBackground     = "background"
	KeyFontWeight     = "fontWeight"
	KeyFontStyle      = "fontStyle"
	KeyTextDecoration = "textDecoration"
	KeyWidth          = "width"
	KeyHeight         = "height"
)

// importAliases lists, per canonical key, the interchange spellings that
// feed it. Order matters: when a record carries several aliases of the
// same concept, the first present one wins.
var importAliases = map[string][]string{
	KeyTextAlign:     {"textAlign", "hAlign"},
	KeyVerticalAlign: {"verticalAlign", "vAlign"},
	KeyFontFamily:    {"fontFamily"},
	KeyColor:         {"color", "fontColor", "foreColor"},
	KeyBackground:    {"background", "bgColor", "backColor", "backgroundColor", "fillColor"},
}

var wrapAliases = []string{"wrap", "wordWrap", "wrapText"}

// ToInterchange maps a canonical style record to the interchange
// vocabulary. Width and height are layout properties carried on column and
// row descriptors, not on style records, so they are skipped here.
func ToInterchange(style map[string]string) map[string]interface{} {
	out := make(map[string]interface{})
	for key, val := range style {
		switch key {
		case KeyTextAlign, KeyFontFamily, KeyColor, KeyBackground:
			out[key] = val
		case KeyVerticalAlign:
			if val == "middle" {
				out[key] = "center"
			} else {
				out[key] = val
			}
		case KeyWhiteSpace:
			switch val {
			case "normal":
				out["wrap"] = true
			case "nowrap":
				out["wrap"] = false
			}
		case KeyFontWeight:
			if isBoldWeight(val) {
				out["bold"] = true
			}
		case KeyFontStyle:
			if val == "italic" {
				out["italic"] = true
			}
		case KeyTextDecoration:
			if strings.Contains(val, "underline") {
				out["underline"] = true
			}
			if strings.Contains(val, "line-through") {
				out["strike"] = true
			}
		case KeyFontSize:
			if px, ok := PixelValue(val); ok {
				out[key] = px
			}
		case KeyWidth, KeyHeight:
			// carried by column/row descriptors
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FromInterchange maps an interchange style record (which may use any of
// the documented aliases) back to the canonical vocabulary.
func FromInterchange(rec map[string]interface{}) map[string]string {
	if rec == nil {
		return nil
	}
	out := make(map[string]string)

	for canonical, aliases := range importAliases {
		for _, alias := range aliases {
			if raw, ok := rec[alias]; ok {
				val := stringify(raw)
				if canonical == KeyVerticalAlign && val == "center" {
					val = "middle"
				}
				if val != "" {
					out[canonical] = val
				}
				break
			}
		}
	}

	for _, alias := range wrapAliases {
		if raw, ok := rec[alias]; ok {
			if truthy(raw) {
				out[KeyWhiteSpace] = "normal"
			} else {
				out[KeyWhiteSpace] = "nowrap"
			}
			break
		}
	}

	if raw, ok := rec["fontSize"]; ok {
		if px, pok := PixelValue(raw); pok {
			out[KeyFontSize] = fmt.Sprintf("%dpx", int(math.Round(px)))
		}
	}
	if raw, ok := rec["bold"]; ok && truthy(raw) {
		out[KeyFontWeight] = "bold"
	}
	if raw, ok := rec["italic"]; ok && truthy(raw) {
		out[KeyFontStyle] = "italic"
	}
	deco := ""
	if raw, ok := rec["underline"]; ok && truthy(raw) {
		deco = "underline"
	}
	if raw, ok := rec["strike"]; ok && truthy(raw) {
		if deco != "" {
			deco += " "
		}
		deco += "line-through"
	}
	if deco != "" {
		out[KeyTextDecoration] = deco
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// PixelValue extracts a pixel measurement from "12px", "12", 12 or 12.0.
// The boolean is false when no number can be recovered.
func PixelValue(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "px"))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// isBoldWeight reports whether a fontWeight value maps to bold: the
// literal "bold" or a numeric weight of 600 and up.
func isBoldWeight(val string) bool {
	if val == "bold" {
		return true
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
		return n >= 600
	}
	return false
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return false
	}
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
