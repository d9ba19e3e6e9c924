package stylemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInterchange(t *testing.T) {
	got := ToInterchange(map[string]string{
		KeyTextAlign:      "center",
		KeyVerticalAlign:  "middle",
		KeyWhiteSpace:     "normal",
		KeyFontWeight:     "bold",
		KeyFontStyle:      "italic",
		KeyTextDecoration: "underline line-through",
		KeyFontSize:       "12px",
		KeyColor:          "#ff0000",
		KeyWidth:          "64px",
	})

	assert.Equal(t, "center", got["textAlign"])
	assert.Equal(t, "center", got["verticalAlign"], "middle maps to center")
	assert.Equal(t, true, got["wrap"])
	assert.Equal(t, true, got["bold"])
	assert.Equal(t, true, got["italic"])
	assert.Equal(t, true, got["underline"])
	assert.Equal(t, true, got["strike"])
	assert.Equal(t, 12.0, got["fontSize"])
	assert.Equal(t, "#ff0000", got["color"])
	// width/height live on column/row descriptors, never on style records
	assert.NotContains(t, got, "width")
}

func TestToInterchangeNumericWeight(t *testing.T) {
	assert.Equal(t, true, ToInterchange(map[string]string{KeyFontWeight: "600"})["bold"])
	assert.Equal(t, true, ToInterchange(map[string]string{KeyFontWeight: "700"})["bold"])
	// 400 is regular: no bold key, and never an explicit false
	assert.Nil(t, ToInterchange(map[string]string{KeyFontWeight: "400"}))
}

func TestToInterchangeNowrap(t *testing.T) {
	got := ToInterchange(map[string]string{KeyWhiteSpace: "nowrap"})
	assert.Equal(t, false, got["wrap"])
}

func TestToInterchangeEmpty(t *testing.T) {
	assert.Nil(t, ToInterchange(nil))
	assert.Nil(t, ToInterchange(map[string]string{}))
}

func TestFromInterchange(t *testing.T) {
	got := FromInterchange(map[string]interface{}{
		"hAlign":    "right",
		"vAlign":    "center",
		"wrap":      true,
		"bold":      true,
		"italic":    true,
		"underline": true,
		"strike":    true,
		"fontSize":  12.0,
		"fontColor": "#00ff00",
		"fillColor": "#0000ff",
	})

	assert.Equal(t, "right", got[KeyTextAlign])
	assert.Equal(t, "middle", got[KeyVerticalAlign])
	assert.Equal(t, "normal", got[KeyWhiteSpace])
	assert.Equal(t, "bold", got[KeyFontWeight])
	assert.Equal(t, "italic", got[KeyFontStyle])
	assert.Equal(t, "underline line-through", got[KeyTextDecoration])
	assert.Equal(t, "12px", got[KeyFontSize])
	assert.Equal(t, "#00ff00", got[KeyColor])
	assert.Equal(t, "#0000ff", got[KeyBackground])
}

func TestFromInterchangeAliasPrecedence(t *testing.T) {
	// When several aliases of the same concept are present, the first
	// listed alias wins.
	got := FromInterchange(map[string]interface{}{
		"color":     "#111111",
		"fontColor": "#222222",
	})
	assert.Equal(t, "#111111", got[KeyColor])

	got = FromInterchange(map[string]interface{}{
		"bgColor":         "#333333",
		"backgroundColor": "#444444",
	})
	assert.Equal(t, "#333333", got[KeyBackground])
}

func TestFromInterchangeWrapFalse(t *testing.T) {
	got := FromInterchange(map[string]interface{}{"wordWrap": false})
	assert.Equal(t, "nowrap", got[KeyWhiteSpace])
}

func TestRoundTrip(t *testing.T) {
	canonical := map[string]string{
		KeyTextAlign:     "center",
		KeyVerticalAlign: "middle",
		KeyFontWeight:    "bold",
		KeyFontSize:      "14px",
		KeyBackground:    "#abcdef",
	}
	assert.Equal(t, canonical, FromInterchange(ToInterchange(canonical)))
}

func TestPixelValue(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{"12px", 12, true},
		{"12", 12, true},
		{12.0, 12, true},
		{12, 12, true},
		{" 160px ", 160, true},
		{"", 0, false},
		{"px", 0, false},
		{"abc", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tc := range cases {
		got, ok := PixelValue(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %v", tc.in)
		}
	}
}
