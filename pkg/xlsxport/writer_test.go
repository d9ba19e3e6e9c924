package xlsxport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sheetkit/gridengine/pkg/grid"
)

func buildSnapshot(t *testing.T) grid.Snapshot {
	t.Helper()
	m := grid.MustNew(3, 3)
	m.SetValue(0, 0, "Name")
	m.SetValue(1, 1, "middle")
	m.SetCellStyle(0, 0, grid.Style{"fontWeight": "bold", "textAlign": "center"})
	m.SetColumnStyle(1, grid.Style{"width": "160px"})
	m.SetMerges([]grid.MergeRange{{Start: grid.CellRef{Row: 2, Col: 0}, End: grid.CellRef{Row: 2, Col: 2}}})
	return m.Snapshot()
}

func TestWriterWrite(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Options{SheetName: "Data"})
	require.NoError(t, w.Write(buildSnapshot(t), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	val, err := f.GetCellValue("Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", val)

	val, err = f.GetCellValue("Data", "B2")
	require.NoError(t, err)
	assert.Equal(t, "middle", val)

	styleID, err := f.GetCellStyle("Data", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	require.NotNil(t, style.Alignment)
	assert.Equal(t, "center", style.Alignment.Horizontal)

	width, err := f.GetColWidth("Data", "B")
	require.NoError(t, err)
	assert.InDelta(t, 160.0/pxPerWidthUnit, width, 0.01)

	merges, err := f.GetMergeCells("Data")
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A3", merges[0].GetStartAxis())
	assert.Equal(t, "C3", merges[0].GetEndAxis())
}

func TestWriterRowHeight(t *testing.T) {
	m := grid.MustNew(2, 2)
	m.SetValue(0, 0, "x")
	m.SetRowStyle(0, grid.Style{"height": "40px"})

	var buf bytes.Buffer
	require.NoError(t, NewWriter(Options{}).Write(m.Snapshot(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	h, err := f.GetRowHeight("Sheet1", 1)
	require.NoError(t, err)
	assert.InDelta(t, 40*pointsPerPx, h, 0.01)
}

func TestWriteCSV(t *testing.T) {
	m := grid.MustNew(2, 2)
	m.SetValue(0, 0, `quote "me"`)
	m.SetValue(0, 1, "a,b")
	m.SetValue(1, 0, "plain")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(m.Snapshot(), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xef\xbb\xbf"), "UTF-8 BOM prefix")
	assert.Contains(t, out, `"quote ""me""","a,b"`)
	assert.Contains(t, out, "plain,")
}

func TestToExcelStyleEmpty(t *testing.T) {
	assert.Nil(t, toExcelStyle(nil))
	assert.Nil(t, toExcelStyle(grid.Style{"width": "100px"}), "layout-only styles map to nothing")
}
