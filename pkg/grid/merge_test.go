package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRanges(t *testing.T) {
	t.Run("orders corners", func(t *testing.T) {
		out := NormalizeRanges([]MergeRange{
			{Start: CellRef{2, 3}, End: CellRef{0, 1}},
		}, 5, 5)
		require.Len(t, out, 1)
		assert.Equal(t, CellRef{0, 1}, out[0].Start)
		assert.Equal(t, CellRef{2, 3}, out[0].End)
	})

	t.Run("clamps into bounds", func(t *testing.T) {
		out := NormalizeRanges([]MergeRange{
			{Start: CellRef{0, 0}, End: CellRef{99, 99}},
		}, 3, 2)
		require.Len(t, out, 1)
		assert.Equal(t, CellRef{2, 1}, out[0].End)
	})

	t.Run("drops degenerate", func(t *testing.T) {
		out := NormalizeRanges([]MergeRange{
			{Start: CellRef{1, 1}, End: CellRef{1, 1}},
			// clamps down to 1x1, also dropped
			{Start: CellRef{2, 1}, End: CellRef{9, 1}},
		}, 3, 3)
		assert.Empty(t, out)
	})

	t.Run("empty grid", func(t *testing.T) {
		out := NormalizeRanges([]MergeRange{{Start: CellRef{0, 0}, End: CellRef{1, 1}}}, 0, 0)
		assert.Empty(t, out)
	})
}

func TestParseRanges(t *testing.T) {
	out := ParseRanges([]string{"A1:B1", "garbage", "C3"}, 2, 2)
	// "garbage" is skipped, "C3" is degenerate and clamped away
	require.Len(t, out, 1)
	assert.Equal(t, CellRef{0, 0}, out[0].Start)
	assert.Equal(t, CellRef{0, 1}, out[0].End)
	assert.Equal(t, 1, out[0].RowSpan())
	assert.Equal(t, 2, out[0].ColSpan())
}

func TestBuildCoverage(t *testing.T) {
	cov := BuildCoverage([]MergeRange{
		{Start: CellRef{0, 0}, End: CellRef{0, 1}},
	})
	assert.Equal(t, Span{Rows: 1, Cols: 2}, cov.Anchors[CellRef{0, 0}])
	assert.True(t, cov.Covered[CellRef{0, 1}])
	assert.False(t, cov.Covered[CellRef{0, 0}], "anchor is not covered")
}

func TestBuildCoverageOverlapLastWins(t *testing.T) {
	cov := BuildCoverage([]MergeRange{
		{Start: CellRef{0, 0}, End: CellRef{1, 1}},
		{Start: CellRef{0, 0}, End: CellRef{0, 2}},
	})
	// the later range owns the shared anchor
	assert.Equal(t, Span{Rows: 1, Cols: 3}, cov.Anchors[CellRef{0, 0}])
	assert.True(t, cov.Covered[CellRef{0, 2}])
	assert.True(t, cov.Covered[CellRef{1, 0}])
}

func TestReindexAfterRemoveRow(t *testing.T) {
	ranges := []MergeRange{
		{Start: CellRef{0, 0}, End: CellRef{0, 1}}, // above: untouched
		{Start: CellRef{1, 0}, End: CellRef{3, 0}}, // spans the removed row: dropped
		{Start: CellRef{4, 0}, End: CellRef{5, 1}}, // below: shifts up
	}
	out := ReindexAfterRemoveRow(ranges, 2)
	require.Len(t, out, 2)
	assert.Equal(t, MergeRange{Start: CellRef{0, 0}, End: CellRef{0, 1}}, out[0])
	assert.Equal(t, MergeRange{Start: CellRef{3, 0}, End: CellRef{4, 1}}, out[1])
}

func TestReindexAfterRemoveRowDropsEdge(t *testing.T) {
	// a merge whose first or last row is removed is destroyed, not shrunk
	ranges := []MergeRange{{Start: CellRef{1, 0}, End: CellRef{2, 1}}}
	assert.Empty(t, ReindexAfterRemoveRow(ranges, 1))
	assert.Empty(t, ReindexAfterRemoveRow(ranges, 2))
}

func TestReindexAfterRemoveColumn(t *testing.T) {
	ranges := []MergeRange{
		{Start: CellRef{0, 2}, End: CellRef{1, 3}},
	}
	out := ReindexAfterRemoveColumn(ranges, 0)
	require.Len(t, out, 1)
	assert.Equal(t, MergeRange{Start: CellRef{0, 1}, End: CellRef{1, 2}}, out[0])

	assert.Empty(t, ReindexAfterRemoveColumn(ranges, 3))
}

func TestMergeRangeLabel(t *testing.T) {
	r := MergeRange{Start: CellRef{0, 0}, End: CellRef{0, 1}}
	assert.Equal(t, "A1:B1", r.Label())
}
