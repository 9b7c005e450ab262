package ann_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/parity/ann"
	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/vector"
)

func TestFindKNearestBasic(t *testing.T) {
	tbl, err := overlay.NewTable(4, vector.Dim, 42)
	require.NoError(t, err)

	results, truncated := ann.FindKNearest(tbl, 0, 2)
	require.Len(t, results, 2)
	assert.False(t, truncated)
	for _, r := range results {
		assert.NotEqual(t, 0, r.ID)
		assert.Contains(t, []int{1, 2, 3}, r.ID)
	}
	assert.GreaterOrEqual(t, results[0].CombinedScore, results[1].CombinedScore)
}

func TestFindKNearestExcludesQuery(t *testing.T) {
	tbl, err := overlay.NewTable(3, vector.Dim, 1)
	require.NoError(t, err)
	results, _ := ann.FindKNearest(tbl, 1, 5)
	for _, r := range results {
		assert.NotEqual(t, 1, r.ID)
	}
}

func TestFindKNearestTruncatedWhenKExceedsN(t *testing.T) {
	tbl, err := overlay.NewTable(3, vector.Dim, 1)
	require.NoError(t, err)
	results, truncated := ann.FindKNearest(tbl, 0, 10)
	assert.Len(t, results, 2)
	assert.True(t, truncated)
}

func TestFindKNearestKZeroOrNegativeEmpty(t *testing.T) {
	tbl, err := overlay.NewTable(3, vector.Dim, 1)
	require.NoError(t, err)
	results, truncated := ann.FindKNearest(tbl, 0, 0)
	assert.Empty(t, results)
	assert.False(t, truncated)

	results, truncated = ann.FindKNearest(tbl, 0, -3)
	assert.Empty(t, results)
	assert.False(t, truncated)
}

func TestFindKNearestUnknownQueryEmpty(t *testing.T) {
	tbl, err := overlay.NewTable(3, vector.Dim, 1)
	require.NoError(t, err)
	results, truncated := ann.FindKNearest(tbl, 99, 2)
	assert.Empty(t, results)
	assert.False(t, truncated)
}

func TestFindKNearestSingleNodeNetwork(t *testing.T) {
	tbl, err := overlay.NewTable(1, vector.Dim, 1)
	require.NoError(t, err)
	results, truncated := ann.FindKNearest(tbl, 0, 2)
	assert.Empty(t, results)
	assert.True(t, truncated)
}

func TestFindKNearestHighSimilarityAfterInject(t *testing.T) {
	tbl, err := overlay.NewTable(2, vector.Dim, 1)
	require.NoError(t, err)

	target := make([]float64, vector.Dim)
	target[0] = 1
	require.NoError(t, tbl.InjectVector(1, target))
	require.NoError(t, tbl.InjectVector(0, target))

	results, _ := ann.FindKNearest(tbl, 0, 1)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
}

func TestFindKNearestTieBreakByLowerID(t *testing.T) {
	tbl, err := overlay.NewTable(3, vector.Dim, 1)
	require.NoError(t, err)
	zero := make([]float64, vector.Dim)
	require.NoError(t, tbl.InjectVector(0, zero))
	require.NoError(t, tbl.InjectVector(1, zero))
	require.NoError(t, tbl.InjectVector(2, zero))
	require.NoError(t, tbl.SetDensity(1, 0.5))
	require.NoError(t, tbl.SetDensity(2, 0.5))

	results, _ := ann.FindKNearest(tbl, 0, 2)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].ID)
	assert.Equal(t, 2, results[1].ID)
}
