package overlay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/vector"
)

func newTable(t *testing.T, n int) *overlay.Table {
	t.Helper()
	tbl, err := overlay.NewTable(n, vector.Dim, 42)
	require.NoError(t, err)
	return tbl
}

func TestNewTableInitializesDeterministically(t *testing.T) {
	a, err := overlay.NewTable(5, vector.Dim, 7)
	require.NoError(t, err)
	b, err := overlay.NewTable(5, vector.Dim, 7)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		na, _ := a.NodeAt(i)
		nb, _ := b.NodeAt(i)
		assert.Equal(t, na.Vector, nb.Vector)
		assert.Equal(t, na.Density, nb.Density)
		assert.Equal(t, na.Coherence, nb.Coherence)
	}
}

func TestNewTableRejectsBadArgs(t *testing.T) {
	_, err := overlay.NewTable(0, vector.Dim, 1)
	assert.Error(t, err)
	_, err = overlay.NewTable(3, 0, 1)
	assert.Error(t, err)
}

func TestConnectNeighborsRing(t *testing.T) {
	tbl := newTable(t, 4)
	require.NoError(t, tbl.ConnectNeighbors(0, 2))
	neighbors, err := tbl.Neighbors(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, neighbors)
}

func TestConnectNeighborsWraps(t *testing.T) {
	tbl := newTable(t, 4)
	require.NoError(t, tbl.ConnectNeighbors(3, 2))
	neighbors, err := tbl.Neighbors(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, neighbors)
}

func TestConnectNeighborsUnknownNode(t *testing.T) {
	tbl := newTable(t, 4)
	assert.ErrorIs(t, tbl.ConnectNeighbors(9, 1), overlay.ErrNodeNotFound)
}

func TestConnectNeighborsFanoutTooLarge(t *testing.T) {
	tbl := newTable(t, 2)
	assert.ErrorIs(t, tbl.ConnectNeighbors(0, 99), overlay.ErrFanoutTooLarge)
}

func TestAssignParityTagIdempotent(t *testing.T) {
	tbl := newTable(t, 3)
	require.NoError(t, tbl.AssignParityTag(0, "tag-a"))
	require.NoError(t, tbl.AssignParityTag(0, "tag-a"))
	n, err := tbl.NodeAt(0)
	require.NoError(t, err)
	assert.Equal(t, 1, n.ParityCount)
}

func TestAssignParityTagCapacityExceeded(t *testing.T) {
	tbl := newTable(t, 1)
	for i := 0; i < overlay.MaxParityTags; i++ {
		require.NoError(t, tbl.AssignParityTag(0, string(rune('a'+i))))
	}
	err := tbl.AssignParityTag(0, "overflow")
	assert.ErrorIs(t, err, overlay.ErrCapacityExceeded)
}

func TestRevokeParityTag(t *testing.T) {
	tbl := newTable(t, 1)
	require.NoError(t, tbl.AssignParityTag(0, "x"))
	require.NoError(t, tbl.RevokeParityTag(0, "x"))
	n, err := tbl.NodeAt(0)
	require.NoError(t, err)
	assert.Equal(t, 0, n.ParityCount)
}

func TestHolders(t *testing.T) {
	tbl := newTable(t, 3)
	require.NoError(t, tbl.AssignParityTag(0, "tag"))
	require.NoError(t, tbl.AssignParityTag(2, "tag"))
	assert.Equal(t, []int{0, 2}, tbl.Holders("tag"))
}

func TestAcceptAnnouncementMonotonic(t *testing.T) {
	tbl := newTable(t, 2)
	ok, err := tbl.AcceptAnnouncement(0, overlay.Announcement{NodeID: 1, Timestamp: 10})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tbl.AcceptAnnouncement(0, overlay.Announcement{NodeID: 1, Timestamp: 5})
	require.NoError(t, err)
	assert.False(t, ok, "stale announcement must be rejected")

	ok, err = tbl.AcceptAnnouncement(0, overlay.Announcement{NodeID: 1, Timestamp: 11})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInjectVectorDoesNotNormalize(t *testing.T) {
	tbl := newTable(t, 1)
	v := make([]float64, vector.Dim)
	v[0] = 7
	require.NoError(t, tbl.InjectVector(0, v))
	n, err := tbl.NodeAt(0)
	require.NoError(t, err)
	assert.Equal(t, 7.0, n.Vector[0])
}

func TestInjectVectorDimensionMismatch(t *testing.T) {
	tbl := newTable(t, 1)
	assert.ErrorIs(t, tbl.InjectVector(0, []float64{1, 2}), overlay.ErrDimensionMismatch)
}

func TestEvolveVectorNormalizes(t *testing.T) {
	tbl := newTable(t, 1)
	target := make([]float64, vector.Dim)
	target[0] = 1
	require.NoError(t, tbl.EvolveVector(0, target, 0.5))
	n, err := tbl.NodeAt(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, vector.Norm(n.Vector), 1e-6)
}

func TestSnapshotIndependentOfLiveState(t *testing.T) {
	tbl := newTable(t, 1)
	snap := tbl.Snapshot()
	require.NoError(t, tbl.AssignParityTag(0, "late"))
	assert.Equal(t, 0, snap[0].ParityCount)
}

func TestShutdownClearsNodes(t *testing.T) {
	tbl := newTable(t, 2)
	tbl.Shutdown()
	assert.Equal(t, 0, tbl.Size())
}
