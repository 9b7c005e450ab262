package gossip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luxfi/parity/gossip"
	"github.com/luxfi/parity/gossip/gossipmock"
	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/vector"
)

type fakeClock struct{ t int64 }

func (c *fakeClock) Now() int64 {
	c.t++
	return c.t
}

func TestAnnounceBroadcastsAndRecordsSelf(t *testing.T) {
	ctrl := gomock.NewController(t)
	tbl, err := overlay.NewTable(3, vector.Dim, 1)
	require.NoError(t, err)
	require.NoError(t, tbl.AssignParityTag(0, "tag-a"))

	transport := gossipmock.NewMockTransport(ctrl)
	transport.EXPECT().Broadcast(0, gomock.Any()).Return(nil)

	svc := gossip.NewService(tbl, transport, 7).WithClock(&fakeClock{})
	err = svc.Announce(0)
	require.NoError(t, err)

	n, err := tbl.NodeAt(0)
	require.NoError(t, err)
	assert.Contains(t, n.KnownParityMap, 0)
	assert.Equal(t, []string{"tag-a"}, n.KnownParityMap[0].ParityTags)
}

func TestGossipSendsToAtMostThreeNeighbors(t *testing.T) {
	ctrl := gomock.NewController(t)
	tbl, err := overlay.NewTable(6, vector.Dim, 1)
	require.NoError(t, err)
	require.NoError(t, tbl.ConnectNeighbors(0, 5))

	transport := gossipmock.NewMockTransport(ctrl)
	transport.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(gossip.MaxGossipTargets)

	svc := gossip.NewService(tbl, transport, 7).WithClock(&fakeClock{})
	require.NoError(t, svc.Gossip(0))
}

func TestGossipNoNeighborsIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	tbl, err := overlay.NewTable(2, vector.Dim, 1)
	require.NoError(t, err)

	transport := gossipmock.NewMockTransport(ctrl)
	svc := gossip.NewService(tbl, transport, 1).WithClock(&fakeClock{})
	assert.NoError(t, svc.Gossip(0))
}

func TestReceiveEnforcesMonotonicity(t *testing.T) {
	ctrl := gomock.NewController(t)
	tbl, err := overlay.NewTable(2, vector.Dim, 1)
	require.NoError(t, err)
	transport := gossipmock.NewMockTransport(ctrl)
	svc := gossip.NewService(tbl, transport, 1)

	accepted, err := svc.Receive(0, overlay.Announcement{NodeID: 1, Timestamp: 5})
	require.NoError(t, err)
	assert.True(t, accepted)

	accepted, err = svc.Receive(0, overlay.Announcement{NodeID: 1, Timestamp: 3})
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestAssignParityTagCapacityExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	tbl, err := overlay.NewTable(1, vector.Dim, 1)
	require.NoError(t, err)
	transport := gossipmock.NewMockTransport(ctrl)
	svc := gossip.NewService(tbl, transport, 1)

	for i := 0; i < overlay.MaxParityTags; i++ {
		require.NoError(t, svc.AssignParityTag(0, string(rune('a'+i))))
	}
	assert.ErrorIs(t, svc.AssignParityTag(0, "overflow"), overlay.ErrCapacityExceeded)
}
