package placement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/parity/config"
	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/placement"
	"github.com/luxfi/parity/vector"
)

type countingAnnouncer struct {
	announced []int
}

func (c *countingAnnouncer) Announce(id int) error {
	c.announced = append(c.announced, id)
	return nil
}

func TestDistributeTiesBreakByLowerID(t *testing.T) {
	tbl, err := overlay.NewTable(4, vector.Dim, 1)
	require.NoError(t, err)

	policy := config.PlacementPolicy{
		RTTWeight:           1,
		LoadBalanceWeight:   1,
		KNNSimilarityWeight: 0,
		CentralityWeight:    0,
		MinReplicas:         2,
		MaxReplicas:         2,
		TreeEvaluationDepth: 8,
	}

	ann := &countingAnnouncer{}
	selected, insufficient, err := placement.Distribute(tbl, "tag", policy, nil, ann)
	require.NoError(t, err)
	assert.False(t, insufficient)
	assert.Equal(t, []int{0, 1}, selected)
	assert.ElementsMatch(t, []int{0, 1}, ann.announced)

	n0, err := tbl.NodeAt(0)
	require.NoError(t, err)
	assert.Contains(t, n0.ParityTags, "tag")

	n2, err := tbl.NodeAt(2)
	require.NoError(t, err)
	assert.NotContains(t, n2.ParityTags, "tag")
}

func TestDistributeInsufficientCapacity(t *testing.T) {
	tbl, err := overlay.NewTable(2, vector.Dim, 1)
	require.NoError(t, err)

	policy := config.DefaultPlacementPolicy()
	policy.MinReplicas = 5
	policy.MaxReplicas = 5

	selected, insufficient, err := placement.Distribute(tbl, "tag", policy, nil, nil)
	require.NoError(t, err)
	assert.True(t, insufficient)
	assert.Equal(t, []int{0, 1}, selected)
}

func TestDistributeInvalidPolicy(t *testing.T) {
	tbl, err := overlay.NewTable(2, vector.Dim, 1)
	require.NoError(t, err)
	bad := config.PlacementPolicy{MinReplicas: 0}
	_, _, err = placement.Distribute(tbl, "tag", bad, nil, nil)
	assert.Error(t, err)
}

func TestBuildTreeBoundaryN1(t *testing.T) {
	graph := []placement.ParityNode{{ID: 0}}
	tree := placement.BuildTree(graph, config.DefaultPlacementPolicy())
	assert.Equal(t, 2, tree.Fanout)
	assert.Equal(t, 0, tree.Height)
}

func TestBuildTreeBoundaryN2FanoutHeight(t *testing.T) {
	graph := []placement.ParityNode{{ID: 0}, {ID: 1}}
	policy := config.DefaultPlacementPolicy()
	tree := placement.BuildTree(graph, policy)
	assert.Equal(t, 2, tree.Fanout)
	assert.Equal(t, 1, tree.Height)
}

func TestInternalScoreIsMaxOfLeaves(t *testing.T) {
	graph := []placement.ParityNode{
		{ID: 0, RTTLatency: 1, CentralityScore: 0},
		{ID: 1, RTTLatency: 1, CentralityScore: 1},
		{ID: 2, RTTLatency: 1, CentralityScore: 0},
	}
	policy := config.PlacementPolicy{
		RTTWeight: 0, LoadBalanceWeight: 0, KNNSimilarityWeight: 1, CentralityWeight: 0,
		MinReplicas: 1, MaxReplicas: 3, TreeEvaluationDepth: 8,
	}
	tree := placement.BuildTree(graph, policy)
	max := tree.LeafScores[0]
	for _, s := range tree.LeafScores {
		if s > max {
			max = s
		}
	}
	assert.Equal(t, max, tree.InternalScore())
}
