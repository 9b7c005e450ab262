// Package placement implements the parity placement engine: a scoring
// graph over live nodes, a tree-evaluated scoring pass, and a top-K
// selector that assigns a parity tag to its replica set.
package placement

import (
	"math"
	"sort"

	"github.com/luxfi/parity/config"
	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/utils/safemath"
	"github.com/luxfi/parity/utils/wrappers"
)

// TopologyOracle supplies measured RTT and centrality for a node. A nil
// oracle, or one that reports unmeasured, falls back to the default of
// 1.0 for both fields.
type TopologyOracle interface {
	RTT(nodeID int) (value float64, measured bool)
	Centrality(nodeID int) (value float64, measured bool)
}

// DefaultTopologyOracle reports every node as unmeasured.
type DefaultTopologyOracle struct{}

func (DefaultTopologyOracle) RTT(int) (float64, bool)        { return 0, false }
func (DefaultTopologyOracle) Centrality(int) (float64, bool) { return 0, false }

// Announcer is the narrow slice of the gossip subsystem placement needs:
// triggering an announcement from a freshly-assigned node.
type Announcer interface {
	Announce(nodeID int) error
}

// ParityNode is the ephemeral scoring-graph view of a Node.
type ParityNode struct {
	ID              int
	RTTLatency      float64
	CentralityScore float64
	CurrentLoad     int
	LastAccess      int64
}

// BuildScoringGraph snapshots one ParityNode per live node in tbl.
func BuildScoringGraph(tbl *overlay.Table, oracle TopologyOracle) []ParityNode {
	if oracle == nil {
		oracle = DefaultTopologyOracle{}
	}
	snaps := tbl.Snapshot()
	graph := make([]ParityNode, len(snaps))
	for i, s := range snaps {
		rtt, ok := oracle.RTT(s.ID)
		if !ok {
			rtt = 1.0
		}
		centrality, ok := oracle.Centrality(s.ID)
		if !ok {
			centrality = 1.0
		}
		graph[i] = ParityNode{
			ID:              s.ID,
			RTTLatency:      rtt,
			CentralityScore: centrality,
			CurrentLoad:     s.ParityCount,
			LastAccess:      s.LastAnnouncement,
		}
	}
	return graph
}

// BuildScoringGraphFor snapshots one ParityNode per id in ids, in the
// order given, for callers (like recovery) that score a restricted
// subset of the table rather than every live node.
func BuildScoringGraphFor(tbl *overlay.Table, oracle TopologyOracle, ids []int) ([]ParityNode, error) {
	if oracle == nil {
		oracle = DefaultTopologyOracle{}
	}
	graph := make([]ParityNode, len(ids))
	for i, id := range ids {
		s, err := tbl.NodeAt(id)
		if err != nil {
			return nil, err
		}
		rtt, ok := oracle.RTT(s.ID)
		if !ok {
			rtt = 1.0
		}
		centrality, ok := oracle.Centrality(s.ID)
		if !ok {
			centrality = 1.0
		}
		graph[i] = ParityNode{
			ID:              s.ID,
			RTTLatency:      rtt,
			CentralityScore: centrality,
			CurrentLoad:     s.ParityCount,
			LastAccess:      s.LastAnnouncement,
		}
	}
	return graph, nil
}

// LeafScore computes a single node's placement score under policy.
func LeafScore(policy config.PlacementPolicy, n ParityNode) float64 {
	return policy.RTTWeight/(1+n.RTTLatency) +
		policy.LoadBalanceWeight*(1-float64(n.CurrentLoad)/float64(overlay.MaxParityTags)) +
		policy.KNNSimilarityWeight*n.CentralityScore +
		policy.CentralityWeight*n.CentralityScore
}

// Tree is the ephemeral placement-tree scoring structure.
type Tree struct {
	Fanout     int
	Height     int
	Graph      []ParityNode
	LeafScores []float64
}

// BuildTree computes fanout, height, and per-node leaf scores from graph
// under policy.
func BuildTree(graph []ParityNode, policy config.PlacementPolicy) *Tree {
	n := len(graph)
	fanout := safemath.MaxInt(2, int(math.Sqrt(float64(n))))
	treeHeight := 0
	if n > 1 {
		treeHeight = int(math.Log2(float64(n)))
	}
	height := safemath.MinInt(treeHeight, policy.TreeEvaluationDepth)

	leafScores := make([]float64, n)
	for i, g := range graph {
		leafScores[i] = LeafScore(policy, g)
	}
	return &Tree{Fanout: fanout, Height: height, Graph: graph, LeafScores: leafScores}
}

func evaluateRange(leafScores []float64, fanout, start, end int) float64 {
	if end-start <= 1 {
		return leafScores[start]
	}
	childSize := (end - start + fanout - 1) / fanout
	best := math.Inf(-1)
	for c := start; c < end; c += childSize {
		childEnd := safemath.MinInt(c+childSize, end)
		if s := evaluateRange(leafScores, fanout, c, childEnd); s > best {
			best = s
		}
	}
	return best
}

// InternalScore returns the tree's root-level internal score: the max
// over children within the complete-tree index range, recursively. It
// is computed for parity with the scoring graph's evaluation path but is
// not consulted by Distribute's selection, which operates on leaf scores
// directly.
func (t *Tree) InternalScore() float64 {
	if len(t.LeafScores) == 0 {
		return math.Inf(-1)
	}
	return evaluateRange(t.LeafScores, t.Fanout, 0, len(t.LeafScores))
}

// Distribute selects policy.MinReplicas nodes to hold tag, assigns the
// tag to each, and triggers an announcement from each newly-assigned
// node. When policy.MinReplicas exceeds the live node count, every node
// is selected and insufficientCapacity is reported.
func Distribute(tbl *overlay.Table, tag string, policy config.PlacementPolicy, oracle TopologyOracle, announcer Announcer) (replicaSet []int, insufficientCapacity bool, err error) {
	if verr := policy.Valid(); verr != nil {
		return nil, false, verr
	}

	graph := BuildScoringGraph(tbl, oracle)
	n := len(graph)
	tree := BuildTree(graph, policy)

	var selected []int
	if policy.MinReplicas > n {
		selected = make([]int, n)
		for i, g := range graph {
			selected[i] = g.ID
		}
		sort.Ints(selected)
		insufficientCapacity = true
	} else {
		type scored struct {
			id    int
			score float64
		}
		all := make([]scored, n)
		for i, g := range graph {
			all[i] = scored{id: g.ID, score: tree.LeafScores[i]}
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].score != all[j].score {
				return all[i].score > all[j].score
			}
			return all[i].id < all[j].id
		})
		selected = make([]int, policy.MinReplicas)
		for i := 0; i < policy.MinReplicas; i++ {
			selected[i] = all[i].id
		}
	}

	var errs wrappers.Errs
	for _, id := range selected {
		if aerr := tbl.AssignParityTag(id, tag); aerr != nil {
			errs.Add(aerr)
			continue
		}
		if announcer != nil {
			if aerr := announcer.Announce(id); aerr != nil {
				errs.Add(aerr)
			}
		}
	}
	return selected, insufficientCapacity, errs.Err()
}
