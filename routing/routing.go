// Package routing computes the next hop for a message: a hybrid score
// blending neighbor density, target-vector similarity, and coherence,
// optionally biased toward the nearest known holder of a parity tag.
package routing

import (
	"math"
	"sort"

	"github.com/luxfi/parity/config"
	"github.com/luxfi/parity/fhe"
	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/utils/set"
	"github.com/luxfi/parity/vector"
)

// DensityOracle resolves a node's density for scoring. The plaintext
// oracle reads Node.Density directly; the FHE oracle decrypts
// Node.EncryptedDensity, exercising the same oracle boundary the
// overlay uses to keep density opaque in transit.
type DensityOracle func(n overlay.Snapshot) float64

// PlaintextDensity reads density straight off the snapshot.
func PlaintextDensity(n overlay.Snapshot) float64 { return n.Density }

// DecryptedDensity decrypts n's encrypted density ciphertext, falling
// back to the plaintext field when no ciphertext is attached.
func DecryptedDensity(n overlay.Snapshot) float64 {
	if n.EncryptedDensity == nil {
		return n.Density
	}
	return fhe.Decrypt(*n.EncryptedDensity)
}

func densityOracleFor(cfg config.RoutingConfig) DensityOracle {
	if cfg.UseFHE {
		return DecryptedDensity
	}
	return PlaintextDensity
}

// HybridNextHop scores currentID's neighbors by density, similarity to
// target (when non-nil), and coherence, and returns the highest-scoring
// neighbor's id. Ties break toward the lower id. Returns -1 if
// currentID has no neighbors.
func HybridNextHop(tbl *overlay.Table, currentID int, target []float64, cfg config.RoutingConfig) (int, error) {
	neighbors, err := tbl.Neighbors(currentID)
	if err != nil {
		return -1, err
	}
	if len(neighbors) == 0 {
		return -1, nil
	}
	neighbors = append([]int(nil), neighbors...)
	sort.Ints(neighbors)
	density := densityOracleFor(cfg)

	bestID := -1
	bestScore := math.Inf(-1)
	for _, id := range neighbors {
		n, err := tbl.NodeAt(id)
		if err != nil {
			return -1, err
		}
		score := hybridScore(n, target, cfg, density)
		if score > bestScore {
			bestScore = score
			bestID = id
		}
	}
	return bestID, nil
}

func hybridScore(n overlay.Snapshot, target []float64, cfg config.RoutingConfig, density DensityOracle) float64 {
	similarity := 0.0
	if target != nil {
		similarity = vector.Cosine(n.Vector, target)
	}
	return cfg.DensityWeight*density(n) +
		cfg.SimilarityWeight*similarity +
		cfg.CoherenceWeight*n.Coherence
}

// hopDistance returns the BFS hop count from fromID to toID over the
// neighbor graph, or -1 if toID is unreachable.
func hopDistance(tbl *overlay.Table, fromID, toID int) (int, error) {
	if fromID == toID {
		return 0, nil
	}
	visited := set.Of(fromID)
	frontier := []int{fromID}
	for dist := 1; len(frontier) > 0; dist++ {
		var next []int
		for _, id := range frontier {
			neighbors, err := tbl.Neighbors(id)
			if err != nil {
				return -1, err
			}
			for _, nb := range neighbors {
				if nb == toID {
					return dist, nil
				}
				if !visited.Contains(nb) {
					visited.Add(nb)
					next = append(next, nb)
				}
			}
		}
		frontier = next
	}
	return -1, nil
}

// ParityAwareNextHop routes toward the nearest known holder of tag,
// blended with the hybrid score. When no holders exist, it falls back
// to HybridNextHop with a nil target.
func ParityAwareNextHop(tbl *overlay.Table, currentID int, tag string, cfg config.RoutingConfig) (int, error) {
	holders := tbl.Holders(tag)
	if len(holders) == 0 {
		return HybridNextHop(tbl, currentID, nil, cfg)
	}

	neighbors, err := tbl.Neighbors(currentID)
	if err != nil {
		return -1, err
	}
	if len(neighbors) == 0 {
		return -1, nil
	}
	neighbors = append([]int(nil), neighbors...)
	sort.Ints(neighbors)
	density := densityOracleFor(cfg)

	current, err := tbl.NodeAt(currentID)
	if err != nil {
		return -1, err
	}

	bestID := -1
	bestScore := math.Inf(-1)
	for _, id := range neighbors {
		minDist := math.Inf(1)
		for _, h := range holders {
			d, err := hopDistance(tbl, id, h)
			if err != nil {
				return -1, err
			}
			if d < 0 {
				continue
			}
			if float64(d) < minDist {
				minDist = float64(d)
			}
		}
		parityScore := 1.0 / (1.0 + minDist)

		n, err := tbl.NodeAt(id)
		if err != nil {
			return -1, err
		}
		hybrid := hybridScore(n, current.Vector, cfg, density)

		score := cfg.ParityWeight*parityScore + (1-cfg.ParityWeight)*hybrid
		if score > bestScore {
			bestScore = score
			bestID = id
		}
	}
	return bestID, nil
}
