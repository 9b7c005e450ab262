// Package recovery re-replicates a parity tag's holdings from among its
// surviving holders when some have been lost. It does not discover new
// hosts outside the surviving set; widening the replica set onto fresh
// nodes is done by placement.Distribute, which this package never calls.
package recovery

import (
	"errors"
	"sort"

	"github.com/luxfi/parity/config"
	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/placement"
	"github.com/luxfi/parity/utils/wrappers"
)

// ErrUnrecoverable is reported when a tag has zero surviving holders.
var ErrUnrecoverable = errors.New("recovery: no surviving holders for tag")

// Announcer is the narrow gossip surface recovery needs.
type Announcer interface {
	Announce(nodeID int) error
}

// Recover enumerates tag's current holders, scores them under policy
// restricted to that surviving set, and selects policy.MinReplicas
// targets. When fewer holders survive than MinReplicas, the remaining
// targets are filled by round-robin over the sorted holder list — the
// same node may appear more than once in the result, reflecting that
// recovery alone cannot manufacture new replicas.
//
// Recover is idempotent: since every target is already a holder (or
// becomes one as a no-op re-assignment), calling it again with no
// intervening topology change reproduces the same target list.
func Recover(tbl *overlay.Table, tag string, policy config.PlacementPolicy, oracle placement.TopologyOracle, announcer Announcer) (targets []int, err error) {
	if verr := policy.Valid(); verr != nil {
		return nil, verr
	}

	holders := tbl.Holders(tag)
	if len(holders) == 0 {
		return nil, ErrUnrecoverable
	}

	graph, err := placement.BuildScoringGraphFor(tbl, oracle, holders)
	if err != nil {
		return nil, err
	}

	type scored struct {
		id    int
		score float64
	}
	all := make([]scored, len(graph))
	for i, g := range graph {
		all[i] = scored{id: g.ID, score: placement.LeafScore(policy, g)}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].id < all[j].id
	})

	primaryCount := policy.MinReplicas
	if primaryCount > len(all) {
		primaryCount = len(all)
	}
	targets = make([]int, 0, policy.MinReplicas)
	for i := 0; i < primaryCount; i++ {
		targets = append(targets, all[i].id)
	}

	sortedHolders := append([]int(nil), holders...)
	sort.Ints(sortedHolders)
	for i := 0; len(targets) < policy.MinReplicas; i++ {
		targets = append(targets, sortedHolders[i%len(sortedHolders)])
	}

	var errs wrappers.Errs
	for _, id := range targets {
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
	return targets, errs.Err()
}
