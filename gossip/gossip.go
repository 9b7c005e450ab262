// Package gossip builds, signs, broadcasts, and gossips parity
// announcements, and enforces each receiver's monotonicity policy over
// its knowledge map.
package gossip

import (
	"fmt"
	"time"

	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/utils/safemath"
	"github.com/luxfi/parity/utils/sampler"
	"github.com/luxfi/parity/utils/wrappers"
)

// MaxGossipTargets bounds how many neighbors receive a point-to-point
// gossip send per call.
const MaxGossipTargets = 3

// Transport is the narrow send surface gossip needs from the network
// layer. Broadcast fans out to every peer; Send targets one neighbor.
// Both are best-effort: a failure is reported to the caller but never
// retried within the call.
type Transport interface {
	Broadcast(senderID int, ann overlay.Announcement) error
	Send(toID int, ann overlay.Announcement) error
}

// Clock supplies the current timestamp used to stamp announcements.
type Clock interface {
	Now() int64
}

type systemClock struct{}

func (systemClock) Now() int64 { return time.Now().UnixNano() }

// Signer derives a signature from a node id and timestamp. The
// placeholder scheme is deterministic given sender state, matching the
// spec's stand-in for a real signature scheme.
type Signer func(nodeID int, timestamp int64) string

// DefaultSigner is the placeholder deterministic signature function.
func DefaultSigner(nodeID int, timestamp int64) string {
	return fmt.Sprintf("SIG-%d-%d", nodeID, timestamp)
}

// LoadOracle reports a node's current load for inclusion in an
// announcement. The default treats load as the node's parity count.
type LoadOracle func(tbl *overlay.Table, nodeID int) (float64, error)

func defaultLoad(tbl *overlay.Table, nodeID int) (float64, error) {
	n, err := tbl.ParityCount(nodeID)
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

// Service bundles a node table with the transport, clock, signer, load
// oracle, and RNG stream it needs to announce and gossip.
type Service struct {
	tbl       *overlay.Table
	transport Transport
	clock     Clock
	signer    Signer
	load      LoadOracle
	rng       *sampler.Source
}

// NewService returns a Service with the default clock, signer, and load
// oracle, and a gossip-target RNG seeded deterministically.
func NewService(tbl *overlay.Table, transport Transport, seed int64) *Service {
	return &Service{
		tbl:       tbl,
		transport: transport,
		clock:     systemClock{},
		signer:    DefaultSigner,
		load:      defaultLoad,
		rng:       sampler.NewSource(seed),
	}
}

// WithClock overrides the clock, for deterministic tests.
func (s *Service) WithClock(c Clock) *Service {
	s.clock = c
	return s
}

// WithSigner overrides the signer.
func (s *Service) WithSigner(sign Signer) *Service {
	s.signer = sign
	return s
}

// WithLoadOracle overrides the load oracle.
func (s *Service) WithLoadOracle(load LoadOracle) *Service {
	s.load = load
	return s
}

// BuildAnnouncement snapshots nodeID's current parity tags and load into
// a signed Announcement.
func (s *Service) BuildAnnouncement(nodeID int) (overlay.Announcement, error) {
	n, err := s.tbl.NodeAt(nodeID)
	if err != nil {
		return overlay.Announcement{}, err
	}
	load, err := s.load(s.tbl, nodeID)
	if err != nil {
		return overlay.Announcement{}, err
	}
	ts := s.clock.Now()
	return overlay.Announcement{
		NodeID:      nodeID,
		ParityTags:  append([]string(nil), n.ParityTags...),
		ParityCount: len(n.ParityTags),
		LoadFactor:  load,
		Timestamp:   ts,
		Signature:   s.signer(nodeID, ts),
	}, nil
}

// Announce builds nodeID's announcement, broadcasts it to every peer,
// then inserts it into the sender's own knowledge map.
func (s *Service) Announce(nodeID int) error {
	ann, err := s.BuildAnnouncement(nodeID)
	if err != nil {
		return err
	}
	var errs wrappers.Errs
	if s.transport != nil {
		if berr := s.transport.Broadcast(nodeID, ann); berr != nil {
			errs.Add(fmt.Errorf("transport: broadcast from node %d: %w", nodeID, berr))
		}
	}
	if _, aerr := s.tbl.AcceptAnnouncement(nodeID, ann); aerr != nil {
		errs.Add(aerr)
	}
	return errs.Err()
}

// Gossip sends nodeID's announcement to min(MaxGossipTargets,
// neighbor_count) distinct neighbors, chosen without replacement from a
// deterministic RNG stream.
func (s *Service) Gossip(nodeID int) error {
	ann, err := s.BuildAnnouncement(nodeID)
	if err != nil {
		return err
	}
	neighbors, err := s.tbl.Neighbors(nodeID)
	if err != nil {
		return err
	}
	if len(neighbors) == 0 {
		return nil
	}
	targets := safemath.MinInt(MaxGossipTargets, len(neighbors))
	idxs := s.rng.SampleDistinct(targets, len(neighbors))

	var errs wrappers.Errs
	for _, idx := range idxs {
		to := neighbors[idx]
		if s.transport != nil {
			if serr := s.transport.Send(to, ann); serr != nil {
				errs.Add(fmt.Errorf("transport: send from node %d to %d: %w", nodeID, to, serr))
			}
		}
	}
	return errs.Err()
}

// Receive applies a receiver's monotonicity policy: ann is accepted into
// receiverID's knowledge map only if its timestamp is strictly newer
// than the last one recorded for that sender.
func (s *Service) Receive(receiverID int, ann overlay.Announcement) (accepted bool, err error) {
	return s.tbl.AcceptAnnouncement(receiverID, ann)
}

// AssignParityTag assigns tag to nodeID, refusing when the node is
// already at MaxParityTags capacity.
func (s *Service) AssignParityTag(nodeID int, tag string) error {
	return s.tbl.AssignParityTag(nodeID, tag)
}
