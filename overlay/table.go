package overlay

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/parity/fhe"
	"github.com/luxfi/parity/utils/sampler"
	"github.com/luxfi/parity/vector"
)

// Sentinel errors returned by Table operations.
var (
	ErrNodeNotFound      = errors.New("overlay: node not found")
	ErrFanoutTooLarge    = errors.New("overlay: fanout must be positive, below the node count, and within the neighbor cap")
	ErrCapacityExceeded  = errors.New("overlay: node already holds the maximum number of parity tags")
	ErrDimensionMismatch = errors.New("overlay: vector dimension mismatch")
)

// Table is the single shared node store. A sync.RWMutex enforces the
// discipline that readers may run in parallel but every mutation is
// serialized; no caller holds the lock across a network send or any
// other suspension point.
type Table struct {
	mu    sync.RWMutex
	nodes []*Node
	dim   int
}

// NewTable allocates and initializes a table of n nodes with dim-wide
// vectors, deterministically seeded.
func NewTable(n, dim int, seed int64) (*Table, error) {
	if n <= 0 {
		return nil, fmt.Errorf("overlay: node count must be positive, got %d", n)
	}
	if dim <= 0 {
		return nil, fmt.Errorf("overlay: vector dimension must be positive, got %d", dim)
	}
	src := sampler.NewSource(seed)
	nodes := make([]*Node, n)
	for i := 0; i < n; i++ {
		v := make([]float64, dim)
		for j := range v {
			v[j] = src.Range(-1, 1)
		}
		vector.Normalize(v)
		node := &Node{
			ID:                i,
			Vector:            v,
			Density:           1.0, // vectors are born randomized, normalized, density=1
			Coherence:         src.Float64(),
			Neighbors:         nil,
			ParityTags:        nil,
			KnownParityMap:    make(map[int]Announcement),
			ReplicationFactor: 3,
			Hash:              seedHash(i),
		}
		nodes[i] = node
	}
	return &Table{nodes: nodes, dim: dim}, nil
}

// Size returns the number of nodes in the table.
func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Dim returns the vector width the table was initialized with.
func (t *Table) Dim() int {
	return t.dim
}

func (t *Table) nodeLocked(id int) (*Node, error) {
	if id < 0 || id >= len(t.nodes) {
		return nil, ErrNodeNotFound
	}
	return t.nodes[id], nil
}

// ConnectNeighbors wires id to the fanout nodes immediately following it
// on the ring, id+1..id+fanout (mod node count).
func (t *Table) ConnectNeighbors(id, fanout int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return err
	}
	if fanout <= 0 || fanout >= len(t.nodes) || fanout > MaxNeighbors {
		return ErrFanoutTooLarge
	}
	neighbors := make([]int, fanout)
	for i := 0; i < fanout; i++ {
		neighbors[i] = (id + i + 1) % len(t.nodes)
	}
	n.Neighbors = neighbors
	return nil
}

// Snapshot returns a consistent, independently-owned copy of every node,
// taken under a single read lock.
func (t *Table) Snapshot() []Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Snapshot, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = n.snapshot()
	}
	return out
}

// NodeAt returns a consistent snapshot of a single node.
func (t *Table) NodeAt(id int) (Snapshot, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return Snapshot{}, err
	}
	return n.snapshot(), nil
}

// Neighbors returns a copy of id's neighbor list.
func (t *Table) Neighbors(id int) ([]int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), n.Neighbors...), nil
}

// Holders returns the ids of every node currently holding tag, in
// ascending order.
func (t *Table) Holders(tag string) []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []int
	for _, n := range t.nodes {
		if n.hasTag(tag) {
			out = append(out, n.ID)
		}
	}
	return out
}

// InjectVector overwrites id's vector in place without renormalizing and
// marks the node fully dense, matching the "replaces a node's vector;
// density set to 1.0" contract of the injectvec command.
func (t *Table) InjectVector(id int, v []float64) error {
	if len(v) != t.dim {
		return ErrDimensionMismatch
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return err
	}
	n.Vector = append([]float64(nil), v...)
	n.Density = 1.0
	n.recomputeHash()
	return nil
}

// EvolveVector moves id's vector toward target by rate — a linear
// interpolation, vector += rate*(target-vector) — then renormalizes to
// unit length.
func (t *Table) EvolveVector(id int, target []float64, rate float64) error {
	if len(target) != t.dim {
		return ErrDimensionMismatch
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return err
	}
	diff := make([]float64, len(target))
	for i := range diff {
		diff[i] = target[i] - n.Vector[i]
	}
	vector.AddWeighted(n.Vector, diff, rate)
	vector.Normalize(n.Vector)
	n.recomputeHash()
	return nil
}

// SetDensity overwrites id's density field.
func (t *Table) SetDensity(id int, density float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return err
	}
	n.Density = density
	n.recomputeHash()
	return nil
}

// AttachEncryptedDensity boxes id's current density through the
// placeholder homomorphic encryption scheme.
func (t *Table) AttachEncryptedDensity(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return err
	}
	c := fhe.Encrypt(n.Density)
	n.EncryptedDensity = &c
	return nil
}

// AssignParityTag adds tag to id's holdings. It is a no-op returning nil
// if the node already holds the tag (idempotent re-assignment).
func (t *Table) AssignParityTag(id int, tag string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return err
	}
	if n.hasTag(tag) {
		return nil
	}
	if len(n.ParityTags) >= MaxParityTags {
		return ErrCapacityExceeded
	}
	n.ParityTags = append(n.ParityTags, tag)
	n.recomputeHash()
	return nil
}

// RevokeParityTag removes tag from id's holdings, if present.
func (t *Table) RevokeParityTag(id int, tag string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return err
	}
	for i, tg := range n.ParityTags {
		if tg == tag {
			n.ParityTags = append(n.ParityTags[:i], n.ParityTags[i+1:]...)
			n.recomputeHash()
			return nil
		}
	}
	return nil
}

// AcceptAnnouncement records ann in id's knowledge map, keyed by the
// announcing peer, provided ann's timestamp is strictly newer than the
// last one accepted from that peer. It reports whether the announcement
// was accepted.
func (t *Table) AcceptAnnouncement(id int, ann Announcement) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return false, err
	}
	if prior, ok := n.KnownParityMap[ann.NodeID]; ok && ann.Timestamp <= prior.Timestamp {
		return false, nil
	}
	n.KnownParityMap[ann.NodeID] = ann
	if ann.Timestamp > n.LastAnnouncement {
		n.LastAnnouncement = ann.Timestamp
	}
	return true, nil
}

// ParityCount returns the number of tags id currently holds.
func (t *Table) ParityCount(id int) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, err := t.nodeLocked(id)
	if err != nil {
		return 0, err
	}
	return len(n.ParityTags), nil
}

// Shutdown marks the table as no longer in service. The node slice is
// dropped so backing memory can be collected; callers must not use the
// table afterward.
func (t *Table) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nodes = nil
}
