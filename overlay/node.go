// Package overlay owns the node table: the ground-truth store of nodes,
// their vectors, scalar fields, neighbor topology, and parity holdings.
// It is the single shared mutable resource every other subsystem reads
// or writes through.
package overlay

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/luxfi/parity/fhe"
)

// MaxNeighbors is the per-node neighbor cap.
const MaxNeighbors = 16

// MaxParityTags is the per-node parity tag cap.
const MaxParityTags = 32

// Announcement is a peer's accepted snapshot of another node's parity
// holdings. A node's knowledge map stores the latest accepted
// Announcement per sender.
type Announcement struct {
	NodeID      int
	ParityTags  []string
	ParityCount int
	LoadFactor  float64
	Timestamp   int64
	Signature   string
}

// Node is a single vertex of the overlay.
type Node struct {
	ID                int
	Vector            []float64
	Density           float64
	Coherence         float64
	Neighbors         []int
	ParityTags        []string // insertion order, duplicate-free
	Hash              string
	KnownParityMap    map[int]Announcement
	LastAnnouncement  int64
	ReplicationFactor int
	EncryptedDensity  *fhe.Ciphertext
}

// Snapshot is an immutable, independently-owned copy of a Node's fields,
// safe to read after the table's lock has been released.
type Snapshot struct {
	ID                int
	Vector            []float64
	Density           float64
	Coherence         float64
	Neighbors         []int
	ParityTags        []string
	ParityCount       int
	Hash              string
	KnownParityMap    map[int]Announcement
	LastAnnouncement  int64
	ReplicationFactor int
	EncryptedDensity  *fhe.Ciphertext
}

func (n *Node) snapshot() Snapshot {
	known := make(map[int]Announcement, len(n.KnownParityMap))
	for peer, ann := range n.KnownParityMap {
		ann.ParityTags = append([]string(nil), ann.ParityTags...)
		known[peer] = ann
	}
	return Snapshot{
		ID:                n.ID,
		Vector:            append([]float64(nil), n.Vector...),
		Density:           n.Density,
		Coherence:         n.Coherence,
		Neighbors:         append([]int(nil), n.Neighbors...),
		ParityTags:        append([]string(nil), n.ParityTags...),
		ParityCount:       len(n.ParityTags),
		Hash:              n.Hash,
		KnownParityMap:    known,
		LastAnnouncement:  n.LastAnnouncement,
		ReplicationFactor: n.ReplicationFactor,
		EncryptedDensity:  n.EncryptedDensity,
	}
}

// hasTag reports whether the node already holds tag.
func (n *Node) hasTag(tag string) bool {
	for _, t := range n.ParityTags {
		if t == tag {
			return true
		}
	}
	return false
}

// recomputeHash derives the node's content digest from its current
// mutable state. Every writer mutating density, coherence, the vector,
// or the parity tag set calls this afterward, so the hash is always a
// function of current state rather than a stale or self-referential
// value.
func (n *Node) recomputeHash() {
	h := sha256.New()
	fmt.Fprintf(h, "id=%d;density=%.9f;coherence=%.9f;vector=", n.ID, n.Density, n.Coherence)
	for _, v := range n.Vector {
		fmt.Fprintf(h, "%.9f,", v)
	}
	tags := append([]string(nil), n.ParityTags...)
	sort.Strings(tags)
	h.Write([]byte(";tags="))
	for _, t := range tags {
		h.Write([]byte(t))
		h.Write([]byte(","))
	}
	n.Hash = hex.EncodeToString(h.Sum(nil))
}

// seedHash returns the deterministic placeholder hash assigned to a node
// immediately after allocation, before any state mutation has occurred.
func seedHash(id int) string {
	return fmt.Sprintf("node%dhash", id)
}
