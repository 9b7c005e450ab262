// Package merkle builds and maintains a binary hash tree over per-node
// content digests, exposing rebuild, leaf-hash verification, incremental
// refresh, and a line-oriented text export.
package merkle

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/luxfi/parity/overlay"
)

func hashHex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Node is one vertex of the tree. Leaves carry a leaf-level hash derived
// from a node's content hash; internal nodes carry the hash of their
// children's concatenated hex digests. Start/End describe the half-open
// range of leaf indices the node covers, letting incremental updates
// walk straight to the affected path without a search.
type Node struct {
	Hash   string
	Left   *Node
	Right  *Node
	IsLeaf bool
	Start  int
	End    int
}

// Tree is a full Merkle tree over a sequence of node content hashes.
type Tree struct {
	Root       *Node
	LeafHashes []string
}

func build(hashes []string, start, end int) *Node {
	if end-start == 1 {
		return &Node{Hash: hashes[start], IsLeaf: true, Start: start, End: end}
	}
	mid := start + (end-start)/2
	left := build(hashes, start, mid)
	right := build(hashes, mid, end)
	return &Node{
		Hash:  hashHex(left.Hash + right.Hash),
		Left:  left,
		Right: right,
		Start: start,
		End:   end,
	}
}

// Build constructs a tree from the table's current node content hashes,
// in ascending id order.
func Build(tbl *overlay.Table) (*Tree, error) {
	n := tbl.Size()
	if n == 0 {
		return nil, fmt.Errorf("merkle: cannot build a tree over zero nodes")
	}
	contents := make([]string, n)
	for i := 0; i < n; i++ {
		snap, err := tbl.NodeAt(i)
		if err != nil {
			return nil, err
		}
		contents[i] = snap.Hash
	}
	return BuildFromContentHashes(contents)
}

// BuildFromContentHashes builds a tree directly from a sequence of raw
// content-hash strings, independent of the node table. Useful for
// callers (and tests) that want to exercise the tree shape without a
// live table.
func BuildFromContentHashes(contents []string) (*Tree, error) {
	if len(contents) == 0 {
		return nil, fmt.Errorf("merkle: cannot build a tree over zero leaves")
	}
	leaves := make([]string, len(contents))
	for i, c := range contents {
		leaves[i] = hashHex(c)
	}
	return &Tree{Root: build(leaves, 0, len(leaves)), LeafHashes: leaves}, nil
}

// RootHash returns the tree's root digest.
func (t *Tree) RootHash() string {
	return t.Root.Hash
}

// Verify recomputes the leaf-level hash of nodeID's current content hash
// in tbl and compares it bytewise to expected.
func Verify(tbl *overlay.Table, nodeID int, expected string) (bool, error) {
	snap, err := tbl.NodeAt(nodeID)
	if err != nil {
		return false, err
	}
	return hashHex(snap.Hash) == expected, nil
}

func updatePath(n *Node, idx int, newLeafHash string) {
	if n.IsLeaf {
		n.Hash = newLeafHash
		return
	}
	if idx < n.Left.End {
		updatePath(n.Left, idx, newLeafHash)
	} else {
		updatePath(n.Right, idx, newLeafHash)
	}
	n.Hash = hashHex(n.Left.Hash + n.Right.Hash)
}

// IncrementalUpdate recomputes only the internal nodes on nodeID's path
// to the root, using nodeID's current content hash from tbl. This
// replaces the self-referential update that a naive port of the source
// would produce: the node's own content hash is never overwritten here,
// only the tree's leaf and ancestor hashes derived from it.
func (t *Tree) IncrementalUpdate(tbl *overlay.Table, nodeID int) error {
	snap, err := tbl.NodeAt(nodeID)
	if err != nil {
		return err
	}
	if nodeID < 0 || nodeID >= len(t.LeafHashes) {
		return fmt.Errorf("merkle: node id %d out of range for a tree with %d leaves", nodeID, len(t.LeafHashes))
	}
	newLeaf := hashHex(snap.Hash)
	t.LeafHashes[nodeID] = newLeaf
	updatePath(t.Root, nodeID, newLeaf)
	return nil
}

// ExportJournal writes the line-oriented journal format: the root hash
// followed by one line per leaf.
func ExportJournal(w io.Writer, t *Tree) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "MERKLE_ROOT: %s\n", t.RootHash()); err != nil {
		return err
	}
	for i, h := range t.LeafHashes {
		if _, err := fmt.Fprintf(bw, "Node[%d]: %s\n", i, h); err != nil {
			return err
		}
	}
	return bw.Flush()
}
