package partition

import (
	"fmt"
	"math/rand"

	"github.com/mycok/pathfinder/graph"
)

// Tree is the binary tree produced by recursively splitting an adjacency
// index. Branch nodes keep the adjacency they split; leaves own the
// partitions that are handed to workers.
type Tree struct {
	Partition Partition
	Left      *Tree
	Right     *Tree
}

// NewTree splits adj recursively until depth levels have been produced,
// yielding 2^depth leaves. A depth of zero yields a single leaf owning the
// complete index.
func NewTree(adj graph.Adjacency, depth int, rng *rand.Rand) (*Tree, error) {
	if depth < 0 || depth > MaxDepth {
		return nil, fmt.Errorf("depth %d not in [0, %d]: %w", depth, MaxDepth, ErrInvalidDepth)
	}

	return build(adj, 0, depth, rng), nil
}

func build(adj graph.Adjacency, level, maxLevel int, rng *rand.Rand) *Tree {
	t := &Tree{Partition: Partition{Adjacency: adj, Depth: level}}
	if level == maxLevel {
		return t
	}

	first, second := Split(adj, rng)
	t.Left = build(first, level+1, maxLevel, rng)
	t.Right = build(second, level+1, maxLevel, rng)

	return t
}

// IsLeaf reports whether t has no children.
func (t *Tree) IsLeaf() bool { return t.Left == nil && t.Right == nil }

// Leaves returns the leaf partitions in left-to-right order.
func (t *Tree) Leaves() []Partition {
	if t.IsLeaf() {
		return []Partition{t.Partition}
	}

	return append(t.Left.Leaves(), t.Right.Leaves()...)
}

// Walk visits every node of the tree in pre-order.
func (t *Tree) Walk(visitFn func(node *Tree)) {
	visitFn(t)

	if !t.IsLeaf() {
		t.Left.Walk(visitFn)
		t.Right.Walk(visitFn)
	}
}
