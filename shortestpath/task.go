package shortestpath

import (
	"github.com/hashicorp/go-multierror"

	"github.com/mycok/pathfinder/partition"
)

type taskKind uint8

const (
	branchTask taskKind = iota
	leafTask
)

// task mirrors one node of the partition tree. Branches fan out to their
// children; leaves own a partition's worker state.
type task struct {
	kind  taskKind
	left  *task
	right *task
	leaf  *leaf
}

// newTaskTree builds the task tree for node and appends the leaves it creates
// to leaves in left-to-right order.
func newTaskTree(node *partition.Tree, numOfVertices int, leaves *[]*leaf) *task {
	if node.IsLeaf() {
		l := newLeaf(len(*leaves), node.Partition.Adjacency, numOfVertices)
		*leaves = append(*leaves, l)

		return &task{kind: leafTask, leaf: l}
	}

	return &task{
		kind:  branchTask,
		left:  newTaskTree(node.Left, numOfVertices, leaves),
		right: newTaskTree(node.Right, numOfVertices, leaves),
	}
}

// resetAndRun resets every leaf below t and hands it to dispatchFn. Branches
// fork their right subtree and run their left one inline.
func (t *task) resetAndRun(dispatchFn func(*leaf) error) error {
	if t.kind == leafTask {
		t.leaf.reset()

		return dispatchFn(t.leaf)
	}

	rightErrChan := make(chan error, 1)
	go func() { rightErrChan <- t.right.resetAndRun(dispatchFn) }()

	var err error
	if leftErr := t.left.resetAndRun(dispatchFn); leftErr != nil {
		err = multierror.Append(err, leftErr)
	}

	if rightErr := <-rightErrChan; rightErr != nil {
		err = multierror.Append(err, rightErr)
	}

	return err
}
