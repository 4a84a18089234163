/*
	partition package splits an adjacency index edge-wise: every partition
	holds, for every vertex, a random subset of that vertex's outgoing edges
	rather than a subset of the vertices.
*/

package partition

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mycok/pathfinder/graph"
)

// MaxDepth is the deepest split supported by NewTree (64 leaves).
const MaxDepth = 6

var (
	// ErrInvalidDepth is returned by NewTree for depths outside [0, MaxDepth].
	ErrInvalidDepth = errors.New("invalid partition depth")

	// ErrPartitionMismatch is returned by Verify when a set of partitions is
	// not an exact edge-wise split of its parent.
	ErrPartitionMismatch = errors.New("partitions do not split the parent adjacency")
)

// Partition pairs an adjacency subset with the recursion depth that
// produced it.
type Partition struct {
	Adjacency graph.Adjacency
	Depth     int
}

// Split randomly halves the edge list of every vertex of adj. The first half
// receives size/2 shuffled edges and the second half the remainder, so a
// vertex with zero or one edge contributes an empty first half. Every vertex
// keeps an entry in both halves.
func Split(adj graph.Adjacency, rng *rand.Rand) (graph.Adjacency, graph.Adjacency) {
	first := make(map[graph.Vertex][]graph.Edge, adj.Len())
	second := make(map[graph.Vertex][]graph.Edge, adj.Len())

	adj.ForEach(func(v graph.Vertex, edges []graph.Edge) {
		shuffled := append([]graph.Edge(nil), edges...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		mid := len(shuffled) / 2
		first[v] = shuffled[:mid:mid]
		second[v] = shuffled[mid:]
	})

	return graph.NewAdjacency(first), graph.NewAdjacency(second)
}

// Verify checks that parts are pairwise edge-disjoint for every vertex and
// that their union equals the parent's edge list. Edges are compared as a
// multiset so parallel edges are accounted for.
func Verify(parent graph.Adjacency, parts ...graph.Adjacency) error {
	var err error

	parent.ForEach(func(v graph.Vertex, edges []graph.Edge) {
		if err != nil {
			return
		}

		remaining := make(map[graph.Edge]int, len(edges))
		for _, e := range edges {
			remaining[e]++
		}

		for i, part := range parts {
			partEdges, exists := part.Edges(v)
			if !exists {
				err = fmt.Errorf("vertex %q missing from partition %d: %w", v, i, ErrPartitionMismatch)

				return
			}

			for _, e := range partEdges {
				if remaining[e] == 0 {
					err = fmt.Errorf("edge %s in partition %d is duplicated or foreign: %w", e, i, ErrPartitionMismatch)

					return
				}

				remaining[e]--
			}
		}

		for e, n := range remaining {
			if n != 0 {
				err = fmt.Errorf("edge %s of vertex %q is not covered: %w", e, v, ErrPartitionMismatch)

				return
			}
		}
	})

	return err
}
