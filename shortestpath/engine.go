/*
	shortestpath package computes single-source shortest paths over graphs
	with non-negative integer weights. Parallel splits the adjacency index
	edge-wise into partitions that settle one vertex per synchronized round;
	Sequential is the classic single-threaded algorithm and serves as its
	correctness oracle.
*/

package shortestpath

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/mycok/pathfinder/graph"
)

// Engine is implemented by the shortest path engines.
type Engine interface {
	// Execute computes the shortest paths from source to every vertex.
	Execute(ctx context.Context, source graph.Vertex) error

	// ExecuteIndex is like Execute but resolves the source by ordinal.
	ExecuteIndex(ctx context.Context, i int) error

	// Path returns the shortest path from the last run's source to target.
	Path(target graph.Vertex) ([]graph.Vertex, error)

	// PathIndex is like Path but resolves the target by ordinal.
	PathIndex(i int) ([]graph.Vertex, error)

	// RemoveVertex drops every edge leading to the vertex with ordinal i.
	// It takes effect on the next run.
	RemoveVertex(i int) error

	// Result returns the last published result or nil.
	Result() *Result
}

// Static and compile-time check to ensure both engines implement the
// Engine interface.
var (
	_ Engine = (*Sequential)(nil)
	_ Engine = (*Parallel)(nil)
)

// results holds state shared by both engines: the vertex ordinals and the
// last published result.
type results struct {
	g        *graph.Graph
	vertices []graph.Vertex
	index    map[graph.Vertex]int
	last     atomic.Value
}

func newResults(g *graph.Graph) results {
	vertices := g.Vertices()
	index := make(map[graph.Vertex]int, len(vertices))

	for i, v := range vertices {
		index[v] = i
	}

	return results{g: g, vertices: vertices, index: index}
}

// Result returns the last published result or nil if no run has completed.
func (r *results) Result() *Result {
	res, _ := r.last.Load().(*Result)

	return res
}

// Path returns the shortest path from the last run's source to target,
// ordered source first.
func (r *results) Path(target graph.Vertex) ([]graph.Vertex, error) {
	if _, err := r.g.IndexOf(target); err != nil {
		return nil, err
	}

	res := r.Result()
	if res == nil {
		return nil, ErrNotExecuted
	}

	path, ok := res.Path(target)
	if !ok {
		return nil, fmt.Errorf("path %s->%s: %w", res.Source(), target, ErrNoPath)
	}

	return path, nil
}

// PathIndex returns the shortest path to the vertex with ordinal i.
func (r *results) PathIndex(i int) ([]graph.Vertex, error) {
	target, err := r.g.Vertex(i)
	if err != nil {
		return nil, err
	}

	return r.Path(target)
}

func (r *results) publish(res *Result) { r.last.Store(res) }
