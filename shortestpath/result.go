package shortestpath

import (
	"time"

	"github.com/google/uuid"

	"github.com/mycok/pathfinder/graph"
)

// unreachable is the distance recorded for vertices that were never settled.
const unreachable = int(^uint(0) >> 1)

// Stats summarises a completed run.
type Stats struct {
	RunID       uuid.UUID
	Rounds      int
	Settled     int
	Relaxations int64
	Elapsed     time.Duration
}

// Result is an immutable snapshot of a completed run. It stays valid after
// later runs, vertex removals or engine termination.
type Result struct {
	source   int
	vertices []graph.Vertex
	index    map[graph.Vertex]int
	dist     []int
	pred     []int
	order    []int
	stats    Stats
}

// Source returns the vertex the run started from.
func (r *Result) Source() graph.Vertex { return r.vertices[r.source] }

// Stats returns the run statistics.
func (r *Result) Stats() Stats { return r.stats }

// Distance returns the shortest distance from the source to v. The second
// return value is false when v is unknown or unreachable.
func (r *Result) Distance(v graph.Vertex) (int, bool) {
	i, exists := r.index[v]
	if !exists || r.dist[i] == unreachable {
		return 0, false
	}

	return r.dist[i], true
}

// Predecessor returns the vertex preceding v on its shortest path. The second
// return value is false for the source and for unreachable vertices.
func (r *Result) Predecessor(v graph.Vertex) (graph.Vertex, bool) {
	i, exists := r.index[v]
	if !exists || r.pred[i] == noVertex {
		return graph.Vertex{}, false
	}

	return r.vertices[r.pred[i]], true
}

// Path returns the vertices on the shortest path from the source to target,
// both included. The second return value is false when target is unknown or
// unreachable.
func (r *Result) Path(target graph.Vertex) ([]graph.Vertex, bool) {
	i, exists := r.index[target]
	if !exists || r.dist[i] == unreachable {
		return nil, false
	}

	var path []graph.Vertex
	for ; i != r.source; i = r.pred[i] {
		path = append(path, r.vertices[i])
	}

	path = append(path, r.vertices[r.source])

	// Reverse path slice in place to form path from src->dst
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, true
}

// SettleOrder returns the vertices in the order they were settled.
func (r *Result) SettleOrder() []graph.Vertex {
	order := make([]graph.Vertex, len(r.order))
	for seq, i := range r.order {
		order[seq] = r.vertices[i]
	}

	return order
}
