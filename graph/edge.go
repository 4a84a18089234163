package graph

import "fmt"

// Edge is a directed, weighted connection between two vertices. Edges are
// values and never change once constructed.
type Edge struct {
	id     string
	src    Vertex
	dst    Vertex
	weight int
}

// NewEdge returns a directed edge from src to dst.
func NewEdge(id string, src, dst Vertex, weight int) Edge {
	return Edge{id: id, src: src, dst: dst, weight: weight}
}

// ID returns the edge identifier.
func (e Edge) ID() string { return e.id }

// Source returns the vertex the edge originates from.
func (e Edge) Source() Vertex { return e.src }

// Destination returns the vertex the edge points to.
func (e Edge) Destination() Vertex { return e.dst }

// Weight returns the edge cost.
func (e Edge) Weight() int { return e.weight }

// String implements fmt.Stringer.
func (e Edge) String() string {
	return fmt.Sprintf("%s(%s->%s:%d)", e.id, e.src, e.dst, e.weight)
}

// AddLane appends two opposing edges between vertices[src] and
// vertices[dst], both with the provided cost, and returns the extended
// slice. Undirected connections are always represented this way.
func AddLane(edges []Edge, vertices []Vertex, src, dst, cost int) []Edge {
	return append(edges,
		NewEdge(fmt.Sprintf("Lane_%d_%d", src, dst), vertices[src], vertices[dst], cost),
		NewEdge(fmt.Sprintf("Lane_%d_%d", dst, src), vertices[dst], vertices[src], cost),
	)
}
