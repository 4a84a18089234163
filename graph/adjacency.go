package graph

import "fmt"

// Adjacency maps every vertex to the ordered list of its outgoing edges. An
// Adjacency is never mutated after construction; editing operations such as
// RemoveVertex return a new instance.
type Adjacency struct {
	edges map[Vertex][]Edge
}

// NewAdjacency wraps the provided vertex to edge-list map. The map and its
// slices are owned by the returned Adjacency and must not be modified by the
// caller afterwards.
func NewAdjacency(edges map[Vertex][]Edge) Adjacency {
	if edges == nil {
		edges = make(map[Vertex][]Edge)
	}

	return Adjacency{edges: edges}
}

// Len returns the number of vertices present in the index.
func (a Adjacency) Len() int { return len(a.edges) }

// EdgeCount returns the total number of edges held by the index.
func (a Adjacency) EdgeCount() int {
	var n int
	for _, list := range a.edges {
		n += len(list)
	}

	return n
}

// Has reports whether v has an entry (possibly empty) in the index.
func (a Adjacency) Has(v Vertex) bool {
	_, exists := a.edges[v]

	return exists
}

// Edges returns the outgoing edges of v and whether v has an entry in the
// index. The returned slice is shared and must be treated as read-only.
func (a Adjacency) Edges(v Vertex) ([]Edge, bool) {
	list, exists := a.edges[v]

	return list, exists
}

// ForEach invokes visitFn for every vertex entry of the index. Iteration
// order is unspecified.
func (a Adjacency) ForEach(visitFn func(v Vertex, edges []Edge)) {
	for v, list := range a.edges {
		visitFn(v, list)
	}
}

// Weight returns the weight of the first edge from src to dst.
func (a Adjacency) Weight(src, dst Vertex) (int, error) {
	for _, e := range a.edges[src] {
		if e.dst == dst {
			return e.weight, nil
		}
	}

	return 0, fmt.Errorf("weight %s->%s: %w", src, dst, ErrEdgeNotFound)
}

// RemoveVertex returns a new index in which every edge whose destination is
// v has been dropped. The outgoing edges of v itself are left untouched.
func (a Adjacency) RemoveVertex(v Vertex) Adjacency {
	edited := make(map[Vertex][]Edge, len(a.edges))

	for src, list := range a.edges {
		filtered := make([]Edge, 0, len(list))
		for _, e := range list {
			if e.dst != v {
				filtered = append(filtered, e)
			}
		}

		edited[src] = filtered
	}

	return Adjacency{edges: edited}
}
