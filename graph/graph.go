/*
	graph package provides the immutable vertex and edge model consumed by
	the shortest path engines together with its cached adjacency index.
*/

package graph

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Graph owns a vertex list and an edge list. Both are exposed read-only;
// the adjacency index is derived from them lazily and cached.
type Graph struct {
	vertices []Vertex
	edges    []Edge
	index    map[Vertex]int

	adjOnce sync.Once
	adj     Adjacency
}

// New creates a graph from the provided vertices and edges. Every edge must
// connect known vertices and carry a non-negative weight.
func New(vertices []Vertex, edges []Edge) (*Graph, error) {
	g := &Graph{
		vertices: append([]Vertex(nil), vertices...),
		edges:    append([]Edge(nil), edges...),
		index:    make(map[Vertex]int, len(vertices)),
	}

	var err error

	for i, v := range g.vertices {
		if _, exists := g.index[v]; exists {
			err = multierror.Append(err, fmt.Errorf("vertex %q: %w", v, ErrDuplicateVertex))

			continue
		}

		g.index[v] = i
	}

	for _, e := range g.edges {
		if e.weight < 0 {
			err = multierror.Append(err, fmt.Errorf("edge %q: %w", e.id, ErrNegativeWeight))
		}

		if _, exists := g.index[e.src]; !exists {
			err = multierror.Append(err, fmt.Errorf("edge %q source %q: %w", e.id, e.src, ErrUnknownVertex))
		}

		if _, exists := g.index[e.dst]; !exists {
			err = multierror.Append(err, fmt.Errorf("edge %q destination %q: %w", e.id, e.dst, ErrUnknownVertex))
		}
	}

	if err != nil {
		return nil, fmt.Errorf("graph validation failed: %w", err)
	}

	return g, nil
}

// Clone returns a copy of the graph that shares no mutable state with g.
func (g *Graph) Clone() *Graph {
	clone, _ := New(g.vertices, g.edges)

	return clone
}

// Vertices returns a copy of the vertex list.
func (g *Graph) Vertices() []Vertex {
	return append([]Vertex(nil), g.vertices...)
}

// Edges returns a copy of the edge list.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// VertexCount returns the number of vertices in the graph.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// Vertex resolves an index into the graph's vertex list.
func (g *Graph) Vertex(i int) (Vertex, error) {
	if i < 0 || i >= len(g.vertices) {
		return Vertex{}, fmt.Errorf("vertex %d of %d: %w", i, len(g.vertices), ErrIndexOutOfRange)
	}

	return g.vertices[i], nil
}

// IndexOf returns the position of v in the vertex list.
func (g *Graph) IndexOf(v Vertex) (int, error) {
	i, exists := g.index[v]
	if !exists {
		return -1, fmt.Errorf("index of %q: %w", v, ErrUnknownVertex)
	}

	return i, nil
}

// Adjacency returns the adjacency index, building it on first use. Every
// vertex receives an entry and edges keep their input order.
func (g *Graph) Adjacency() Adjacency {
	g.adjOnce.Do(func() {
		edges := make(map[Vertex][]Edge, len(g.vertices))
		for _, v := range g.vertices {
			edges[v] = nil
		}

		for _, e := range g.edges {
			edges[e.src] = append(edges[e.src], e)
		}

		g.adj = NewAdjacency(edges)
	})

	return g.adj
}
