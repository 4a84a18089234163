/*
	graphstore package defines the persistent sources of vertex and edge
	lists that the shortest path engines can be loaded from.
*/

package graphstore

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a vertex lookup fails.
	ErrNotFound = errors.New("not found")

	// ErrUnknownEdgeVertex is returned when an edge references a vertex
	// that is not present in the store.
	ErrUnknownEdgeVertex = errors.New("unknown source and/or destination for edge")

	// ErrNegativeWeight is returned when an edge is upserted with a negative
	// weight.
	ErrNegativeWeight = errors.New("edge weight must not be negative")
)

// Store should be implemented by vertex and edge data stores.
type Store interface {
	// UpsertVertex creates a new or updates an existing vertex. Vertices
	// are unique by name.
	UpsertVertex(v *Vertex) error

	// FindVertex performs a vertex lookup by id.
	FindVertex(id uuid.UUID) (*Vertex, error)

	// Vertices returns an iterator over every stored vertex.
	Vertices() (VertexIterator, error)

	// UpsertEdge creates a new or updates an existing edge. Edges are unique
	// by (Src, Dst); upserting an existing pair replaces its weight.
	UpsertEdge(e *Edge) error

	// RemoveEdgesTo removes every edge whose destination is dst.
	RemoveEdgesTo(dst uuid.UUID) error

	// Edges returns an iterator over every stored edge.
	Edges() (EdgeIterator, error)
}

// VertexIterator is implemented by types that iterate vertices.
type VertexIterator interface {
	Iterator

	// Vertex returns the currently fetched vertex object.
	Vertex() *Vertex
}

// EdgeIterator is implemented by types that iterate edges.
type EdgeIterator interface {
	Iterator

	// Edge returns the currently fetched edge object.
	Edge() *Edge
}

// Iterator should be embedded / implemented by types that require
// iteration functionality.
type Iterator interface {
	// Next loads the next item, returns false when no more items
	// are available or when an error occurs.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources allocated to the iterator.
	Close() error
}

// Vertex is the persisted form of a graph vertex.
type Vertex struct {
	ID        uuid.UUID // Vertex unique identifier
	Name      string    // Vertex identity within a graph.Graph
	CreatedAt time.Time
}

// Edge is the persisted form of a weighted directed edge from Src to Dst.
type Edge struct {
	ID        uuid.UUID
	Src       uuid.UUID
	Dst       uuid.UUID
	Weight    int
	UpdatedAt time.Time
}
