package graph

import "errors"

var (
	// ErrIndexOutOfRange is returned when a vertex index does not resolve to
	// a vertex of the graph.
	ErrIndexOutOfRange = errors.New("vertex index out of range")

	// ErrUnknownVertex is returned when a vertex is not part of the graph.
	ErrUnknownVertex = errors.New("vertex is not part of the graph")

	// ErrDuplicateVertex is returned by New when two vertices share an id.
	ErrDuplicateVertex = errors.New("duplicate vertex id")

	// ErrNegativeWeight is returned by New when an edge carries a weight
	// below zero.
	ErrNegativeWeight = errors.New("negative edge weight")

	// ErrEdgeNotFound is returned when the adjacency index holds no edge
	// between two vertices.
	ErrEdgeNotFound = errors.New("no edge between vertices")
)
