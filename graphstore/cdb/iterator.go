package cdb

import (
	"database/sql"
	"fmt"

	"github.com/mycok/pathfinder/graphstore"
)

// Static and compile-time check to ensure both iterators implement the
// graphstore iterator interfaces.
var (
	_ graphstore.VertexIterator = (*vertexIterator)(nil)
	_ graphstore.EdgeIterator   = (*edgeIterator)(nil)
)

// vertexIterator wraps the sql.Rows returned by a vertex query.
type vertexIterator struct {
	rows    *sql.Rows
	lastErr error
	vertex  *graphstore.Vertex
}

// Next loads the next item, returns false when no more rows
// are available or when an error occurs.
func (i *vertexIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	v := new(graphstore.Vertex)
	if i.lastErr = i.rows.Scan(&v.ID, &v.Name, &v.CreatedAt); i.lastErr != nil {
		return false
	}

	// Scanned timestamps may come back in the server's location.
	v.CreatedAt = v.CreatedAt.UTC()
	i.vertex = v

	return true
}

// Error returns the last error encountered by the iterator.
func (i *vertexIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}

	return i.rows.Err()
}

// Close releases any resources allocated to the iterator.
func (i *vertexIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return fmt.Errorf("vertex iterator: %w", err)
	}

	return nil
}

// Vertex returns the currently fetched vertex.
func (i *vertexIterator) Vertex() *graphstore.Vertex {
	return i.vertex
}

// edgeIterator wraps the sql.Rows returned by an edge query.
type edgeIterator struct {
	rows    *sql.Rows
	lastErr error
	edge    *graphstore.Edge
}

// Next advances the iterator. When no items are available or when an
// error occurs, calls to Next() return false.
func (i *edgeIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	e := new(graphstore.Edge)
	if i.lastErr = i.rows.Scan(
		&e.ID, &e.Src, &e.Dst, &e.Weight, &e.UpdatedAt,
	); i.lastErr != nil {

		return false
	}

	e.UpdatedAt = e.UpdatedAt.UTC()
	i.edge = e

	return true
}

// Error returns the last error recorded by the iterator.
func (i *edgeIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}

	return i.rows.Err()
}

// Close releases any resources linked to the iterator.
func (i *edgeIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return fmt.Errorf("edge iterator: %w", err)
	}

	return nil
}

// Edge returns the currently fetched edge.
func (i *edgeIterator) Edge() *graphstore.Edge {
	return i.edge
}
