package memory

import "github.com/mycok/pathfinder/graphstore"

// Static and compile-time check to ensure both iterators implement the
// graphstore iterator interfaces.
var (
	_ graphstore.VertexIterator = (*vertexIterator)(nil)
	_ graphstore.EdgeIterator   = (*edgeIterator)(nil)
)

// vertexIterator is a graphstore.VertexIterator implementation for the
// in-memory store.
type vertexIterator struct {
	// store provides access to the store's mutex.
	store        *InMemoryStore
	vertices     []*graphstore.Vertex
	currentIndex int
}

// Next loads the next item, returns false when no more vertices
// are available.
func (i *vertexIterator) Next() bool {
	if i.currentIndex >= len(i.vertices) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error encountered by the iterator.
func (i *vertexIterator) Error() error {
	return nil
}

// Close releases any resources allocated to the iterator.
func (i *vertexIterator) Close() error {
	return nil
}

// Vertex returns a copy of the currently fetched vertex.
func (i *vertexIterator) Vertex() *graphstore.Vertex {
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()

	v := new(graphstore.Vertex)
	*v = *i.vertices[i.currentIndex-1]

	return v
}

// edgeIterator is a graphstore.EdgeIterator implementation for the in-memory
// store.
type edgeIterator struct {
	store        *InMemoryStore
	edges        []*graphstore.Edge
	currentIndex int
}

// Next advances the iterator. When no edges are available calls to Next()
// return false.
func (i *edgeIterator) Next() bool {
	if i.currentIndex >= len(i.edges) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error recorded by the iterator.
func (i *edgeIterator) Error() error {
	return nil
}

// Close releases any resources linked to the iterator.
func (i *edgeIterator) Close() error {
	return nil
}

// Edge returns a copy of the currently fetched edge. Weights may be updated
// concurrently, hence the read lock.
func (i *edgeIterator) Edge() *graphstore.Edge {
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()

	e := new(graphstore.Edge)
	*e = *i.edges[i.currentIndex-1]

	return e
}
