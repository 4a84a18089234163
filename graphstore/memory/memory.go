package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mycok/pathfinder/graphstore"
)

// Static and compile-time check to ensure InMemoryStore implements
// Store interface.
var _ graphstore.Store = (*InMemoryStore)(nil)

// InMemoryStore implements an in-memory vertex and edge store that can be
// concurrently accessed by multiple clients.
type InMemoryStore struct {
	mu            sync.RWMutex
	vertices      map[uuid.UUID]*graphstore.Vertex
	edges         map[uuid.UUID]*graphstore.Edge
	vertexNames   map[string]*graphstore.Vertex
	vertexToEdges map[uuid.UUID][]uuid.UUID // Maps vertices to the edges originating from them.
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		vertices:      make(map[uuid.UUID]*graphstore.Vertex),
		edges:         make(map[uuid.UUID]*graphstore.Edge),
		vertexNames:   make(map[string]*graphstore.Vertex),
		vertexToEdges: make(map[uuid.UUID][]uuid.UUID),
	}
}

// UpsertVertex creates a new vertex or, if a vertex with the same name
// exists, copies the existing vertex into v.
func (s *InMemoryStore) UpsertVertex(v *graphstore.Vertex) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.vertexNames[v.Name]; exists {
		*v = *existing

		return nil
	}

	// Run the ID generator until an unused ID is found.
	for {
		v.ID = uuid.New()
		if _, exists := s.vertices[v.ID]; !exists {
			break
		}
	}

	v.CreatedAt = time.Now().UTC()

	// Keep a private copy so callers cannot mutate stored data.
	vCopy := new(graphstore.Vertex)
	*vCopy = *v

	s.vertices[vCopy.ID] = vCopy
	s.vertexNames[vCopy.Name] = vCopy

	return nil
}

// FindVertex performs a vertex lookup by id.
func (s *InMemoryStore) FindVertex(id uuid.UUID) (*graphstore.Vertex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, exists := s.vertices[id]
	if !exists {
		return nil, fmt.Errorf("find vertex: %w", graphstore.ErrNotFound)
	}

	vCopy := new(graphstore.Vertex)
	*vCopy = *v

	return vCopy, nil
}

// Vertices returns an iterator over every stored vertex.
func (s *InMemoryStore) Vertices() (graphstore.VertexIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*graphstore.Vertex, 0, len(s.vertices))
	for _, v := range s.vertices {
		list = append(list, v)
	}

	return &vertexIterator{store: s, vertices: list}, nil
}

// UpsertEdge creates a new edge or updates the weight of the existing edge
// between the same pair of vertices.
func (s *InMemoryStore) UpsertEdge(e *graphstore.Edge) error {
	if e.Weight < 0 {
		return fmt.Errorf("upsert edge: %w", graphstore.ErrNegativeWeight)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, srcExists := s.vertices[e.Src]
	_, dstExists := s.vertices[e.Dst]
	if !srcExists || !dstExists {
		return fmt.Errorf("upsert edge: %w", graphstore.ErrUnknownEdgeVertex)
	}

	for _, edgeID := range s.vertexToEdges[e.Src] {
		existing := s.edges[edgeID]
		if existing.Dst == e.Dst {
			existing.Weight = e.Weight
			existing.UpdatedAt = time.Now().UTC()
			*e = *existing

			return nil
		}
	}

	for {
		e.ID = uuid.New()
		if _, exists := s.edges[e.ID]; !exists {
			break
		}
	}

	e.UpdatedAt = time.Now().UTC()
	eCopy := new(graphstore.Edge)
	*eCopy = *e

	s.edges[eCopy.ID] = eCopy
	s.vertexToEdges[eCopy.Src] = append(s.vertexToEdges[eCopy.Src], eCopy.ID)

	return nil
}

// RemoveEdgesTo removes every edge whose destination is dst.
func (s *InMemoryStore) RemoveEdgesTo(dst uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for src, list := range s.vertexToEdges {
		var kept []uuid.UUID

		for _, id := range list {
			if s.edges[id].Dst == dst {
				delete(s.edges, id)

				continue
			}

			kept = append(kept, id)
		}

		s.vertexToEdges[src] = kept
	}

	return nil
}

// Edges returns an iterator over every stored edge.
func (s *InMemoryStore) Edges() (graphstore.EdgeIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*graphstore.Edge, 0, len(s.edges))
	for _, e := range s.edges {
		list = append(list, e)
	}

	return &edgeIterator{store: s, edges: list}, nil
}
