package cdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mycok/pathfinder/graphstore"
)

var (
	// Schema creates the tables used by the store. It is safe to apply it
	// more than once.
	Schema = `
		CREATE TABLE IF NOT EXISTS vertices (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name STRING UNIQUE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS edges (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			src UUID NOT NULL REFERENCES vertices(id) ON DELETE CASCADE,
			dst UUID NOT NULL REFERENCES vertices(id) ON DELETE CASCADE,
			weight INT NOT NULL CHECK (weight >= 0),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			CONSTRAINT edge_links UNIQUE(src, dst)
		);
		`

	upsertVertexQuery = `
					INSERT INTO vertices (name)
					VALUES ($1)
					ON CONFLICT (name)
					DO UPDATE SET name=vertices.name
					RETURNING id, created_at
					`
	findVertexQuery = "SELECT id, name, created_at FROM vertices WHERE id=$1"
	vertexListQuery = "SELECT id, name, created_at FROM vertices"

	upsertEdgeQuery = `
					INSERT INTO edges (src, dst, weight, updated_at)
					VALUES ($1, $2, $3, NOW())
					ON CONFLICT (src, dst)
					DO UPDATE SET weight=$3, updated_at=NOW()
					RETURNING id, updated_at
					`
	edgeListQuery      = "SELECT id, src, dst, weight, updated_at FROM edges"
	removeEdgesToQuery = "DELETE FROM edges WHERE dst=$1"
)

// Static and compile-time check to ensure CockroachDBStore implements
// Store interface.
var _ graphstore.Store = (*CockroachDBStore)(nil)

// CockroachDBStore implements a persistent vertex and edge store backed by
// a CockroachDB (or any PostgreSQL wire compatible) instance.
type CockroachDBStore struct {
	db *sql.DB
}

// NewCockroachDBStore returns a CockroachDBStore instance.
func NewCockroachDBStore(dsn string) (*CockroachDBStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &CockroachDBStore{db}, nil
}

// EnsureSchema applies Schema.
func (s *CockroachDBStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}

// Close terminates the connection to the database.
func (s *CockroachDBStore) Close() error {
	return s.db.Close()
}

// UpsertVertex creates a new vertex or loads the id of the existing vertex
// with the same name into v.
func (s *CockroachDBStore) UpsertVertex(v *graphstore.Vertex) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := s.db.QueryRowContext(ctx, upsertVertexQuery, v.Name).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert vertex: %w", err)
	}

	v.CreatedAt = v.CreatedAt.UTC()

	return nil
}

// FindVertex performs a vertex lookup by id.
func (s *CockroachDBStore) FindVertex(id uuid.UUID) (*graphstore.Vertex, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v := new(graphstore.Vertex)

	err := s.db.QueryRowContext(ctx, findVertexQuery, id).Scan(&v.ID, &v.Name, &v.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("find vertex: %w", graphstore.ErrNotFound)
		}

		return nil, fmt.Errorf("find vertex: %w", err)
	}

	v.CreatedAt = v.CreatedAt.UTC()

	return v, nil
}

// Vertices returns an iterator over every stored vertex.
func (s *CockroachDBStore) Vertices() (graphstore.VertexIterator, error) {
	rows, err := s.db.Query(vertexListQuery)
	if err != nil {
		return nil, fmt.Errorf("vertices: %w", err)
	}

	return &vertexIterator{rows: rows}, nil
}

// UpsertEdge creates a new edge or updates the weight of the existing edge
// between the same pair of vertices.
func (s *CockroachDBStore) UpsertEdge(e *graphstore.Edge) error {
	if e.Weight < 0 {
		return fmt.Errorf("upsert edge: %w", graphstore.ErrNegativeWeight)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := s.db.QueryRowContext(
		ctx, upsertEdgeQuery, e.Src, e.Dst, e.Weight,
	).Scan(&e.ID, &e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolationError(err) {
			err = graphstore.ErrUnknownEdgeVertex
		}

		return fmt.Errorf("upsert edge: %w", err)
	}

	e.UpdatedAt = e.UpdatedAt.UTC()

	return nil
}

// RemoveEdgesTo removes every edge whose destination is dst.
func (s *CockroachDBStore) RemoveEdgesTo(dst uuid.UUID) error {
	if _, err := s.db.Exec(removeEdgesToQuery, dst); err != nil {
		return fmt.Errorf("remove edges to %s: %w", dst, err)
	}

	return nil
}

// Edges returns an iterator over every stored edge.
func (s *CockroachDBStore) Edges() (graphstore.EdgeIterator, error) {
	rows, err := s.db.Query(edgeListQuery)
	if err != nil {
		return nil, fmt.Errorf("edges: %w", err)
	}

	return &edgeIterator{rows: rows}, nil
}

// isForeignKeyViolationError returns true if error is a foreign key
// constraint violation error.
func isForeignKeyViolationError(err error) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}

	return pqErr.Code.Name() == "foreign_key_violation"
}
