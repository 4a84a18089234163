package graphtest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"github.com/mycok/pathfinder/graph"
	"github.com/mycok/pathfinder/graphstore"
)

// StoreSuite defines a set of re-usable tests that can be executed against
// any concrete type that implements the graphstore.Store interface.
type StoreSuite struct {
	s graphstore.Store
}

// SetStore configures the test-suite to run all tests against s.
func (s *StoreSuite) SetStore(store graphstore.Store) {
	s.s = store
}

// TestVertexUpsert verifies that vertices are unique by name.
func (s *StoreSuite) TestVertexUpsert(c *check.C) {
	initial := &graphstore.Vertex{Name: "Node_0"}
	c.Assert(s.s.UpsertVertex(initial), check.IsNil)
	c.Assert(initial.ID, check.Not(check.Equals), uuid.Nil, check.Commentf(
		"expected an ID to be assigned to the new vertex",
	))

	again := &graphstore.Vertex{Name: "Node_0"}
	c.Assert(s.s.UpsertVertex(again), check.IsNil)
	c.Assert(again.ID, check.Equals, initial.ID, check.Commentf("ID changed during upsert"))

	other := &graphstore.Vertex{Name: "Node_1"}
	c.Assert(s.s.UpsertVertex(other), check.IsNil)
	c.Assert(other.ID, check.Not(check.Equals), initial.ID)
}

// TestFindVertex verifies the vertex lookup logic.
func (s *StoreSuite) TestFindVertex(c *check.C) {
	v := &graphstore.Vertex{Name: "A"}
	c.Assert(s.s.UpsertVertex(v), check.IsNil)

	found, err := s.s.FindVertex(v.ID)
	c.Assert(err, check.IsNil)
	c.Assert(found.ID, check.Equals, v.ID)
	c.Assert(found.Name, check.Equals, "A")

	_, err = s.s.FindVertex(uuid.Nil)
	c.Assert(errors.Is(err, graphstore.ErrNotFound), check.Equals, true)
}

// TestEdgeUpsert verifies the edge upsert logic.
func (s *StoreSuite) TestEdgeUpsert(c *check.C) {
	ids := s.upsertVertices(c, 3)

	e := &graphstore.Edge{Src: ids[0], Dst: ids[1], Weight: 7}
	c.Assert(s.s.UpsertEdge(e), check.IsNil)
	c.Assert(e.ID, check.Not(check.Equals), uuid.Nil, check.Commentf(
		"expected an ID to be assigned to the new edge",
	))
	c.Assert(e.UpdatedAt.IsZero(), check.Equals, false, check.Commentf(
		"UpdatedAt field not set",
	))

	// Upserting the same pair replaces the weight.
	forUpdate := &graphstore.Edge{Src: ids[0], Dst: ids[1], Weight: 3}
	c.Assert(s.s.UpsertEdge(forUpdate), check.IsNil)
	c.Assert(forUpdate.ID, check.Equals, e.ID, check.Commentf("edge ID changed while upserting"))

	edges := s.collectEdges(c)
	c.Assert(edges, check.HasLen, 1)
	c.Assert(edges[0].Weight, check.Equals, 3)

	invalid := &graphstore.Edge{Src: ids[0], Dst: uuid.New(), Weight: 1}
	err := s.s.UpsertEdge(invalid)
	c.Assert(errors.Is(err, graphstore.ErrUnknownEdgeVertex), check.Equals, true)

	negative := &graphstore.Edge{Src: ids[1], Dst: ids[2], Weight: -1}
	err = s.s.UpsertEdge(negative)
	c.Assert(errors.Is(err, graphstore.ErrNegativeWeight), check.Equals, true)
}

// TestRemoveEdgesTo verifies that only edges leading to the removed vertex
// are dropped.
func (s *StoreSuite) TestRemoveEdgesTo(c *check.C) {
	ids := s.upsertVertices(c, 3)

	for _, pair := range [][2]int{{0, 1}, {2, 1}, {1, 2}, {0, 2}} {
		e := &graphstore.Edge{Src: ids[pair[0]], Dst: ids[pair[1]], Weight: 1}
		c.Assert(s.s.UpsertEdge(e), check.IsNil)
	}

	c.Assert(s.s.RemoveEdgesTo(ids[1]), check.IsNil)

	edges := s.collectEdges(c)
	c.Assert(edges, check.HasLen, 2)
	for _, e := range edges {
		c.Assert(e.Dst, check.Equals, ids[2])
	}
}

// TestConcurrentIterators ensures that multiple clients can concurrently
// iterate the store without causing data races.
func (s *StoreSuite) TestConcurrentIterators(c *check.C) {
	var (
		wg             sync.WaitGroup
		numOfIterators = 10
		numOfEdges     = 50
		ids            = s.upsertVertices(c, numOfEdges+1)
	)

	for i := 1; i <= numOfEdges; i++ {
		e := &graphstore.Edge{Src: ids[0], Dst: ids[i], Weight: i}
		c.Assert(s.s.UpsertEdge(e), check.IsNil)
	}

	wg.Add(numOfIterators)
	for i := 0; i < numOfIterators; i++ {
		go func(id int) {
			defer wg.Done()

			comment := check.Commentf("iterator %d", id)
			seen := make(map[uuid.UUID]bool)

			it, err := s.s.Edges()
			c.Assert(err, check.IsNil, comment)

			for it.Next() {
				e := it.Edge()
				c.Assert(seen[e.ID], check.Equals, false, comment)
				seen[e.ID] = true
			}

			c.Assert(it.Error(), check.IsNil, comment)
			c.Assert(it.Close(), check.IsNil, comment)
			c.Assert(seen, check.HasLen, numOfEdges, comment)
		}(i)
	}

	doneCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneCh)
	}()

	select {
	case <-doneCh:
	case <-time.After(10 * time.Second):
		c.Fatal("Exceeded set test execution time: timed out!")
	}
}

// TestImportAndLoad round-trips a graph through the store.
func (s *StoreSuite) TestImportAndLoad(c *check.C) {
	g, err := Diamond()
	c.Assert(err, check.IsNil)

	c.Assert(graphstore.Import(s.s, g), check.IsNil)
	// Importing twice must not duplicate anything.
	c.Assert(graphstore.Import(s.s, g), check.IsNil)

	loaded, err := graphstore.Load(s.s)
	c.Assert(err, check.IsNil)
	c.Assert(loaded.Vertices(), check.DeepEquals, g.Vertices())
	c.Assert(loaded.Edges(), check.HasLen, len(g.Edges()))

	adj := loaded.Adjacency()
	for _, e := range g.Edges() {
		w, err := adj.Weight(e.Source(), e.Destination())
		c.Assert(err, check.IsNil)
		c.Assert(w, check.Equals, e.Weight(), check.Commentf("edge %s", e))
	}

	edges, _ := adj.Edges(graph.NewVertex("E"))
	c.Assert(edges, check.HasLen, 0)
}

func (s *StoreSuite) upsertVertices(c *check.C, n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		v := &graphstore.Vertex{Name: fmt.Sprint(i)}
		c.Assert(s.s.UpsertVertex(v), check.IsNil)
		ids[i] = v.ID
	}

	return ids
}

func (s *StoreSuite) collectEdges(c *check.C) []*graphstore.Edge {
	it, err := s.s.Edges()
	c.Assert(err, check.IsNil)

	var edges []*graphstore.Edge
	for it.Next() {
		edges = append(edges, it.Edge())
	}

	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	return edges
}
