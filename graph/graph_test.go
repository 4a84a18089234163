package graph_test

import (
	"testing"

	check "gopkg.in/check.v1"

	"github.com/mycok/pathfinder/graph"
	"github.com/mycok/pathfinder/graph/graphtest"
)

var _ = check.Suite(new(graphTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type graphTestSuite struct{}

func (s *graphTestSuite) TestAdjacencyKeepsInputOrder(c *check.C) {
	g, err := graphtest.Diamond()
	c.Assert(err, check.IsNil)

	adj := g.Adjacency()
	c.Assert(adj.Len(), check.Equals, 5)
	c.Assert(adj.EdgeCount(), check.Equals, 5)

	edges, exists := adj.Edges(graph.NewVertex("B"))
	c.Assert(exists, check.Equals, true)
	c.Assert(edgeIDs(edges), check.DeepEquals, []string{"BC", "BD"})

	// Vertices without outgoing edges still own an entry.
	edges, exists = adj.Edges(graph.NewVertex("E"))
	c.Assert(exists, check.Equals, true)
	c.Assert(edges, check.HasLen, 0)

	_, exists = adj.Edges(graph.NewVertex("Z"))
	c.Assert(exists, check.Equals, false)
}

func (s *graphTestSuite) TestAdjacencyIsCached(c *check.C) {
	g, err := graphtest.Diamond()
	c.Assert(err, check.IsNil)

	first, _ := g.Adjacency().Edges(graph.NewVertex("A"))
	second, _ := g.Adjacency().Edges(graph.NewVertex("A"))
	c.Assert(&first[0], check.Equals, &second[0])
}

func (s *graphTestSuite) TestRemoveVertexDropsIncomingEdgesOnly(c *check.C) {
	g, err := graphtest.Diamond()
	c.Assert(err, check.IsNil)

	b := graph.NewVertex("B")
	adj := g.Adjacency()
	edited := adj.RemoveVertex(b)

	aEdges, _ := edited.Edges(graph.NewVertex("A"))
	c.Assert(edgeIDs(aEdges), check.DeepEquals, []string{"AC"})

	bEdges, _ := edited.Edges(b)
	c.Assert(edgeIDs(bEdges), check.DeepEquals, []string{"BC", "BD"})

	// The original index is left untouched.
	aEdges, _ = adj.Edges(graph.NewVertex("A"))
	c.Assert(edgeIDs(aEdges), check.DeepEquals, []string{"AB", "AC"})
}

func (s *graphTestSuite) TestWeightLookup(c *check.C) {
	g, err := graphtest.Diamond()
	c.Assert(err, check.IsNil)

	w, err := g.Adjacency().Weight(graph.NewVertex("B"), graph.NewVertex("D"))
	c.Assert(err, check.IsNil)
	c.Assert(w, check.Equals, 5)

	_, err = g.Adjacency().Weight(graph.NewVertex("D"), graph.NewVertex("A"))
	c.Assert(err, check.ErrorMatches, "weight D->A: no edge between vertices")
}

func (s *graphTestSuite) TestVertexIndexBounds(c *check.C) {
	g, err := graphtest.Diamond()
	c.Assert(err, check.IsNil)

	v, err := g.Vertex(2)
	c.Assert(err, check.IsNil)
	c.Assert(v, check.Equals, graph.NewVertex("C"))

	idx, err := g.IndexOf(v)
	c.Assert(err, check.IsNil)
	c.Assert(idx, check.Equals, 2)

	_, err = g.Vertex(5)
	c.Assert(err, check.ErrorMatches, "vertex 5 of 5: vertex index out of range")

	_, err = g.Vertex(-1)
	c.Assert(err, check.NotNil)
}

func (s *graphTestSuite) TestValidation(c *check.C) {
	a, b := graph.NewVertex("A"), graph.NewVertex("B")

	_, err := graph.New(
		[]graph.Vertex{a, b, a},
		[]graph.Edge{
			graph.NewEdge("AB", a, b, -1),
			graph.NewEdge("AX", a, graph.NewVertex("X"), 3),
		},
	)
	c.Assert(err, check.ErrorMatches, "(?ms).*duplicate vertex id.*")
	c.Assert(err, check.ErrorMatches, "(?ms).*negative edge weight.*")
	c.Assert(err, check.ErrorMatches, `(?ms).*destination "X": vertex is not part of the graph.*`)
}

func (s *graphTestSuite) TestReadOnlyExposure(c *check.C) {
	g, err := graphtest.Diamond()
	c.Assert(err, check.IsNil)

	vertices := g.Vertices()
	vertices[0] = graph.NewVertex("mutated")

	v, err := g.Vertex(0)
	c.Assert(err, check.IsNil)
	c.Assert(v.ID(), check.Equals, "A")
	c.Assert(g.Clone().Edges(), check.DeepEquals, g.Edges())
}

func (s *graphTestSuite) TestLanesAndIDInteger(c *check.C) {
	vertices := []graph.Vertex{graph.NewVertex("Node_0"), graph.NewVertex("Node_17")}
	edges := graph.AddLane(nil, vertices, 0, 1, 100)

	c.Assert(edges, check.HasLen, 2)
	c.Assert(edges[0].ID(), check.Equals, "Lane_0_1")
	c.Assert(edges[1].ID(), check.Equals, "Lane_1_0")
	c.Assert(edges[1].Source(), check.Equals, vertices[1])
	c.Assert(edges[1].Destination(), check.Equals, vertices[0])

	c.Assert(vertices[1].IDInteger(), check.Equals, 17)
	c.Assert(graph.NewVertex("no-digits").IDInteger(), check.Equals, -1)
}

func (s *graphTestSuite) TestGridShape(c *check.C) {
	g, err := graphtest.Grid(3, 2)
	c.Assert(err, check.IsNil)
	c.Assert(g.VertexCount(), check.Equals, 6)

	// Node_4 is the middle cell of the second row: left, up, up-left and
	// up-right lanes from it plus the lane from its right neighbour.
	edges, _ := g.Adjacency().Edges(graph.NewVertex("Node_4"))
	c.Assert(edges, check.HasLen, 5)
}

func edgeIDs(edges []graph.Edge) []string {
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.ID())
	}

	return ids
}
