package shortestpath

import (
	"context"
	"errors"
	"math/rand"
	"runtime"

	check "gopkg.in/check.v1"

	"github.com/mycok/pathfinder/bsp"
	"github.com/mycok/pathfinder/graph"
	"github.com/mycok/pathfinder/graph/graphtest"
	"github.com/mycok/pathfinder/partition"
)

var _ = check.Suite(new(parallelInternalTestSuite))

type parallelInternalTestSuite struct{}

func (s *parallelInternalTestSuite) TestLeavesMirrorPartitionTree(c *check.C) {
	g, err := graphtest.Grid(5, 5)
	c.Assert(err, check.IsNil)

	p, err := NewParallel(g, Config{Depth: 3, Rand: rand.New(rand.NewSource(1))})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(p.Terminate(), check.IsNil) }()

	c.Assert(p.Partitions(), check.Equals, 8)

	parts := make([]graph.Adjacency, 0, len(p.leaves))
	for i, l := range p.leaves {
		c.Assert(l.index, check.Equals, i)
		c.Assert(l.adj, check.DeepEquals, p.tree.Leaves()[i].Adjacency)
		parts = append(parts, l.adj)
	}

	c.Assert(partition.Verify(g.Adjacency(), parts...), check.IsNil)
}

func (s *parallelInternalTestSuite) TestRemoveVertexKeepsPartitionInvariant(c *check.C) {
	g, err := graphtest.Grid(4, 4)
	c.Assert(err, check.IsNil)

	p, err := NewParallel(g, Config{Depth: 2, Rand: rand.New(rand.NewSource(2))})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(p.Terminate(), check.IsNil) }()

	c.Assert(p.RemoveVertex(5), check.IsNil)

	parts := make([]graph.Adjacency, 0, len(p.leaves))
	for _, l := range p.leaves {
		parts = append(parts, l.adj)
	}

	edited := g.Adjacency().RemoveVertex(p.vertices[5])
	c.Assert(partition.Verify(edited, parts...), check.IsNil)
}

func (s *parallelInternalTestSuite) TestMissingAdjacencySurfaces(c *check.C) {
	g, err := graphtest.Diamond()
	c.Assert(err, check.IsNil)

	p, err := NewParallel(g, Config{Depth: 2, Rand: rand.New(rand.NewSource(3))})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(p.Terminate(), check.IsNil) }()

	// Corrupt one partition: it no longer knows about any vertex.
	p.leaves[2].adj = graph.NewAdjacency(nil)

	err = p.ExecuteIndex(context.TODO(), 0)
	c.Assert(errors.Is(err, ErrMissingAdjacency), check.Equals, true)
	c.Assert(err, check.ErrorMatches, `relax "A" in partition 2: vertex has no adjacency entry`)
	c.Assert(p.Result(), check.IsNil)
}

func (s *parallelInternalTestSuite) TestTerminateDuringRun(c *check.C) {
	g, err := graphtest.Grid(6, 6)
	c.Assert(err, check.IsNil)

	var (
		reached = make(chan struct{})
		release = make(chan struct{})
	)

	p, err := NewParallel(g, Config{
		Depth: 2,
		Rand:  rand.New(rand.NewSource(4)),
		OnRound: func(stats RoundStats) {
			if stats.Round == 3 {
				close(reached)
				<-release
			}
		},
	})
	c.Assert(err, check.IsNil)

	execErrChan := make(chan error, 1)
	go func() { execErrChan <- p.ExecuteIndex(context.TODO(), 0) }()

	<-reached
	terminateErrChan := make(chan error, 1)
	go func() { terminateErrChan <- p.Terminate() }()

	// Hold the round open until the proposal barrier is broken so the run
	// cannot complete normally.
	for !p.proposed.IsBroken() {
		runtime.Gosched()
	}
	close(release)

	c.Assert(errors.Is(<-execErrChan, ErrTerminated), check.Equals, true)
	c.Assert(<-terminateErrChan, check.IsNil)
	c.Assert(errors.Is(p.pool.Submit(func() {}), bsp.ErrPoolClosed), check.Equals, true)
}
