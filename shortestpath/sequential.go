package shortestpath

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mycok/pathfinder/bsp/queue"
	"github.com/mycok/pathfinder/graph"
)

// Sequential is a single-threaded lazy-deletion shortest path engine.
type Sequential struct {
	results

	mu  sync.Mutex
	cfg Config
	adj graph.Adjacency
}

// NewSequential returns a sequential engine for g. Only the Clock, OnRound
// and Logger settings of cfg are used.
func NewSequential(g *graph.Graph, cfg Config) (*Sequential, error) {
	if g == nil {
		return nil, errNilGraph
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("shortest path config validation failed: %w", err)
	}

	return &Sequential{
		results: newResults(g),
		cfg:     cfg,
		adj:     g.Adjacency(),
	}, nil
}

// Execute computes the shortest paths from source to every reachable vertex.
func (s *Sequential) Execute(ctx context.Context, source graph.Vertex) error {
	i, err := s.g.IndexOf(source)
	if err != nil {
		return err
	}

	return s.ExecuteIndex(ctx, i)
}

// ExecuteIndex computes the shortest paths from the vertex with ordinal i.
func (s *Sequential) ExecuteIndex(ctx context.Context, i int) error {
	source, err := s.g.Vertex(i)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		n       = len(s.vertices)
		runID   = uuid.New()
		started = s.cfg.Clock.Now()
		logger  = s.cfg.Logger.WithFields(logrus.Fields{
			"run_id": runID,
			"source": source,
			"engine": "sequential",
		})
		res = &Result{
			source:   i,
			vertices: s.vertices,
			index:    s.index,
			dist:     make([]int, n),
			pred:     make([]int, n),
			order:    make([]int, 0, n),
		}
		settled     = make([]bool, n)
		settleSeq   = make([]int, n)
		relaxations int64
		pq          = queue.NewPriorityQueue[candidate](n)
	)

	for v := 0; v < n; v++ {
		res.dist[v] = unreachable
		res.pred[v] = noVertex
	}

	logger.Debug("starting run")

	res.dist[i] = 0
	pq.Push(candidate{dist: 0, vertex: i, pred: noVertex, predSeq: noVertex})

	for {
		c, ok := pq.Pop()
		if !ok {
			break
		}

		if settled[c.vertex] {
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		settled[c.vertex] = true
		settleSeq[c.vertex] = len(res.order)
		res.pred[c.vertex] = c.pred
		res.order = append(res.order, c.vertex)

		edges, exists := s.adj.Edges(s.vertices[c.vertex])
		if !exists {
			return fmt.Errorf("relax %q: %w", s.vertices[c.vertex], ErrMissingAdjacency)
		}

		var improved int64
		for _, e := range edges {
			dst := s.index[e.Destination()]
			if settled[dst] {
				continue
			}

			if d := c.dist + e.Weight(); d < res.dist[dst] {
				res.dist[dst] = d
				pq.Push(candidate{dist: d, vertex: dst, pred: c.vertex, predSeq: settleSeq[c.vertex]})
				improved++
			}
		}

		relaxations += improved
		if s.cfg.OnRound != nil {
			s.cfg.OnRound(RoundStats{
				Round:       len(res.order),
				Settled:     c.vertex,
				Distance:    c.dist,
				Relaxations: improved,
			})
		}
	}

	res.stats = Stats{
		RunID:       runID,
		Rounds:      len(res.order),
		Settled:     len(res.order),
		Relaxations: relaxations,
		Elapsed:     s.cfg.Clock.Now().Sub(started),
	}
	s.publish(res)

	logger.WithFields(logrus.Fields{
		"settled": res.stats.Settled,
		"elapsed": res.stats.Elapsed,
	}).Debug("completed run")

	return nil
}

// RemoveVertex drops every edge leading to the vertex with ordinal i.
func (s *Sequential) RemoveVertex(i int) error {
	v, err := s.g.Vertex(i)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.adj = s.adj.RemoveVertex(v)
	s.mu.Unlock()

	return nil
}
