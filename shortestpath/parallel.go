package shortestpath

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mycok/pathfinder/bsp"
	"github.com/mycok/pathfinder/bsp/aggregator"
	"github.com/mycok/pathfinder/graph"
	"github.com/mycok/pathfinder/partition"
)

// run is the state shared by the leaves of a single Execute call. The
// settled set, the shared maps and the broadcast are only written by barrier
// actions, while every leaf is parked on the barrier.
type run struct {
	id     uuid.UUID
	ctx    context.Context
	source int

	settled   []bool
	dist      []int
	pred      []int
	settleSeq []int
	order     []int

	winner    candidate
	finished  bool
	broadcast []candidate
	rounds    int

	relaxations aggregator.IntAccumulator

	pending int64
	done    chan struct{}

	errOnce sync.Once
	err     error
}

// Parallel computes shortest paths with one worker per partition of the
// adjacency index. Workers agree on a single vertex to settle per round.
type Parallel struct {
	results

	mu         sync.Mutex
	cfg        Config
	tree       *partition.Tree
	root       *task
	leaves     []*leaf
	pool       *bsp.Pool
	proposed   *bsp.Barrier
	relaxed    *bsp.Barrier
	terminated int32

	// current is the run the barrier actions operate on.
	current *run
}

// NewParallel partitions g's adjacency index into 2^cfg.Depth partitions and
// starts one pool worker per partition. Callers must invoke Terminate when
// they are done with the engine.
func NewParallel(g *graph.Graph, cfg Config) (*Parallel, error) {
	if g == nil {
		return nil, errNilGraph
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("shortest path config validation failed: %w", err)
	}

	tree, err := partition.NewTree(g.Adjacency(), cfg.Depth, cfg.Rand)
	if err != nil {
		return nil, err
	}

	p := &Parallel{
		results: newResults(g),
		cfg:     cfg,
		tree:    tree,
	}
	p.root = newTaskTree(tree, len(p.vertices), &p.leaves)

	if p.proposed, err = bsp.NewBarrier(len(p.leaves), p.selectWinner); err != nil {
		return nil, err
	}

	if p.relaxed, err = bsp.NewBarrier(len(p.leaves), p.completeRound); err != nil {
		return nil, err
	}

	if p.pool, err = bsp.NewPool(bsp.PoolConfig{
		Workers:    cfg.Workers,
		MinWorkers: len(p.leaves),
		Logger:     cfg.Logger,
	}); err != nil {
		return nil, err
	}

	cfg.Logger.WithFields(logrus.Fields{
		"partitions": len(p.leaves),
		"workers":    cfg.Workers,
		"vertices":   len(p.vertices),
	}).Debug("partitioned graph")

	return p, nil
}

// Partitions returns the number of leaf partitions.
func (p *Parallel) Partitions() int { return len(p.leaves) }

// Execute computes the shortest paths from source to every reachable vertex.
func (p *Parallel) Execute(ctx context.Context, source graph.Vertex) error {
	i, err := p.g.IndexOf(source)
	if err != nil {
		return err
	}

	return p.ExecuteIndex(ctx, i)
}

// ExecuteIndex computes the shortest paths from the vertex with ordinal i. It
// blocks until every partition has finished the run.
func (p *Parallel) ExecuteIndex(ctx context.Context, i int) error {
	source, err := p.g.Vertex(i)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isTerminated() {
		return ErrTerminated
	}

	r := p.newRun(ctx, i)
	p.current = r
	p.proposed.Reset()
	p.relaxed.Reset()

	logger := p.cfg.Logger.WithFields(logrus.Fields{
		"run_id": r.id,
		"source": source,
		"engine": "parallel",
	})
	logger.Debug("starting run")
	started := p.cfg.Clock.Now()

	if err := p.root.resetAndRun(func(l *leaf) error {
		if l.index == 0 {
			l.seed(i)
		}

		if err := p.pool.Submit(func() { p.runLeaf(r, l) }); err != nil {
			// The leaf never started, so account for it here.
			p.fail(r, fmt.Errorf("dispatch partition %d: %w", l.index, err))
			p.leafDone(r)

			return err
		}

		return nil
	}); err != nil {
		logger.WithError(err).Warn("dispatching partitions failed")
	}

	select {
	case <-r.done:
	case <-ctx.Done():
		p.fail(r, ctx.Err())
		<-r.done
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if r.err != nil {
		if p.isTerminated() {
			return ErrTerminated
		}

		logger.WithError(r.err).Error("run failed")

		return r.err
	}

	res := &Result{
		source:   i,
		vertices: p.vertices,
		index:    p.index,
		dist:     r.dist,
		pred:     r.pred,
		order:    r.order,
		stats: Stats{
			RunID:       r.id,
			Rounds:      r.rounds,
			Settled:     len(r.order),
			Relaxations: r.relaxations.Get(),
			Elapsed:     p.cfg.Clock.Now().Sub(started),
		},
	}
	p.publish(res)

	logger.WithFields(logrus.Fields{
		"rounds":  res.stats.Rounds,
		"settled": res.stats.Settled,
		"elapsed": res.stats.Elapsed,
	}).Debug("completed run")

	return nil
}

// RemoveVertex drops every edge leading to the vertex with ordinal i from
// every partition. The partition tree itself is kept.
func (p *Parallel) RemoveVertex(i int) error {
	v, err := p.g.Vertex(i)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isTerminated() {
		return ErrTerminated
	}

	for _, l := range p.leaves {
		l.adj = l.adj.RemoveVertex(v)
	}

	return nil
}

// Terminate aborts any in-flight run, releases the worker pool and renders
// the engine unusable. Results published earlier remain valid.
func (p *Parallel) Terminate() error {
	if !atomic.CompareAndSwapInt32(&p.terminated, 0, 1) {
		return nil
	}

	p.proposed.Break(ErrTerminated)
	p.relaxed.Break(ErrTerminated)

	return p.pool.Close()
}

func (p *Parallel) isTerminated() bool {
	return atomic.LoadInt32(&p.terminated) == 1
}

func (p *Parallel) newRun(ctx context.Context, source int) *run {
	n := len(p.vertices)
	r := &run{
		id:        uuid.New(),
		ctx:       ctx,
		source:    source,
		settled:   make([]bool, n),
		dist:      make([]int, n),
		pred:      make([]int, n),
		settleSeq: make([]int, n),
		order:     make([]int, 0, n),
		pending:   int64(len(p.leaves)),
		done:      make(chan struct{}),
	}

	for v := 0; v < n; v++ {
		r.dist[v] = unreachable
		r.pred[v] = noVertex
		r.settleSeq[v] = noVertex
	}

	return r
}

// runLeaf executes the round protocol for a single partition until no vertex
// is left to settle or the run fails.
func (p *Parallel) runLeaf(r *run, l *leaf) {
	defer p.leafDone(r)
	defer func() {
		if rec := recover(); rec != nil {
			p.fail(r, fmt.Errorf("partition %d panicked: %v", l.index, rec))
		}
	}()

	for {
		l.propose(r)

		if err := p.proposed.Await(); err != nil {
			p.fail(r, err)

			return
		}

		// finished is only written by the action of the barrier we just
		// passed, so every leaf observes the same value.
		if r.finished {
			if err := p.relaxed.Await(); err != nil {
				p.fail(r, err)
			}

			return
		}

		if err := l.relax(r, p.vertices, p.index); err != nil {
			p.fail(r, err)

			return
		}

		if err := p.relaxed.Await(); err != nil {
			p.fail(r, err)

			return
		}
	}
}

// selectWinner is the action of the proposal barrier. It settles the minimum
// proposal across all partitions and gathers the candidates discovered in
// the previous round so every partition can merge them.
func (p *Parallel) selectWinner() error {
	r := p.current
	if err := r.ctx.Err(); err != nil {
		return err
	}

	best := -1
	for i, l := range p.leaves {
		if !l.hasProposal {
			continue
		}

		// Strict comparison keeps the lowest partition index on full ties.
		if best < 0 || l.proposal.Less(p.leaves[best].proposal) {
			best = i
		}
	}

	r.broadcast = r.broadcast[:0]
	for _, l := range p.leaves {
		r.broadcast = append(r.broadcast, l.scratch...)
	}

	if best < 0 {
		r.finished = true

		return nil
	}

	w := p.leaves[best].proposal
	r.winner = w
	r.settled[w.vertex] = true
	r.dist[w.vertex] = w.dist
	r.pred[w.vertex] = w.pred
	r.settleSeq[w.vertex] = len(r.order)
	r.order = append(r.order, w.vertex)

	return nil
}

// completeRound is the action of the relax barrier.
func (p *Parallel) completeRound() error {
	r := p.current
	if r.finished {
		return nil
	}

	r.rounds++
	if p.cfg.OnRound != nil {
		p.cfg.OnRound(RoundStats{
			Round:       r.rounds,
			Settled:     r.winner.vertex,
			Distance:    r.winner.dist,
			Relaxations: r.relaxations.Delta(),
		})
	}

	return nil
}

// fail records the first error of a run and breaks both barriers so that no
// partition stays parked.
func (p *Parallel) fail(r *run, err error) {
	r.errOnce.Do(func() { r.err = err })
	p.proposed.Break(err)
	p.relaxed.Break(err)
}

// leafDone signals the caller once the last partition leaves the run.
func (p *Parallel) leafDone(r *run) {
	if atomic.AddInt64(&r.pending, -1) == 0 {
		close(r.done)
	}
}
