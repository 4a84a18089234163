package shortestpath

import (
	"fmt"

	"github.com/mycok/pathfinder/bsp/queue"
	"github.com/mycok/pathfinder/graph"
)

// leaf is the per-partition worker state of the parallel engine.
type leaf struct {
	index int
	adj   graph.Adjacency

	// dist holds the best distances this leaf knows about: its own
	// discoveries plus everything broadcast at previous rounds.
	dist  []int
	queue *queue.PriorityQueue[candidate]
	// scratch collects the candidates discovered by the latest relax so
	// they can be broadcast to the other leaves.
	scratch []candidate

	proposal    candidate
	hasProposal bool
}

func newLeaf(index int, adj graph.Adjacency, numOfVertices int) *leaf {
	return &leaf{
		index: index,
		adj:   adj,
		dist:  make([]int, numOfVertices),
		queue: queue.NewPriorityQueue[candidate](numOfVertices / 2),
	}
}

// reset clears the leaf ahead of a new run.
func (l *leaf) reset() {
	for i := range l.dist {
		l.dist[i] = unreachable
	}

	l.queue.Reset()
	l.scratch = l.scratch[:0]
	l.hasProposal = false
}

// seed installs the source candidate; only the entry leaf is seeded.
func (l *leaf) seed(source int) {
	l.dist[source] = 0
	l.queue.Push(candidate{dist: 0, vertex: source, pred: noVertex, predSeq: noVertex})
}

// propose discards stale queue heads and exposes the leaf's best candidate.
// A head is stale if its vertex is settled or a shorter distance to it is
// already known.
func (l *leaf) propose(r *run) {
	l.hasProposal = false

	for {
		c, ok := l.queue.Peek()
		if !ok {
			return
		}

		if r.settled[c.vertex] || c.dist > l.dist[c.vertex] {
			l.queue.Pop()

			continue
		}

		l.proposal, l.hasProposal = c, true

		return
	}
}

// relax merges the previous round's broadcast and relaxes the winner over the
// edges owned by this leaf.
func (l *leaf) relax(r *run, vertices []graph.Vertex, index map[graph.Vertex]int) error {
	w := r.winner

	if l.hasProposal && l.proposal.vertex == w.vertex {
		l.queue.Pop()
	}

	for _, c := range r.broadcast {
		if c.dist < l.dist[c.vertex] {
			l.dist[c.vertex] = c.dist
		}
	}

	l.scratch = l.scratch[:0]

	edges, exists := l.adj.Edges(vertices[w.vertex])
	if !exists {
		return fmt.Errorf("relax %q in partition %d: %w", vertices[w.vertex], l.index, ErrMissingAdjacency)
	}

	predSeq := r.settleSeq[w.vertex]
	for _, e := range edges {
		dst := index[e.Destination()]
		if r.settled[dst] {
			continue
		}

		if d := w.dist + e.Weight(); d < l.dist[dst] {
			l.dist[dst] = d
			c := candidate{dist: d, vertex: dst, pred: w.vertex, predSeq: predSeq}
			l.queue.Push(c)
			l.scratch = append(l.scratch, c)
		}
	}

	r.relaxations.Aggregate(int64(len(l.scratch)))

	return nil
}
