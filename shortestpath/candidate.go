package shortestpath

// noVertex marks the absence of a predecessor (or settle sequence).
const noVertex = -1

// candidate is a tentative distance to a vertex, discovered by relaxing an
// edge out of pred. Vertices are identified by their ordinal in the graph.
type candidate struct {
	dist   int
	vertex int
	pred   int
	// predSeq is the settle sequence number of pred.
	predSeq int
}

// Less orders candidates by distance, then vertex ordinal, then the settle
// sequence of their predecessor. Both engines rely on this order to settle
// vertices identically.
func (c candidate) Less(other candidate) bool {
	if c.dist != other.dist {
		return c.dist < other.dist
	}

	if c.vertex != other.vertex {
		return c.vertex < other.vertex
	}

	return c.predSeq < other.predSeq
}
