/*
	graphtest package provides graph builders and re-usable test suites for
	packages that consume or persist graph.Graph instances.
*/

package graphtest

import (
	"fmt"
	"math/rand"

	"github.com/mycok/pathfinder/graph"
)

const (
	// StraightCost is the lane cost between orthogonal grid neighbours.
	StraightCost = 100
	// DiagonalCost is the lane cost between diagonal grid neighbours.
	DiagonalCost = 141
)

// Grid builds an x*y grid of "Node_<n>" vertices where every cell is joined
// by lanes to its left, upper, upper-left and upper-right neighbours.
func Grid(x, y int) (*graph.Graph, error) {
	vertices := make([]graph.Vertex, 0, x*y)
	var edges []graph.Edge

	for j := 0; j < y; j++ {
		for i := 0; i < x; i++ {
			n := j*x + i
			vertices = append(vertices, graph.NewVertex(fmt.Sprintf("Node_%d", n)))

			if i > 0 {
				edges = graph.AddLane(edges, vertices, n, n-1, StraightCost)
			}
			if j > 0 {
				edges = graph.AddLane(edges, vertices, n, n-x, StraightCost)
			}
			if j > 0 && i > 0 {
				edges = graph.AddLane(edges, vertices, n, n-x-1, DiagonalCost)
			}
			if j > 0 && i < x-1 {
				edges = graph.AddLane(edges, vertices, n, n-x+1, DiagonalCost)
			}
		}
	}

	return graph.New(vertices, edges)
}

// Maze builds a "hunt the wumpus" style maze: numOfLanes distinct random
// lanes of cost 100 between numOfNodes vertices. Vertices left without any
// lane ("islands") are joined to a random peer so every vertex has at least
// one connection.
func Maze(numOfNodes, numOfLanes int, rng *rand.Rand) (*graph.Graph, error) {
	if numOfNodes < 2 {
		return nil, fmt.Errorf("maze needs at least 2 nodes, got %d", numOfNodes)
	}

	vertices := make([]graph.Vertex, numOfNodes)
	for n := range vertices {
		vertices[n] = graph.NewVertex(fmt.Sprint(n))
	}

	type pair struct{ src, dst int }

	var (
		edges     []graph.Edge
		seen      = make(map[pair]bool)
		connected = make([]bool, numOfNodes)
	)

	maxLanes := numOfNodes * (numOfNodes - 1) / 2
	if numOfLanes > maxLanes {
		numOfLanes = maxLanes
	}

	for populated := 0; populated < numOfLanes; {
		src, dst := rng.Intn(numOfNodes), rng.Intn(numOfNodes)
		if src == dst || seen[pair{src, dst}] || seen[pair{dst, src}] {
			continue
		}

		seen[pair{src, dst}] = true
		connected[src], connected[dst] = true, true
		edges = graph.AddLane(edges, vertices, src, dst, StraightCost)
		populated++
	}

	for n, ok := range connected {
		if ok {
			continue
		}

		dst := n
		for dst == n {
			dst = rng.Intn(numOfNodes)
		}

		edges = graph.AddLane(edges, vertices, n, dst, StraightCost)
	}

	return graph.New(vertices, edges)
}

// RandomWeighted builds a directed graph of numOfNodes vertices where every
// vertex receives up to outDegree edges to random destinations with weights
// drawn from [0, maxWeight]. Parallel edges and self loops are allowed, and
// a fraction of the vertices is left without outgoing edges.
func RandomWeighted(numOfNodes, outDegree, maxWeight int, rng *rand.Rand) (*graph.Graph, error) {
	vertices := make([]graph.Vertex, numOfNodes)
	for n := range vertices {
		vertices[n] = graph.NewVertex(fmt.Sprintf("V%d", n))
	}

	var edges []graph.Edge
	for src := range vertices {
		degree := rng.Intn(outDegree + 1)
		for k := 0; k < degree; k++ {
			dst := rng.Intn(numOfNodes)
			edges = append(edges, graph.NewEdge(
				fmt.Sprintf("E%d_%d_%d", src, dst, k),
				vertices[src], vertices[dst], rng.Intn(maxWeight+1),
			))
		}
	}

	return graph.New(vertices, edges)
}

// Diamond builds the four vertex graph A->B(1), A->C(4), B->C(1), C->D(1),
// B->D(5) together with an isolated vertex E.
func Diamond() (*graph.Graph, error) {
	a, b, c, d, e := graph.NewVertex("A"), graph.NewVertex("B"),
		graph.NewVertex("C"), graph.NewVertex("D"), graph.NewVertex("E")

	return graph.New(
		[]graph.Vertex{a, b, c, d, e},
		[]graph.Edge{
			graph.NewEdge("AB", a, b, 1),
			graph.NewEdge("AC", a, c, 4),
			graph.NewEdge("BC", b, c, 1),
			graph.NewEdge("CD", c, d, 1),
			graph.NewEdge("BD", b, d, 5),
		},
	)
}
