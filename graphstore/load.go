package graphstore

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mycok/pathfinder/graph"
)

// Load reads every vertex and edge from s and builds a graph. Vertices are
// ordered by name so ordinals are stable across loads.
func Load(s Store) (*graph.Graph, error) {
	vertices, err := loadVertices(s)
	if err != nil {
		return nil, err
	}

	sort.Slice(vertices, func(i, j int) bool { return vertices[i].Name < vertices[j].Name })

	var (
		byID   = make(map[uuid.UUID]graph.Vertex, len(vertices))
		gVerts = make([]graph.Vertex, len(vertices))
	)

	for i, v := range vertices {
		gVerts[i] = graph.NewVertex(v.Name)
		byID[v.ID] = gVerts[i]
	}

	edges, err := loadEdges(s)
	if err != nil {
		return nil, err
	}

	// Edge ids are random, so order edges deterministically as well.
	sort.Slice(edges, func(i, j int) bool {
		si, sj := byID[edges[i].Src].ID(), byID[edges[j].Src].ID()
		if si != sj {
			return si < sj
		}

		return byID[edges[i].Dst].ID() < byID[edges[j].Dst].ID()
	})

	gEdges := make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		src, srcExists := byID[e.Src]
		dst, dstExists := byID[e.Dst]
		if !srcExists || !dstExists {
			return nil, fmt.Errorf("load edge %s: %w", e.ID, ErrUnknownEdgeVertex)
		}

		gEdges = append(gEdges, graph.NewEdge(e.ID.String(), src, dst, e.Weight))
	}

	return graph.New(gVerts, gEdges)
}

// Import persists every vertex and edge of g into s. Parallel edges collapse
// into a single stored edge carrying the smallest weight.
func Import(s Store, g *graph.Graph) error {
	ids := make(map[graph.Vertex]uuid.UUID, g.VertexCount())

	for _, v := range g.Vertices() {
		sv := &Vertex{Name: v.ID()}
		if err := s.UpsertVertex(sv); err != nil {
			return fmt.Errorf("import vertex %q: %w", v, err)
		}

		ids[v] = sv.ID
	}

	type pair struct{ src, dst graph.Vertex }
	minWeights := make(map[pair]int)
	var order []pair

	for _, e := range g.Edges() {
		p := pair{e.Source(), e.Destination()}
		w, seen := minWeights[p]
		if !seen {
			order = append(order, p)
		}

		if !seen || e.Weight() < w {
			minWeights[p] = e.Weight()
		}
	}

	for _, p := range order {
		se := &Edge{Src: ids[p.src], Dst: ids[p.dst], Weight: minWeights[p]}
		if err := s.UpsertEdge(se); err != nil {
			return fmt.Errorf("import edge %s->%s: %w", p.src, p.dst, err)
		}
	}

	return nil
}

func loadVertices(s Store) ([]*Vertex, error) {
	it, err := s.Vertices()
	if err != nil {
		return nil, fmt.Errorf("load vertices: %w", err)
	}

	var list []*Vertex
	for it.Next() {
		list = append(list, it.Vertex())
	}

	if err := it.Error(); err != nil {
		_ = it.Close()

		return nil, fmt.Errorf("load vertices: %w", err)
	}

	return list, it.Close()
}

func loadEdges(s Store) ([]*Edge, error) {
	it, err := s.Edges()
	if err != nil {
		return nil, fmt.Errorf("load edges: %w", err)
	}

	var list []*Edge
	for it.Next() {
		list = append(list, it.Edge())
	}

	if err := it.Error(); err != nil {
		_ = it.Close()

		return nil, fmt.Errorf("load edges: %w", err)
	}

	return list, it.Close()
}
