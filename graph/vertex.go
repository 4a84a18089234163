package graph

import (
	"regexp"
	"strconv"
)

var intPattern = regexp.MustCompile(`\d+`)

// Vertex is an opaque, immutable graph node identity. Two vertices are equal
// when their ids are equal, which makes Vertex usable as a map key.
type Vertex struct {
	id string
}

// NewVertex returns the vertex identified by id.
func NewVertex(id string) Vertex { return Vertex{id: id} }

// ID returns the vertex id.
func (v Vertex) ID() string { return v.id }

// String implements fmt.Stringer.
func (v Vertex) String() string { return v.id }

// IsZero reports whether v is the zero Vertex, which is used as the "no
// vertex" value (e.g. the predecessor of a source).
func (v Vertex) IsZero() bool { return v.id == "" }

// IDInteger returns the first run of decimal digits found in the vertex id or
// -1 if the id contains none. Generated graphs name their vertices
// "Node_<n>", so this recovers n.
func (v Vertex) IDInteger() int {
	match := intPattern.FindString(v.id)
	if match == "" {
		return -1
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		return -1
	}

	return n
}
