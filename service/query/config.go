package query

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/mycok/pathfinder/graph"
	"github.com/mycok/pathfinder/shortestpath"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/mycok/pathfinder/service/query Engine

// Engine defines the minimum set of shortest path engine methods used by the
// query service.
type Engine interface {
	// ExecuteIndex computes the shortest paths from the vertex with
	// ordinal i.
	ExecuteIndex(ctx context.Context, i int) error

	// PathIndex returns the shortest path from the last run's source to
	// the vertex with ordinal i.
	PathIndex(i int) ([]graph.Vertex, error)

	// Result returns the last published result or nil.
	Result() *shortestpath.Result
}

// Config defines configurations for the query service.
type Config struct {
	// Engine answers the queries.
	Engine Engine

	// Oracle, if specified, re-runs every query so its result can be
	// compared against the engine's. Mismatches are logged.
	Oracle Engine

	// Graph is the graph the engines were built for. It is used to pick
	// query endpoints.
	Graph *graph.Graph

	// Rand picks query endpoints. If not specified, a source seeded from
	// Clock is used.
	Rand *rand.Rand

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The duration between subsequent queries.
	UpdateInterval time.Duration

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.Engine == nil {
		err = multierror.Append(err, fmt.Errorf("engine not provided"))
	}

	if config.Graph == nil {
		err = multierror.Append(err, fmt.Errorf("graph not provided"))
	} else if config.Graph.VertexCount() < 2 {
		err = multierror.Append(err, fmt.Errorf("graph must contain at least 2 vertices"))
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.Rand == nil {
		config.Rand = rand.New(rand.NewSource(config.Clock.Now().UnixNano()))
	}

	if config.UpdateInterval <= 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for update interval"))
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
