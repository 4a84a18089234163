package shortestpath

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/mycok/pathfinder/partition"
)

// RoundStats describes a single completed round: one vertex has been settled
// and relaxed by every partition.
type RoundStats struct {
	// Round is the 1-based round number within the run.
	Round int

	// Settled is the ordinal of the vertex settled in this round.
	Settled int

	// Distance is the settled vertex's distance from the source.
	Distance int

	// Relaxations is the number of improved distances discovered while
	// relaxing the settled vertex.
	Relaxations int64
}

// Config encapsulates the settings for configuring the shortest path
// engines.
type Config struct {
	// Depth is the depth of the partition tree used by the parallel engine.
	// The adjacency index is split into 2^Depth partitions. Ignored by the
	// sequential engine.
	Depth int

	// Workers is the size of the parallel engine's worker pool. It must be
	// at least 2^Depth since every partition keeps a worker busy for the
	// whole run. If not specified, one worker per partition is used.
	Workers int

	// Rand shuffles edges while partitioning. If not specified, a source
	// seeded from Clock is used.
	Rand *rand.Rand

	// Clock is used to measure run durations. If not specified, the wall
	// clock is used.
	Clock clock.Clock

	// OnRound, if defined, is invoked once per round after every partition
	// has relaxed the settled vertex. It runs while all workers are parked,
	// so it must not call back into the engine.
	OnRound func(RoundStats)

	// Logger is the logger instance to use. If not specified, log output
	// is discarded.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error

	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}

	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(cfg.Clock.Now().UnixNano()))
	}

	if cfg.Depth < 0 || cfg.Depth > partition.MaxDepth {
		err = multierror.Append(err, fmt.Errorf(
			"partition depth must be in [0, %d]; got %d", partition.MaxDepth, cfg.Depth,
		))
	} else {
		leaves := 1 << cfg.Depth
		if cfg.Workers == 0 {
			cfg.Workers = leaves
		}

		if cfg.Workers < leaves {
			err = multierror.Append(err, fmt.Errorf(
				"workers must be at least the number of partitions (%d); got %d",
				leaves, cfg.Workers,
			))
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

var errNilGraph = errors.New("graph not provided")
