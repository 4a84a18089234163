package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mycok/pathfinder/graph"
	"github.com/mycok/pathfinder/graph/graphtest"
	"github.com/mycok/pathfinder/graphstore"
	"github.com/mycok/pathfinder/graphstore/cdb"
	"github.com/mycok/pathfinder/graphstore/memory"
	"github.com/mycok/pathfinder/partition"
	"github.com/mycok/pathfinder/service"
	"github.com/mycok/pathfinder/service/query"
	"github.com/mycok/pathfinder/shortestpath"
)

const (
	appName = "pathfinder"
	appSHA  = "compiled-and-deployed-at"
)

type options struct {
	graphURI   string
	graphKind  string
	gridSize   int
	mazeLanes  int
	engineKind string
	depth      int
	workers    int
	oracle     bool
	seed       int64
	interval   time.Duration
	verbose    bool
}

func main() {
	host, _ := os.Hostname()
	// Instantiate a root logger that will be passed to all services.
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"SHA":  appSHA,
		"host": host,
	})

	opts := parseFlags()
	if opts.verbose {
		rootLogger.SetLevel(logrus.DebugLevel)
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	svcGroup, cleanup, err := configureServices(ctx, opts, logger)
	if err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}
	defer cleanup()

	// Listen for os signals and trigger a graceful shutdown.
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGHUP)

		select {
		case s := <-signalChan:
			logger.WithField("signal", s.String()).Info("shutting down due to os signal")
			cancelFn()
		case <-ctx.Done():
		}
	}()

	if err := svcGroup.Execute(ctx); err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}

	logger.Info("shutdown complete")
}

func parseFlags() options {
	var opts options

	flag.StringVar(
		&opts.graphURI, "graph-uri", "in-memory://",
		"URI for the graph data store."+
			" [supported URI's: in-memory://, postgresql://user@host:26257/pathfinder?sslmode=disable]",
	)
	flag.StringVar(
		&opts.graphKind, "graph-kind", "maze",
		"Graph generated for the in-memory store. Supported values are 'grid' and 'maze'",
	)
	flag.IntVar(
		&opts.gridSize, "grid-size", 10,
		"Side length of the generated graph. Grids get size x size vertices and so do mazes",
	)
	flag.IntVar(
		&opts.mazeLanes, "maze-lanes", 200,
		"Number of random lanes in a generated maze",
	)
	flag.StringVar(
		&opts.engineKind, "engine", "parallel",
		"Shortest path engine to query. Supported values are 'parallel' and 'sequential'",
	)
	flag.IntVar(
		&opts.depth, "depth", 2,
		"Partition tree depth for the parallel engine. The graph is split into 2^depth partitions",
	)
	flag.IntVar(
		&opts.workers, "workers", runtime.NumCPU(),
		"Number of workers for the parallel engine. Raised to the number of partitions if lower",
	)
	flag.BoolVar(
		&opts.oracle, "oracle", false,
		"Compare every query against the sequential engine and log mismatches",
	)
	flag.Int64Var(
		&opts.seed, "seed", 0,
		"Seed for graph generation, partitioning and query selection. 0 picks a time based seed",
	)
	flag.DurationVar(
		&opts.interval, "query-interval", 5*time.Second,
		"Time between subsequent shortest path queries",
	)
	flag.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	flag.Parse()

	return opts
}

func configureServices(ctx context.Context, opts options, logger *logrus.Entry) (service.Group, func(), error) {
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}
	logger.WithField("seed", opts.seed).Info("seeding random sources")
	rng := rand.New(rand.NewSource(opts.seed))

	g, err := getGraph(ctx, opts, rng, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.WithFields(logrus.Fields{
		"vertices": g.VertexCount(),
		"edges":    len(g.Edges()),
	}).Info("graph loaded")

	engine, cleanup, err := getEngine(g, opts, rng, logger)
	if err != nil {
		return nil, nil, err
	}

	queryConfig := query.Config{
		Engine:         engine,
		Graph:          g,
		Rand:           rng,
		UpdateInterval: opts.interval,
		Logger:         logger.WithField("service", "shortest-path-query"),
	}

	if opts.oracle {
		oracle, err := shortestpath.NewSequential(g, shortestpath.Config{
			Logger: logger.WithField("engine", "oracle"),
		})
		if err != nil {
			cleanup()

			return nil, nil, err
		}
		queryConfig.Oracle = oracle
	}

	svc, err := query.New(queryConfig)
	if err != nil {
		cleanup()

		return nil, nil, err
	}

	return service.Group{svc}, cleanup, nil
}

func getEngine(g *graph.Graph, opts options, rng *rand.Rand, logger *logrus.Entry) (query.Engine, func(), error) {
	noop := func() {}

	switch opts.engineKind {
	case "sequential":
		logger.Info("using sequential shortest path engine")
		engine, err := shortestpath.NewSequential(g, shortestpath.Config{
			Logger: logger.WithField("engine", "sequential"),
		})

		return engine, noop, err
	case "parallel":
		workers := opts.workers
		if opts.depth >= 0 && opts.depth <= partition.MaxDepth && workers < 1<<opts.depth {
			workers = 1 << opts.depth
		}

		logger.WithFields(logrus.Fields{
			"depth":   opts.depth,
			"workers": workers,
		}).Info("using parallel shortest path engine")

		engine, err := shortestpath.NewParallel(g, shortestpath.Config{
			Depth:   opts.depth,
			Workers: workers,
			Rand:    rng,
			Logger:  logger.WithField("engine", "parallel"),
		})
		if err != nil {
			return nil, nil, err
		}

		return engine, func() { _ = engine.Terminate() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported engine kind: %q", opts.engineKind)
	}
}

func getGraph(ctx context.Context, opts options, rng *rand.Rand, logger *logrus.Entry) (*graph.Graph, error) {
	if opts.graphURI == "" {
		return nil, fmt.Errorf("graph URI must be specified with --graph-uri")
	}

	uri, err := url.Parse(opts.graphURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graph URI: %w", err)
	}

	switch uri.Scheme {
	case "in-memory":
		logger.WithField("kind", opts.graphKind).Info("using in-memory graph store")

		g, err := generateGraph(opts, rng)
		if err != nil {
			return nil, err
		}

		store := memory.NewInMemoryStore()
		if err := graphstore.Import(store, g); err != nil {
			return nil, err
		}

		return graphstore.Load(store)
	case "postgresql":
		logger.Info("using CDB graph store")

		store, err := cdb.NewCockroachDBStore(opts.graphURI)
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()

		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		return graphstore.Load(store)
	default:
		return nil, fmt.Errorf("unsupported graph URI scheme: %q", uri.Scheme)
	}
}

func generateGraph(opts options, rng *rand.Rand) (*graph.Graph, error) {
	switch opts.graphKind {
	case "grid":
		return graphtest.Grid(opts.gridSize, opts.gridSize)
	case "maze":
		return graphtest.Maze(opts.gridSize*opts.gridSize, opts.mazeLanes, rng)
	default:
		return nil, fmt.Errorf("unsupported graph kind: %q", opts.graphKind)
	}
}
