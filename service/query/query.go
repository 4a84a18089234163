/*
	query package implements a service that periodically computes the
	shortest path between a random pair of vertices.
*/

package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mycok/pathfinder/shortestpath"
)

// Service represents the shortest path query service. It satisfies the
// service.Service interface.
type Service struct {
	config Config
}

// New creates and returns a fully configured query service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("query service: config validation failed: %w", err)
	}

	return &Service{config: config}, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "shortest-path-query" }

// Run executes the service and blocks until the context gets cancelled
// or an error occurs.
func (svc *Service) Run(ctx context.Context) error {
	svc.config.Logger.WithField(
		"update_interval", svc.config.UpdateInterval.String(),
	).Info("started service")
	defer svc.config.Logger.Info("stopped service")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-svc.config.Clock.After(svc.config.UpdateInterval):
			if err := svc.Query(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}

				return err
			}
		}
	}
}

// Query picks a random source and a distinct random target, computes the
// shortest paths from the source and logs the path to the target.
func (svc *Service) Query(ctx context.Context) error {
	n := svc.config.Graph.VertexCount()
	source := svc.config.Rand.Intn(n)

	target := source
	for target == source {
		target = svc.config.Rand.Intn(n)
	}

	logger := svc.config.Logger.WithFields(logrus.Fields{
		"query_id": uuid.New(),
		"source":   source,
		"target":   target,
	})

	tick := svc.config.Clock.Now()
	if err := svc.config.Engine.ExecuteIndex(ctx, source); err != nil {
		return fmt.Errorf("execute from %d: %w", source, err)
	}
	executionDuration := svc.config.Clock.Now().Sub(tick)

	path, err := svc.config.Engine.PathIndex(target)
	switch {
	case errors.Is(err, shortestpath.ErrNoPath):
		logger.WithField("execution_duration", executionDuration).Info("target unreachable")
	case err != nil:
		return fmt.Errorf("path to %d: %w", target, err)
	default:
		fields := logrus.Fields{
			"execution_duration": executionDuration,
			"path_length":        len(path),
		}

		if res := svc.config.Engine.Result(); res != nil {
			cost, _ := res.Distance(path[len(path)-1])
			fields["cost"] = cost
			fields["run_id"] = res.Stats().RunID
			fields["rounds"] = res.Stats().Rounds
		}

		logger.WithFields(fields).Info("computed shortest path")
	}

	if svc.config.Oracle == nil {
		return nil
	}

	if err := svc.config.Oracle.ExecuteIndex(ctx, source); err != nil {
		return fmt.Errorf("oracle execute from %d: %w", source, err)
	}

	if err := shortestpath.Compare(svc.config.Engine.Result(), svc.config.Oracle.Result()); err != nil {
		logger.WithError(err).Error("engine result differs from oracle")

		return nil
	}

	logger.Debug("engine result matches oracle")

	return nil
}
