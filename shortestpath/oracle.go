package shortestpath

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/mycok/pathfinder/graph"
)

// ErrOracleMismatch is wrapped by the errors reported by Compare.
var ErrOracleMismatch = errors.New("result differs from oracle")

// Compare checks that got and want agree on the source, on every distance and
// on every predecessor. All mismatches are reported.
func Compare(got, want *Result) error {
	if got == nil || want == nil {
		return ErrNotExecuted
	}

	if got.source != want.source || len(got.dist) != len(want.dist) {
		return fmt.Errorf(
			"source %s over %d vertices vs %s over %d vertices: %w",
			got.Source(), len(got.dist), want.Source(), len(want.dist), ErrOracleMismatch,
		)
	}

	var err error
	for i, v := range want.vertices {
		if got.dist[i] != want.dist[i] {
			err = multierror.Append(err, fmt.Errorf(
				"distance of %s: got %s, want %s: %w",
				v, fmtDistance(got.dist[i]), fmtDistance(want.dist[i]), ErrOracleMismatch,
			))
		}

		if got.pred[i] != want.pred[i] {
			err = multierror.Append(err, fmt.Errorf(
				"predecessor of %s: got %s, want %s: %w",
				v, fmtVertex(got, got.pred[i]), fmtVertex(want, want.pred[i]), ErrOracleMismatch,
			))
		}
	}

	return err
}

// CompareToOracle runs both engines from source and compares their results.
func CompareToOracle(ctx context.Context, engine, oracle Engine, source graph.Vertex) error {
	if err := engine.Execute(ctx, source); err != nil {
		return fmt.Errorf("engine run: %w", err)
	}

	if err := oracle.Execute(ctx, source); err != nil {
		return fmt.Errorf("oracle run: %w", err)
	}

	return Compare(engine.Result(), oracle.Result())
}

func fmtDistance(d int) string {
	if d == unreachable {
		return "unreachable"
	}

	return fmt.Sprint(d)
}

func fmtVertex(r *Result, i int) string {
	if i == noVertex {
		return "none"
	}

	return r.vertices[i].String()
}
