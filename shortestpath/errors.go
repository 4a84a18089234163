package shortestpath

import "errors"

var (
	// ErrNoPath is returned when the requested target is not reachable from
	// the source of the last run. It is a normal outcome, not a failure.
	ErrNoPath = errors.New("no path to target")

	// ErrNotExecuted is returned by path queries issued before any run has
	// completed.
	ErrNotExecuted = errors.New("engine has not been executed")

	// ErrTerminated is returned by engines that have been terminated.
	ErrTerminated = errors.New("engine has been terminated")

	// ErrMissingAdjacency is returned when a settled vertex has no entry in
	// a partition's adjacency index. Every partition must hold an entry for
	// every vertex, so this indicates a corrupted partition.
	ErrMissingAdjacency = errors.New("vertex has no adjacency entry")
)
