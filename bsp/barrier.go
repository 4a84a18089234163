/*
	bsp package provides the round synchronization primitives used to run
	bulk synchronous parallel computations: a reusable barrier whose action
	runs exactly once per round and a fixed-size pool of long-lived workers.
*/

package bsp

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrBarrierBroken is returned by Await when the barrier was broken
	// while (or before) the caller was waiting on it.
	ErrBarrierBroken = errors.New("barrier is broken")

	// ErrInvalidParties is returned when a barrier is created for fewer
	// than one party.
	ErrInvalidParties = errors.New("barrier requires at least one party")
)

// BrokenError describes why a barrier was broken. It matches
// ErrBarrierBroken via errors.Is and unwraps to the breaking cause.
type BrokenError struct {
	Cause error
}

// Error implements the error interface.
func (e *BrokenError) Error() string {
	if e.Cause == nil {
		return ErrBarrierBroken.Error()
	}

	return fmt.Sprintf("%s: %v", ErrBarrierBroken, e.Cause)
}

// Is reports whether target is ErrBarrierBroken.
func (e *BrokenError) Is(target error) bool { return target == ErrBarrierBroken }

// Unwrap returns the error that broke the barrier.
func (e *BrokenError) Unwrap() error { return e.Cause }

// ActionFunc is executed by the last party to arrive at a barrier, before
// any of the waiting parties are released. Returning an error breaks the
// barrier.
type ActionFunc func() error

// generation tracks one trip of the barrier. Waiters keep a reference to the
// generation they arrived in so a Reset cannot be mistaken for a release.
type generation struct {
	broken bool
	cause  error
}

// Barrier is a reusable rendezvous point for a fixed number of parties.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	gen     *generation
	action  ActionFunc
}

// NewBarrier creates a barrier for the specified number of parties. The
// optional action is invoked once per trip by the last arriving party.
func NewBarrier(parties int, action ActionFunc) (*Barrier, error) {
	if parties < 1 {
		return nil, fmt.Errorf("new barrier with %d parties: %w", parties, ErrInvalidParties)
	}

	b := &Barrier{
		parties: parties,
		gen:     new(generation),
		action:  action,
	}
	b.cond = sync.NewCond(&b.mu)

	return b, nil
}

// Parties returns the number of parties required to trip the barrier.
func (b *Barrier) Parties() int { return b.parties }

// Waiting returns the number of parties currently blocked in Await.
func (b *Barrier) Waiting() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.waiting
}

// IsBroken reports whether the current generation is broken.
func (b *Barrier) IsBroken() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.gen.broken
}

// Await blocks until all parties have called Await on this barrier. The last
// party to arrive runs the barrier action while the others are still blocked.
// A non-nil error, which always matches ErrBarrierBroken, is returned if the
// barrier is broken before or while the caller waits, or if the action fails.
func (b *Barrier) Await() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.gen
	if gen.broken {
		return &BrokenError{Cause: gen.cause}
	}

	b.waiting++
	if b.waiting == b.parties {
		if err := b.runAction(); err != nil {
			b.breakLocked(err)

			return &BrokenError{Cause: err}
		}

		b.nextGenerationLocked()

		return nil
	}

	for {
		b.cond.Wait()

		if gen.broken {
			return &BrokenError{Cause: gen.cause}
		}

		if gen != b.gen {
			return nil
		}
	}
}

// Break marks the current generation as broken and releases every waiting
// party. Subsequent Await calls fail until Reset is invoked.
func (b *Barrier) Break(cause error) {
	b.mu.Lock()
	b.breakLocked(cause)
	b.mu.Unlock()
}

// Reset breaks the current generation, releasing any waiters, and starts a
// fresh one so the barrier can be reused.
func (b *Barrier) Reset() {
	b.mu.Lock()
	if b.waiting > 0 {
		b.breakLocked(errors.New("barrier reset"))
	}
	b.nextGenerationLocked()
	b.mu.Unlock()
}

func (b *Barrier) runAction() (err error) {
	if b.action == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("barrier action panicked: %v", r)
		}
	}()

	return b.action()
}

func (b *Barrier) breakLocked(cause error) {
	if b.gen.broken {
		return
	}

	b.gen.broken = true
	b.gen.cause = cause
	b.waiting = 0
	b.cond.Broadcast()
}

func (b *Barrier) nextGenerationLocked() {
	b.waiting = 0
	b.gen = new(generation)
	b.cond.Broadcast()
}
