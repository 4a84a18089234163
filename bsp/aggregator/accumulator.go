/*
	aggregator package provides lock-free counters shared by the workers of
	a single engine run.
*/

package aggregator

import "sync/atomic"

// IntAccumulator is a concurrent-safe accumulator for int64 values. Besides
// the running total it remembers the value observed by the previous call to
// Delta so callers can report per-round increments.
type IntAccumulator struct {
	prevSum int64
	currSum int64
}

// Type returns the type of this accumulator as a string.
func (a *IntAccumulator) Type() string {
	return "IntAccumulator"
}

// Get retrieves the current accumulator value.
func (a *IntAccumulator) Get() int64 {
	return atomic.LoadInt64(&a.currSum)
}

// Set the accumulator's fields to the specified value.
func (a *IntAccumulator) Set(value int64) {
	for {
		oldCurrSum := atomic.LoadInt64(&a.currSum)
		oldPrevSum := atomic.LoadInt64(&a.prevSum)

		swappedCurrSum := atomic.CompareAndSwapInt64(&a.currSum, oldCurrSum, value)
		swappedPrevSum := atomic.CompareAndSwapInt64(&a.prevSum, oldPrevSum, value)

		if swappedCurrSum && swappedPrevSum {
			return
		}
	}
}

// Aggregate adds value to the accumulator's current sum.
func (a *IntAccumulator) Aggregate(value int64) {
	_ = atomic.AddInt64(&a.currSum, value)
}

// Delta returns the change in the accumulator's value since the last
// call to Delta or Set.
func (a *IntAccumulator) Delta() int64 {
	for {
		currSum := atomic.LoadInt64(&a.currSum)
		prevSum := atomic.LoadInt64(&a.prevSum)

		// Copy currSum into prevSum and, if nobody raced us, report the
		// difference.
		if atomic.CompareAndSwapInt64(&a.prevSum, prevSum, currSum) {
			return currSum - prevSum
		}
	}
}
