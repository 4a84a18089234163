package aggregator

import (
	"math/rand"
	"testing"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(accumulatorTestSuite))

type accumulatorTestSuite struct{}

func Test(t *testing.T) {
	check.TestingT(t)
}

func (s *accumulatorTestSuite) TestConcurrentAggregation(c *check.C) {
	var expected int64
	numOfValues := 100
	values := make([]int64, numOfValues)

	for i := 0; i < numOfValues; i++ {
		next := rand.Int63n(1 << 20)
		values[i] = next
		expected += next
	}

	a := new(IntAccumulator)
	aggregated := testConcurrentAccumulatorAggregation(a, values)

	c.Assert(aggregated, check.Equals, expected)
}

func (s *accumulatorTestSuite) TestDelta(c *check.C) {
	a := new(IntAccumulator)
	a.Set(10)
	c.Assert(a.Delta(), check.Equals, int64(0))

	a.Aggregate(5)
	a.Aggregate(2)
	c.Assert(a.Get(), check.Equals, int64(17))
	c.Assert(a.Delta(), check.Equals, int64(7))
	c.Assert(a.Delta(), check.Equals, int64(0))

	a.Set(0)
	c.Assert(a.Get(), check.Equals, int64(0))
	c.Assert(a.Delta(), check.Equals, int64(0))
}

func testConcurrentAccumulatorAggregation(a *IntAccumulator, values []int64) int64 {
	startChan := make(chan struct{})
	syncChan := make(chan struct{})
	doneChan := make(chan struct{})

	for i := 0; i < len(values); i++ {
		go func(index int) {
			startChan <- struct{}{}
			<-syncChan
			a.Aggregate(values[index])
			doneChan <- struct{}{}
		}(i)
	}

	for i := 0; i < len(values); i++ {
		<-startChan
	}

	close(syncChan)

	for i := 0; i < len(values); i++ {
		<-doneChan
	}

	return a.Get()
}
