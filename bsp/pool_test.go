package bsp_test

import (
	"errors"
	"sync"
	"sync/atomic"

	check "gopkg.in/check.v1"

	"github.com/mycok/pathfinder/bsp"
)

var _ = check.Suite(new(poolTestSuite))

type poolTestSuite struct{}

func (s *poolTestSuite) TestConfigValidation(c *check.C) {
	_, err := bsp.NewPool(bsp.PoolConfig{Workers: 2, MinWorkers: 4})
	c.Assert(err, check.ErrorMatches, "(?ms).*pool needs at least 4 workers; got 2.*")

	_, err = bsp.NewPool(bsp.PoolConfig{})
	c.Assert(err, check.ErrorMatches, "(?ms).*pool needs at least 1 workers; got 0.*")
}

func (s *poolTestSuite) TestTasksBlockingOnBarrier(c *check.C) {
	const workers = 4

	p, err := bsp.NewPool(bsp.PoolConfig{Workers: workers, MinWorkers: workers})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(p.Close(), check.IsNil) }()

	var trips int64
	b, err := bsp.NewBarrier(workers, func() error {
		atomic.AddInt64(&trips, 1)

		return nil
	})
	c.Assert(err, check.IsNil)

	// Every task parks on the barrier, so they can only complete if each
	// one runs on its own worker.
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		c.Assert(p.Submit(func() {
			defer wg.Done()
			for round := 0; round < 10; round++ {
				if err := b.Await(); err != nil {
					return
				}
			}
		}), check.IsNil)
	}

	wg.Wait()
	c.Assert(atomic.LoadInt64(&trips), check.Equals, int64(10))
}

func (s *poolTestSuite) TestPanicIsRecovered(c *check.C) {
	p, err := bsp.NewPool(bsp.PoolConfig{Workers: 1})
	c.Assert(err, check.IsNil)

	done := make(chan struct{})
	c.Assert(p.Submit(func() { panic("kaboom") }), check.IsNil)
	// The same worker keeps serving tasks after a panic.
	c.Assert(p.Submit(func() { close(done) }), check.IsNil)
	<-done

	c.Assert(p.Err(), check.ErrorMatches, "task on worker 0 panicked: kaboom")
	c.Assert(p.Err(), check.IsNil)

	c.Assert(p.Close(), check.IsNil)
	c.Assert(p.Close(), check.IsNil)
	c.Assert(errors.Is(p.Submit(func() {}), bsp.ErrPoolClosed), check.Equals, true)
}
