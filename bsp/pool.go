package bsp

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// ErrPoolClosed is returned when a task is submitted to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is a unit of work executed by a pool worker.
type Task func()

// PoolConfig encapsulates the configuration options for creating pools.
type PoolConfig struct {
	// Workers specifies the number of long-lived workers. Tasks that block
	// on a Barrier need one worker per party, so callers must size the pool
	// to at least the barrier's party count.
	Workers int

	// MinWorkers is the smallest acceptable value for Workers. If not
	// specified, a minimum of one worker is required.
	MinWorkers int

	// Logger is used to report task panics. If not specified, log output
	// is discarded.
	Logger *logrus.Entry
}

// Validate checks whether a pool configuration is valid and sets the default
// values if required.
func (c *PoolConfig) Validate() error {
	var err error

	if c.MinWorkers <= 0 {
		c.MinWorkers = 1
	}

	if c.Workers < c.MinWorkers {
		err = multierror.Append(err, fmt.Errorf(
			"pool needs at least %d workers; got %d", c.MinWorkers, c.Workers,
		))
	}

	if c.Logger == nil {
		c.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// Pool runs submitted tasks on a fixed set of long-lived workers.
type Pool struct {
	wg       sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
	logger   *logrus.Entry
	taskChan chan Task
	errChan  chan error
}

// NewPool creates a new Pool instance using the provided configuration. It is
// important for callers to invoke Close() on the returned pool when they are
// done using it.
func NewPool(cfg PoolConfig) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pool config validation failed: %w", err)
	}

	p := &Pool{logger: cfg.Logger}
	p.startWorkers(cfg.Workers)

	return p, nil
}

// Submit hands task to the next idle worker, blocking until one is available.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	p.taskChan <- task

	return nil
}

// Err returns the first task panic recorded since the last call to Err, if
// any.
func (p *Pool) Err() error {
	select {
	case err := <-p.errChan:
		return err
	default:
		return nil
	}
}

// Close stops accepting tasks and waits for the workers to exit. Calling
// Close more than once is safe.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()

		return nil
	}

	p.closed = true
	close(p.taskChan)
	p.mu.Unlock()

	p.wg.Wait()

	return nil
}

// startWorkers spins up numOfWorkers goroutines that poll the task channel.
func (p *Pool) startWorkers(numOfWorkers int) {
	p.taskChan = make(chan Task)
	// Buffered so a panicking worker never blocks on an error nobody reads
	// yet.
	p.errChan = make(chan error, 1)

	p.wg.Add(numOfWorkers)
	for i := 0; i < numOfWorkers; i++ {
		go p.worker(i)
	}
}

// worker executes tasks until the task channel is closed.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.taskChan {
		p.run(id, task)
	}
}

func (p *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("task on worker %d panicked: %v", id, r)
			p.logger.WithField("worker", id).WithError(err).Error("recovered task panic")
			tryToEmitErr(p.errChan, err)
		}
	}()

	task()
}

func tryToEmitErr(errChan chan<- error, err error) {
	select {
	// Try to enqueue an error.
	case errChan <- err:
	// Error channel already contains another error that has not been read yet.
	default:
	}
}
