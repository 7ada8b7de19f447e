// Package parallel runs independent algorithm jobs on a fixed set of
// worker goroutines.
package parallel

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/RandyRDavila/graphcommunities/pkg/logging"
)

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu
	logger    logging.Logger
	panics    atomic.Int64
}

// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
var ErrTooManyWorkers = errors.New("worker count exceeds maximum")

// ErrPoolClosed is returned by Run when the pool no longer accepts tasks.
var ErrPoolClosed = errors.New("worker pool is closed")

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// NewWorkerPool creates a new worker pool with specified number of workers.
// Non-positive counts are raised to 1.
func NewWorkerPool(workers int) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}

	// Prevent overflow in buffer size calculation
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2), // Buffer for 2x workers
		logger:    logging.NewNopLogger(),
	}

	pool.start()
	return pool, nil
}

// SetLogger sets the logger that receives recovered task panics.
func (wp *WorkerPool) SetLogger(logger logging.Logger) {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	wp.logger = logger.With(logging.Component("worker_pool"))
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int { return wp.workers }

// Panics returns the number of task panics recovered so far.
func (wp *WorkerPool) Panics() int64 { return wp.panics.Load() }

// start initializes the worker goroutines
func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.runTask(task)
	}
}

// runTask runs one task, recovering a panic so the worker survives it
func (wp *WorkerPool) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.panics.Add(1)
			wp.mu.RLock()
			logger := wp.logger
			wp.mu.RUnlock()
			logger.Error("task panic recovered", logging.Any("panic", fmt.Sprint(r)))
		}
	}()
	task()
}

// Submit adds a task to the worker pool
// Returns false if the pool is closed, true if task was submitted
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	// Check if pool is closed while holding read lock
	if wp.closed {
		return false
	}

	// Safe to send because we hold the lock and pool is not closed
	wp.taskQueue <- task
	return true
}

// Run executes fn(0..n-1) on the pool and waits for all of them. A panic
// in fn(i) is returned as the error for index i. The pool stays open.
func (wp *WorkerPool) Run(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		submitted := wp.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					wp.panics.Add(1)
					errs[i] = fmt.Errorf("job %d panicked: %v", i, r)
				}
			}()
			errs[i] = fn(i)
		})
		if !submitted {
			wg.Done()
			errs[i] = ErrPoolClosed
		}
	}

	wg.Wait()
	return errs
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		// Acquire write lock before closing
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait waits for all submitted tasks to complete
func (wp *WorkerPool) Wait() {
	// Close the queue and wait for workers to finish
	wp.Close()
}
