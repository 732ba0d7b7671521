// Package parallel provides a small worker pool for data-parallel index
// spans, used to run the independent updates of one red-black half-sweep
// across goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// MinSpan is the smallest span worth handing to a worker. Spans below
// this size cost more in scheduling than they save in compute.
const MinSpan = 1024

// Pool is a pool of goroutines executing batches of independent tasks.
//
// Every task in one batch must be independent of every other: the pool
// guarantees nothing about execution order within a batch, only that
// ForSpans and ExecuteAll return after all tasks completed.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int

	// tasks is the shared queue all workers pull from. Batches are
	// short-lived, so a single queue beats per-worker queues with
	// stealing here: spans are uniform and there is nothing to balance.
	tasks chan func()

	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool creates a pool with the given number of workers and starts
// them. If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		tasks:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Drain remaining work before exiting.
			for {
				select {
				case task := <-p.tasks:
					task()
				default:
					return
				}
			}
		case task := <-p.tasks:
			task()
		}
	}
}

// ForSpans splits [0, n) into one span per worker (no smaller than
// MinSpan) and runs fn on each span concurrently, returning when all
// spans are done. fn must treat its span exclusively.
// If the pool is closed, the whole range runs on the calling goroutine.
func (p *Pool) ForSpans(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if !p.running.Load() {
		fn(0, n)
		return
	}

	spans := p.workers
	if limit := n / MinSpan; spans > limit {
		spans = limit
	}
	if spans <= 1 {
		fn(0, n)
		return
	}

	// Ceil division can leave fewer spans than requested; count what the
	// loop will actually submit.
	step := (n + spans - 1) / spans
	spans = (n + step - 1) / step

	var wg sync.WaitGroup
	wg.Add(spans)
	for lo := 0; lo < n; lo += step {
		lo, hi := lo, lo+step
		if hi > n {
			hi = n
		}
		p.submit(func() {
			defer wg.Done()
			fn(lo, hi)
		})
	}
	wg.Wait()
}

// ExecuteAll runs every task in work and waits for all to complete.
// If the pool is closed, tasks run on the calling goroutine.
func (p *Pool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for _, fn := range work {
		fn := fn
		p.submit(func() {
			defer wg.Done()
			fn()
		})
	}
	wg.Wait()
}

func (p *Pool) submit(task func()) {
	select {
	case p.tasks <- task:
	case <-p.done:
		// Pool is closing, run inline so waiters are released.
		task()
	}
}

// Close gracefully shuts down the pool: it stops accepting new work,
// finishes queued tasks, and stops all workers.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}
