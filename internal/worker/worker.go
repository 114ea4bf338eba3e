package worker

import (
	"log"
	"sync"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool interface {
	Submit(Task)
	TrySubmit(Task) bool
	Stop()
}

// NewPool creates a pool with n workers and a queue of size queue. n<=0
// defaults to 1; queue<0 is treated as 0 (unbuffered).
func NewPool(n, queue int) Pool {
	if n <= 0 {
		n = 1
	}
	if queue < 0 {
		queue = 0
	}
	p := &pool{jobs: make(chan Task, queue)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				run(job)
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// run executes job and keeps the worker alive if it panics.
func run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker: task panicked: %v", r)
		}
	}()
	job()
}

// Submit queues t. Tasks submitted after Stop are dropped.
func (p *pool) Submit(t Task) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return
	}
	p.jobs <- t
}

// TrySubmit queues t only if there is room. It reports false when the
// queue is full or the pool is stopped; the task is dropped in that case.
func (p *pool) TrySubmit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobs <- t:
		return true
	default:
		return false
	}
}

// Stop waits for queued tasks to finish. It is safe to call more than once.
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// Inline runs every task on the caller's goroutine. Tests use it to make
// dispatch synchronous.
type Inline struct{}

func (Inline) Submit(t Task) { run(t) }

func (Inline) TrySubmit(t Task) bool { run(t); return true }

func (Inline) Stop() {}
