package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc schedules a task. It may block until a worker is free.
	WorkerFunc func(func())
	// WaitFunc blocks until every scheduled task has finished. With done
	// set the pool stops accepting work.
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start launches numWorkers goroutines, GOMAXPROCS of them when numWorkers
// is below 1. A single worker runs every task inline on the caller.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	tasks := make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range tasks {
				f()
			}
		})
	}

	var pending sync.WaitGroup
	pool.Do = func(f func()) {
		pending.Add(1)
		tasks <- func() {
			defer pending.Done()
			f()
		}
	}
	pool.Cancel = sync.OnceFunc(func() { close(tasks) })
	pool.Wait = func(done bool) {
		if !done {
			pending.Wait()
			return
		}
		pool.Cancel()
		pool.wg.Wait()
	}

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}
