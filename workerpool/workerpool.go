// Copyright 2025 go-perflab Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workerpool runs row and tile ranges of a kernel on a fixed set of
// goroutines.
//
// Kernel benchmarks call the same transform many times in a row, so the
// workers are spawned once and reused instead of paying goroutine start-up
// on every invocation:
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//
//	for range repeats {
//	    pool.ParallelFor(dim, func(start, end int) {
//	        smoothRows(start, end)
//	    })
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent set of worker goroutines.
type Pool struct {
	workers   int
	tasks     chan task
	closeOnce sync.Once
	closed    atomic.Bool
}

type task struct {
	run  func()
	done *sync.WaitGroup
}

// New starts a pool with n workers. If n <= 0, GOMAXPROCS workers are used.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: n,
		tasks:   make(chan task, n*2),
	}
	for range n {
		go p.loop()
	}
	return p
}

func (p *Pool) loop() {
	for t := range p.tasks {
		t.run()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.workers
}

// Close stops the workers after pending tasks finish.
// It is safe to call Close more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.tasks)
	})
}

// ParallelFor splits [0, n) into one contiguous range per worker and calls
// fn(start, end) for each. It blocks until every range is done.
// A closed pool, or a single range, runs fn on the calling goroutine.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.workers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.tasks <- task{
			run:  func() { fn(start, end) },
			done: &wg,
		}
	}
	wg.Wait()
}

// ParallelForBatched hands out [0, n) in batches of batch indices. Workers
// grab the next batch with an atomic counter, which balances load when
// batches cost different amounts (e.g. truncated edge tiles).
func (p *Pool) ParallelForBatched(n, batch int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if batch <= 0 {
		batch = 1
	}

	batches := (n + batch - 1) / batch
	workers := min(p.workers, batches)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.tasks <- task{
			run: func() {
				for {
					start := int(next.Add(1)-1) * batch
					if start >= n {
						return
					}
					fn(start, min(start+batch, n))
				}
			},
			done: &wg,
		}
	}
	wg.Wait()
}
