// Package fuzz checks the core's algebraic properties and quantified
// invariants across randomized register states and operands, using a
// worker pool where every trial builds its own machine rather than
// sharing one, consistent with the core's
// single-threaded-per-machine contract (pkg/machine is never shared
// across goroutines).
package fuzz

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sm83/gbcore/pkg/machine"
)

// Property is one named, independently checkable rule. Check receives a
// seeded random source and returns a human-readable failure description,
// or "" if the property held for this trial.
type Property struct {
	Name  string
	Check func(rnd *rand.Rand) string
}

// Violation records one property failure for reporting.
type Violation struct {
	Property string
	Detail   string
}

// Table is a mutex-guarded collection of violations.
type Table struct {
	mu         sync.Mutex
	violations []Violation
}

func NewTable() *Table { return &Table{} }

func (t *Table) Add(v Violation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.violations = append(t.violations, v)
}

func (t *Table) Violations() []Violation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Violation, len(t.violations))
	copy(out, t.violations)
	return out
}

// WorkerPool runs Iterations trials of each Property spread across
// NumWorkers goroutines, reporting progress on a ticker the way
// pkg/search/worker.go does.
type WorkerPool struct {
	NumWorkers int
	Results    *Table

	checked atomic.Int64
	failed  atomic.Int64
}

func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{NumWorkers: numWorkers, Results: NewTable()}
}

// Stats returns trial/failure counters.
func (wp *WorkerPool) Stats() (checked, failed int64) {
	return wp.checked.Load(), wp.failed.Load()
}

// Run spreads iterations trials of each property across the pool. seed
// seeds a distinct rand.Rand per worker (seed+workerIndex); workers take
// tasks from a shared channel, so which worker's stream runs which task
// is not fixed from one run to the next.
func (wp *WorkerPool) Run(props []Property, iterations int, seed int64, verbose bool) {
	type task struct {
		prop Property
		n    int
	}
	ch := make(chan task, len(props)*wp.NumWorkers)
	perWorker := iterations / wp.NumWorkers
	if perWorker == 0 {
		perWorker = 1
	}
	for _, p := range props {
		for w := 0; w < wp.NumWorkers; w++ {
			ch <- task{prop: p, n: perWorker}
		}
	}
	close(ch)

	done := make(chan struct{})
	start := time.Now()
	if verbose {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					fmt.Printf("  [%s] %d checked | %d failed\n",
						time.Since(start).Round(time.Second), wp.checked.Load(), wp.failed.Load())
				}
			}
		}()
	}

	var wg sync.WaitGroup
	var idx int64
	for i := 0; i < wp.NumWorkers; i++ {
		wg.Add(1)
		workerSeed := seed + int64(i)
		go func(workerSeed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(workerSeed))
			for t := range ch {
				for k := 0; k < t.n; k++ {
					atomic.AddInt64(&idx, 1)
					wp.checked.Add(1)
					if detail := t.prop.Check(rnd); detail != "" {
						wp.failed.Add(1)
						wp.Results.Add(Violation{Property: t.prop.Name, Detail: detail})
					}
				}
			}
		}(workerSeed)
	}
	wg.Wait()
	close(done)

	if verbose {
		fmt.Printf("  [%s] %d checked | %d failed | DONE\n",
			time.Since(start).Round(time.Second), wp.checked.Load(), wp.failed.Load())
	}
}

// newMachine builds a fresh, independent machine — every trial runs in
// isolation, never against one shared across goroutines.
func newMachine() *machine.Machine {
	return machine.New()
}

func randByte(rnd *rand.Rand) uint8 { return uint8(rnd.Intn(256)) }
