// Package parallel provides worker fan-out for independent evaluation
// episodes. Work items are expected to be coarse (each typically owns its
// own tape), so the default chunking is per-item rather than cache-line
// sized.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
	MinPerItem int  // Minimum items before fan-out pays for itself.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinPerItem: 2, // A single episode never fans out.
	}
}

// For executes f(i) for i in [0, n), fanning out across workers when the
// configuration allows it. f must not share mutable episode state
// (tapes, arenas) between items; each item owns its own.
// Falls back to sequential execution when parallelism is disabled or n is
// too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinPerItem || cfg.NumWorkers < 2 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, 1)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
