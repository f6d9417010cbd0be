package search

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/trieminer/trieminer/nibble"
	"github.com/trieminer/trieminer/sample"
	"github.com/trieminer/trieminer/types"
)

// CPUConfig configures the CPU search engine.
type CPUConfig struct {
	// Workers is the number of parallel worker goroutines. Defaults to
	// runtime.NumCPU() if zero.
	Workers int
	// Stats, if non-nil, receives periodic attempt counts for hashrate
	// reporting. Optional.
	Stats *Stats
}

// DefaultCPUConfig returns the default CPU engine configuration.
func DefaultCPUConfig() CPUConfig {
	return CPUConfig{Workers: runtime.NumCPU()}
}

// CPUEngine is a worker-pool implementation of Engine. Each worker owns a
// disjoint range of the attempt-index space and races the others under the
// first-winner protocol: an atomic flag published with a release store,
// polled with acquire loads, guarding a single result slot.
type CPUEngine struct {
	config CPUConfig
}

// NewCPUEngine constructs a CPUEngine. A zero Workers field is replaced with
// runtime.NumCPU().
func NewCPUEngine(cfg CPUConfig) *CPUEngine {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &CPUEngine{config: cfg}
}

// foundFlag implements the first-winner protocol described in the package
// doc: 0 (searching) to 1 (found) via CompareAndSwap, with the winner
// writing the result slot only after winning the swap, and readers loading
// the flag before trusting the slot.
type foundFlag struct {
	state  atomic.Uint32
	result Result
}

func (f *foundFlag) tryPublish(r Result) bool {
	if f.state.CompareAndSwap(0, 1) {
		f.result = r
		return true
	}
	return false
}

func (f *foundFlag) isSet() bool {
	return f.state.Load() != 0
}

// Search implements Engine. It spawns Parallelism (or the engine's
// configured default) workers, each scanning attempts in
// [req.SeedBase+k*req.AttemptsBudget, req.SeedBase+(k+1)*req.AttemptsBudget).
// It returns as soon as one worker finds a match, the budget is exhausted
// across all workers, or ctx is cancelled.
func (e *CPUEngine) Search(ctx context.Context, req Request) (Result, error) {
	if err := ValidateDepth(req.Depth); err != nil {
		return Result{}, err
	}
	if req.SeedBase == 0 {
		req.SeedBase = 1
	}

	workers := e.config.Workers
	if req.Parallelism > 0 {
		workers = int(req.Parallelism)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var flag foundFlag
	var wg sync.WaitGroup
	wg.Add(workers)

	for k := 0; k < workers; k++ {
		go func(k uint64) {
			defer wg.Done()
			start := req.SeedBase + k*req.AttemptsBudget
			end := start + req.AttemptsBudget
			const pollInterval = 1024
			for attempt := start; attempt < end; attempt++ {
				if attempt%pollInterval == 0 {
					if e.config.Stats != nil && attempt > start {
						e.config.Stats.Mark(pollInterval)
					}
					if flag.isSet() || ctx.Err() != nil {
						return
					}
				}
				candidate := sample.CandidateAt(attempt)
				digest := req.Derivation.Derive(candidate)
				refArr := [32]byte(req.Reference)
				digArr := [32]byte(digest)
				if !nibble.ShareNibbles(refArr, digArr, req.Depth) {
					continue
				}
				if flag.tryPublish(Result{Address: types.Address(candidate), Digest: digest}) {
					return
				}
				return
			}
		}(uint64(k))
	}

	wg.Wait()

	if flag.isSet() {
		return flag.result, nil
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	return Result{}, ErrExhausted
}
