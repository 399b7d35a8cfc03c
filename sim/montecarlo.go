package sim

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// TrancheValue is one tranche's Monte Carlo estimate: the mean discounted
// value across paths and its standard error.
type TrancheValue struct {
	Name   string
	PV     float64
	StdErr float64
}

// Result is the Monte Carlo aggregate, tranches in deal order.
type Result struct {
	Tranches []TrancheValue
	Runs     int
}

// ByName returns the value for a named tranche.
func (r *Result) ByName(name string) (TrancheValue, bool) {
	for _, tv := range r.Tranches {
		if tv.Name == name {
			return tv, true
		}
	}
	return TrancheValue{}, false
}

// MonteCarlo prices the structure by averaging independent paths.
//
// Paths are embarrassingly parallel: each one owns its pool, tranches, and
// random source, so workers share nothing but the per-path result slots.
// Every path derives its own seed from cfg.Seed, making the result
// identical for a fixed seed at any worker count.
func MonteCarlo(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("MonteCarlo: %w", err)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > cfg.Runs {
		workers = cfg.Runs
	}

	paths := make([]PathResult, cfg.Runs)
	errs := make([]error, cfg.Runs)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for run := range jobs {
				src := rand.NewSource(pathSeed(cfg.Seed, run))
				paths[run], errs[run] = PricePath(cfg, src)
			}
		}()
	}
	for run := 0; run < cfg.Runs; run++ {
		jobs <- run
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("MonteCarlo: %w", err)
		}
	}

	out := &Result{
		Tranches: make([]TrancheValue, len(cfg.Tranches)),
		Runs:     cfg.Runs,
	}
	sample := make([]float64, cfg.Runs)
	for i, def := range cfg.Tranches {
		for run := range paths {
			sample[run] = paths[run].TranchePV[i]
		}
		tv := TrancheValue{Name: def.Name, PV: stat.Mean(sample, nil)}
		if cfg.Runs > 1 {
			tv.StdErr = stat.StdDev(sample, nil) / math.Sqrt(float64(cfg.Runs))
		}
		out.Tranches[i] = tv
	}
	return out, nil
}

// pathSeed mixes the base seed with the run index via splitmix64 so that
// consecutive runs get decorrelated source states.
func pathSeed(seed uint64, run int) uint64 {
	z := seed + uint64(run+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
