package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	lru "github.com/venkatsvpr/sharedlru"
	"github.com/venkatsvpr/sharedlru/metrics"
)

// Config sizes one benchmark run.
type Config struct {
	Workers  int
	Keys     int
	Capacity int
}

// Result summarises one benchmark run.
type Result struct {
	Elapsed time.Duration
	Len     int
	Hits    int64
	Misses  int64
}

// Run has every worker insert its own keys into one shared cache, reading
// each key back straight after inserting it. The first error, including a
// poisoned cache, stops the run.
func Run(cfg Config, m *metrics.Metrics) (Result, error) {
	if cfg.Workers < 1 {
		return Result{}, fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}

	opts := []lru.Option[string, int]{}
	if m != nil {
		opts = append(opts, lru.WithMetrics[string, int](m))
	}
	cache, err := lru.NewWithOpts(cfg.Capacity, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("create cache: %w", err)
	}

	var hits, misses atomic.Int64
	start := time.Now()

	var g errgroup.Group
	for w := 0; w < cfg.Workers; w++ {
		w := w // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			for j := 0; j < cfg.Keys; j++ {
				key := fmt.Sprintf("key-%d-%d", w, j)
				if _, err := cache.Add(key, j); err != nil {
					return fmt.Errorf("add %s: %w", key, err)
				}
				_, ok, err := cache.Get(key)
				if err != nil {
					return fmt.Errorf("get %s: %w", key, err)
				}
				if ok {
					hits.Add(1)
				} else {
					misses.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	n, err := cache.Len()
	if err != nil {
		return Result{}, err
	}
	return Result{
		Elapsed: elapsed,
		Len:     n,
		Hits:    hits.Load(),
		Misses:  misses.Load(),
	}, nil
}
