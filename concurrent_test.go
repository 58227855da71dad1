// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package lru

import (
	"fmt"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

// Ten workers each insert a hundred distinct keys into a cache that holds
// a hundred, reading every key straight back.
func TestConcurrent_InsertAndLookup(t *testing.T) {
	const (
		workers  = 10
		perGroup = 100
		capacity = 100
	)
	l := mustNew[string, int](t, capacity)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			for j := 0; j < perGroup; j++ {
				key := fmt.Sprintf("key-%d-%d", w, j)
				if _, err := l.Add(key, j); err != nil {
					return err
				}
				v, ok, err := l.Get(key)
				if err != nil {
					return err
				}
				// another worker may already have pushed it out
				if ok && v != j {
					return fmt.Errorf("%s: got %d, want %d", key, v, j)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("worker failed: %v", err)
	}

	if n := l.mustLen(t); n != capacity {
		t.Fatalf("bad len after join: %d", n)
	}
}

func TestConcurrent_FinalCountBelowCapacity(t *testing.T) {
	const (
		workers  = 8
		perGroup = 50
	)
	l := mustNew[int, int](t, 1000)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			for j := 0; j < perGroup; j++ {
				if _, err := l.Add(w*perGroup+j, j); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("worker failed: %v", err)
	}
	if n := l.mustLen(t); n != workers*perGroup {
		t.Fatalf("expected %d entries, got %d", workers*perGroup, n)
	}
}

type pair struct {
	a, b int
}

// Writers overwrite a small key space with pairs whose halves must always
// agree; readers must never see a mixed pair.
func TestConcurrent_NoTornValues(t *testing.T) {
	l := mustNew[int, pair](t, 4)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				n := w*10000 + i
				if _, err := l.Add(i%6, pair{n, n}); err != nil {
					errs <- err
					return
				}
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				v, ok, err := l.Get(i % 6)
				if err != nil {
					errs <- err
					return
				}
				if ok && v.a != v.b {
					errs <- fmt.Errorf("torn value %+v", v)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	if n := l.mustLen(t); n > 4 {
		t.Fatalf("len %d exceeds capacity", n)
	}
}
