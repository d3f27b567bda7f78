// Package fanout provides a bounded, chunked parallel executor used by
// the sum-check prover's data-parallel inner loops. It plays the role
// gnark-crypto's unexported internal/parallel.Execute plays inside that
// module: split [0,n) into contiguous chunks and run one goroutine per
// chunk, capped at GOMAXPROCS.
package fanout

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Execute runs work(start, end) over chunks partitioning [0, n), using
// up to GOMAXPROCS goroutines. It blocks until every chunk has run. A
// panic inside work propagates to the caller of Execute.
func Execute(n int, work func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		work(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	panics := make(chan interface{}, workers)
	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		start := start
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					panics <- r
				}
			}()
			work(start, end)
			return nil
		})
	}
	_ = g.Wait()
	select {
	case r := <-panics:
		panic(r)
	default:
	}
}
