// Package parallelutil holds the worker-partitioning helper shared by the
// collector, contact-generation, mobility, and sparse-matrix packages.
// Adapted from the teacher's dynamo.ParallelFor: same chunk-and-goroutine
// shape, generalized to a configurable worker count (the core needs to
// match the ConstraintCollector's thread-pool count, not a hardcoded 4)
// and to hand back which worker index ran a given chunk, so callers that
// must tag output by thread id (contact generation appending into
// per-thread collector pools) stay consistent with the actual partition.
package parallelutil

import (
	"runtime"
	"sync"
)

// DefaultWorkers returns a sensible worker count for CPU-bound partitioning
// when the caller has no collector-specific thread count to match.
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// For partitions [0, n) into at most `workers` contiguous chunks and runs
// fn(workerIndex, start, end) for each chunk on its own goroutine,
// blocking until all complete. If n is too small to be worth splitting,
// fn runs once inline with workerIndex 0. workerIndex is always in
// [0, workers) as passed in (never renumbered), so callers may use it to
// index into workers-sized slices (e.g. collector thread pools).
func For(n, workers, minChunk int, fn func(workerIndex, start, end int)) {
	if workers < 1 {
		workers = 1
	}
	if n <= minChunk || workers <= 1 {
		fn(0, 0, n)
		return
	}
	effective := workers
	if n/minChunk < effective {
		effective = n / minChunk
	}
	if effective < 1 {
		effective = 1
	}

	chunkSize := (n + effective - 1) / effective

	var wg sync.WaitGroup
	wg.Add(effective)
	for w := 0; w < effective; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			wg.Done()
			continue
		}
		go func(worker, s, e int) {
			defer wg.Done()
			fn(worker, s, e)
		}(w, start, end)
	}
	wg.Wait()
}
