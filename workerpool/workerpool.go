// Package workerpool implements spec.md §4.5: partitioning a ray batch (or
// any point batch) into contiguous chunks and executing one worker per
// chunk, concatenating results in chunk order regardless of completion
// order.
//
// Grounded on original_source/volpy/scene.py's Scene._cast_rays and
// original_source/volpy/peval.py, using golang.org/x/sync/errgroup (present
// in cogentcore-core's go.mod) in place of Python's threading.Thread/
// multiprocessing.Pool list-of-workers idiom.
package workerpool

import (
	"golang.org/x/sync/errgroup"

	"volraster/volerr"
)

// Method selects the concurrency mechanism for a render or Peval call.
type Method string

const (
	Thread Method = "thread"
	Fork   Method = "fork"
)

// Chunk describes one contiguous slice of a partitioned batch: indices
// [Start, Start+Len) of the original input.
type Chunk struct {
	Start, Len int
}

// Partition splits n items across workers into chunk = max(1, n/workers)
// sized contiguous chunks, the final chunk absorbing the remainder
// (spec.md §4.5).
func Partition(n, workers int) []Chunk {
	if n == 0 {
		return nil
	}
	chunkSize := n / workers
	if chunkSize < 1 {
		chunkSize = 1
	}
	var chunks []Chunk
	for start := 0; start < n; start += chunkSize {
		length := chunkSize
		if start+length > n {
			length = n - start
		}
		chunks = append(chunks, Chunk{Start: start, Len: length})
	}
	return chunks
}

// Run executes work(chunk) for every chunk produced by Partition(n,
// workers), in parallel, and returns results in chunk order. method="fork"
// is implemented as an alias for "thread" (see SPEC_FULL.md §4.5 — Go has
// no practical equivalent to Python's closure-pickling process fork).
func Run[T any](n, workers int, method Method, work func(c Chunk) ([]T, error)) ([]T, error) {
	if workers < 1 {
		return nil, &volerr.InvalidWorkersError{}
	}
	if err := ValidateMethod(method); err != nil {
		return nil, err
	}

	chunks := Partition(n, workers)
	results := make([][]T, len(chunks))

	var g errgroup.Group
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			r, err := work(c)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []T
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// ValidateMethod returns InvalidMethodError for anything but "thread" or
// "fork".
func ValidateMethod(method Method) error {
	switch method {
	case Thread, Fork:
		return nil
	default:
		return &volerr.InvalidMethodError{Name: string(method)}
	}
}
