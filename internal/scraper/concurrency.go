package scraper

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"WordTracker/internal/domain"
)

// MapBounded runs worker over items with at most concurrency calls in
// flight, writing each outcome at its input index so the output keeps
// the input order regardless of completion order. Workers claim
// indices from a shared atomic cursor into the preallocated results
// slice; no index is ever processed twice. A failing item, whether a
// returned error or a panic, never aborts its siblings, and the call
// returns only once every index holds a value or an error.
func MapBounded[T, R any](ctx context.Context, items []T, concurrency int, worker func(ctx context.Context, item T) (R, error)) []domain.Result[R] {
	results := make([]domain.Result[R], len(items))
	if len(items) == 0 {
		return results
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var cursor atomic.Int64
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for n := 0; n < concurrency; n++ {
		go func() {
			defer wg.Done()
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(items) {
					return
				}
				results[i] = runItem(ctx, items[i], worker)
			}
		}()
	}
	wg.Wait()

	return results
}

func runItem[T, R any](ctx context.Context, item T, worker func(ctx context.Context, item T) (R, error)) (res domain.Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("worker panic: %v", r)
		}
	}()
	res.Value, res.Err = worker(ctx, item)
	return res
}
