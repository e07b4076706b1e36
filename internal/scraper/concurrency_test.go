package scraper

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapBoundedPreservesOrder(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c", "d", "e"}
	// Earlier items take longer, so completion order differs from
	// input order.
	results := MapBounded(context.Background(), items, 2, func(_ context.Context, item string) (string, error) {
		switch item {
		case "a":
			time.Sleep(40 * time.Millisecond)
		case "b":
			time.Sleep(20 * time.Millisecond)
		}
		return "got:" + item, nil
	})

	if len(results) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(results))
	}
	for i, item := range items {
		if results[i].Err != nil {
			t.Fatalf("item %d error: %v", i, results[i].Err)
		}
		if results[i].Value != "got:"+item {
			t.Fatalf("index %d holds %q, want %q", i, results[i].Value, "got:"+item)
		}
	}
}

func TestMapBoundedHonorsConcurrencyCap(t *testing.T) {
	t.Parallel()

	const limit = 3
	var inflight, peak atomic.Int64

	items := make([]int, 20)
	MapBounded(context.Background(), items, limit, func(_ context.Context, _ int) (int, error) {
		n := inflight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inflight.Add(-1)
		return 0, nil
	})

	if got := peak.Load(); got > limit {
		t.Fatalf("observed %d concurrent workers, cap is %d", got, limit)
	}
}

func TestMapBoundedIsolatesFailures(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c"}
	results := MapBounded(context.Background(), items, 2, func(_ context.Context, item string) (string, error) {
		if item == "b" {
			return "", fmt.Errorf("boom on %s", item)
		}
		return item, nil
	})

	if results[0].Err != nil || results[0].Value != "a" {
		t.Fatalf("item a corrupted: %+v", results[0])
	}
	if results[1].Err == nil {
		t.Fatal("expected error for item b")
	}
	if results[2].Err != nil || results[2].Value != "c" {
		t.Fatalf("item c corrupted: %+v", results[2])
	}
}

func TestMapBoundedRecoversPanics(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3}
	results := MapBounded(context.Background(), items, 3, func(_ context.Context, item int) (int, error) {
		if item == 2 {
			panic("worker exploded")
		}
		return item * 10, nil
	})

	if results[1].Err == nil {
		t.Fatal("expected panic to surface as an item error")
	}
	if results[0].Value != 10 || results[2].Value != 30 {
		t.Fatalf("sibling results corrupted: %+v", results)
	}
}

func TestMapBoundedEmptyInput(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	results := MapBounded(context.Background(), nil, 4, func(_ context.Context, _ int) (int, error) {
		calls.Add(1)
		return 0, nil
	})
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if calls.Load() != 0 {
		t.Fatal("worker must not run for empty input")
	}
}
