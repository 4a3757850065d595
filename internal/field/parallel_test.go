package field

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestParallelFor_CoversRange(t *testing.T) {
	tests := []struct {
		n, minChunk, workers int
	}{
		{0, 1, 4},
		{1, 1, 4},
		{10, 100, 4},
		{1000, 10, 3},
		{1001, 7, 8},
		{64, 1, 64},
	}

	for _, tt := range tests {
		hits := make([]int32, tt.n)
		err := ParallelFor(context.Background(), tt.n, tt.minChunk, tt.workers, func(_ context.Context, start, end int) error {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("n=%d: %v", tt.n, err)
		}
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times", tt.n, i, h)
			}
		}
	}
}

func TestParallelFor_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := ParallelFor(context.Background(), 100, 1, 4, func(_ context.Context, start, _ int) error {
		if start == 0 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}
