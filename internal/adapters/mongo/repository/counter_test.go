package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/storehaus/orders-api/internal/adapters/mongo/repository"
)

func TestCounterRepository_Next(t *testing.T) {
	freshDB := testClient.Database("test_counters")
	counters := repository.NewCounterRepository(freshDB)
	ctx := context.Background()

	t.Run("starts at one and increments", func(t *testing.T) {
		first, err := counters.Next(ctx, "widgets")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if first != 1 {
			t.Fatalf("expected first id 1, got %d", first)
		}

		second, err := counters.Next(ctx, "widgets")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if second != 2 {
			t.Fatalf("expected second id 2, got %d", second)
		}
	})

	t.Run("sequences are independent per name", func(t *testing.T) {
		id, err := counters.Next(ctx, "gadgets")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != 1 {
			t.Fatalf("expected independent sequence to start at 1, got %d", id)
		}
	})

	t.Run("concurrent callers never see duplicates", func(t *testing.T) {
		const n = 20
		ids := make(chan int64, n)
		var wg sync.WaitGroup

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id, err := counters.Next(ctx, "concurrent")
				if err != nil {
					t.Errorf("Next failed: %v", err)
					return
				}
				ids <- id
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			if seen[id] {
				t.Fatalf("duplicate id %d assigned", id)
			}
			seen[id] = true
		}
		if len(seen) != n {
			t.Fatalf("expected %d unique ids, got %d", n, len(seen))
		}
	})
}
