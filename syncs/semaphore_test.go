package syncs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSemaphore(t *testing.T) {
	sem := NewSemaphore(3)
	var running, peak atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		sem.Acquire()
		wg.Go(func() {
			defer sem.Release()
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			running.Add(-1)
		})
	}
	wg.Wait()
	if peak.Load() > 3 {
		t.Fatalf("got %v", peak.Load())
	}
}

func TestSemaphoreContext(t *testing.T) {
	sem := NewSemaphore(1)
	if err := sem.AcquireContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sem.AcquireContext(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	sem.Release()
	if err := sem.AcquireContext(context.Background()); err != nil {
		t.Fatal(err)
	}
}
