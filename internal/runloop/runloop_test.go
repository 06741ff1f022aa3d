package runloop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsPostedWorkInOrder(t *testing.T) {
	l := New()
	go l.Run()
	defer l.Stop()

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})

	for i := 1; i <= 5; i++ {
		i := i
		l.Do(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == 5 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for posted work")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestLoopDoAfterRunsOnLoop(t *testing.T) {
	l := New()
	go l.Run()
	defer l.Stop()

	done := make(chan struct{})
	start := time.Now()
	l.DoAfter(20*time.Millisecond, func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delayed work")
	}
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestLoopDoAfterStopDropsWork(t *testing.T) {
	l := New()
	go l.Run()
	l.Stop()

	ran := make(chan struct{}, 1)
	l.Do(func() { ran <- struct{}{} })

	select {
	case <-ran:
		t.Fatal("work ran after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoopStopIsIdempotent(t *testing.T) {
	l := New()
	go l.Run()
	l.Stop()
	l.Stop()
}
