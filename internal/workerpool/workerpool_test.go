package workerpool

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNaiveRunsAllJobs(t *testing.T) {
	p := NewNaive(0)

	var count atomic.Int64
	for i := 0; i < 50; i++ {
		p.Spawn(func() { count.Add(1) })
	}
	p.Close()

	require.Equal(t, int64(50), count.Load())
}

func TestFixedBoundsConcurrency(t *testing.T) {
	p := NewFixed(4)

	var active atomic.Int32
	var maxActive atomic.Int32
	release := make(chan struct{})

	// Spawn blocks once all four workers are busy, so the jobs are submitted
	// from a separate goroutine while this one releases them.
	spawned := make(chan struct{})
	go func() {
		for i := 0; i < 8; i++ {
			p.Spawn(func() {
				n := active.Add(1)
				for {
					cur := maxActive.Load()
					if n <= cur || maxActive.CompareAndSwap(cur, n) {
						break
					}
				}
				<-release
				active.Add(-1)
			})
		}
		close(spawned)
	}()

	for active.Load() < 4 {
		runtime.Gosched()
	}
	close(release)
	<-spawned
	p.Close()

	require.LessOrEqual(t, maxActive.Load(), int32(4))
}
