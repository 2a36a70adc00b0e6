package source

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxCountLimiterUnlimited(t *testing.T) {
	l := newMaxCountLimiter(0)
	require.False(t, l.exhausted())
	require.Equal(t, 5, l.take(5))
	require.False(t, l.exhausted())
}

func TestMaxCountLimiterPartialTake(t *testing.T) {
	l := newMaxCountLimiter(3)
	require.Equal(t, 2, l.take(2))
	require.Equal(t, 1, l.take(2), "only one slot remains")
	require.True(t, l.exhausted())
	require.Equal(t, 0, l.take(1))
}

func TestMaxCountLimiterConcurrentTake(t *testing.T) {
	l := newMaxCountLimiter(100)
	var wg sync.WaitGroup
	var mu sync.Mutex
	total := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := l.take(3)
			mu.Lock()
			total += n
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Equal(t, 100, total)
	require.True(t, l.exhausted())
}
