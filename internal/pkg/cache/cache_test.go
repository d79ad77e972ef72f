package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestGetAfterTTLRemovesEntry(t *testing.T) {
	clock := newFakeClock()
	c := New[string, string](10, time.Second)
	c.now = clock.now

	c.Set("k", "v")

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	clock.advance(1100 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry must be physically removed")
}

func TestBoundedEvictionRemovesOldest(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](3, time.Hour)
	c.now = clock.now

	for i := 0; i < 4; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
		clock.advance(time.Millisecond)
	}

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("k0")
	assert.False(t, ok, "first-inserted key should have been evicted")
	for i := 1; i < 4; i++ {
		_, ok := c.Get(fmt.Sprintf("k%d", i))
		assert.True(t, ok)
	}
}

func TestOverwriteExistingKeyDoesNotEvict(t *testing.T) {
	c := New[string, int](2, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)

	assert.Equal(t, 2, c.Len())
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestSweepCountsRemovals(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](10, time.Minute)
	c.now = clock.now

	c.Set("old1", 1)
	c.Set("old2", 2)
	clock.advance(30 * time.Second)
	c.Set("young", 3)
	clock.advance(45 * time.Second)

	assert.Equal(t, 2, c.Sweep())
	assert.Equal(t, 1, c.Len())
}

func TestDeleteAndClear(t *testing.T) {
	c := New[string, int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](64, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.Set(i%64, g*i)
				c.Get(i % 64)
				if i%100 == 0 {
					c.Sweep()
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 64)
}
