package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100)
	if c.Capacity() != 100 {
		t.Errorf("Capacity() = %d, want 100", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}

	if got := New[string, int](0).Capacity(); got != DefaultCapacity {
		t.Errorf("Capacity() = %d, want default %d", got, DefaultCapacity)
	}
}

func TestGetSet(t *testing.T) {
	c := New[string, int](10)

	c.Set("key1", 42)
	if val, ok := c.Get("key1"); !ok || val != 42 {
		t.Errorf("Get(key1) = %d, %v, want 42, true", val, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}

	// Overwrite keeps a single entry.
	c.Set("key1", 7)
	if val, _ := c.Get("key1"); val != 7 {
		t.Errorf("Get(key1) after overwrite = %d, want 7", val)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestEviction(t *testing.T) {
	c := New[int, int](4)
	for i := 0; i < 8; i++ {
		c.Set(i, i*10)
	}
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	// The oldest half is gone, the newest half remains.
	for i := 0; i < 4; i++ {
		if _, ok := c.Get(i); ok {
			t.Errorf("entry %d survived eviction", i)
		}
	}
	for i := 4; i < 8; i++ {
		if val, ok := c.Get(i); !ok || val != i*10 {
			t.Errorf("Get(%d) = %d, %v, want %d, true", i, val, ok, i*10)
		}
	}
	if evictions := c.Stats().Evictions; evictions != 4 {
		t.Errorf("Evictions = %d, want 4", evictions)
	}
}

func TestLRUOrder(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry survived")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry was evicted")
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](10)
	calls := 0
	create := func() int {
		calls++
		return 99
	}

	if got := c.GetOrCreate("k", create); got != 99 {
		t.Errorf("GetOrCreate = %d, want 99", got)
	}
	if got := c.GetOrCreate("k", create); got != 99 {
		t.Errorf("GetOrCreate = %d, want 99", got)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if _, ok := c.Get("b"); ok {
		t.Error("entry survived Clear")
	}
}

func TestStats(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("miss")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("hits = %d misses = %d, want 2 and 1", s.Hits, s.Misses)
	}
	if s.HitRate < 0.66 || s.HitRate > 0.67 {
		t.Errorf("HitRate = %v, want ~0.667", s.HitRate)
	}

	c.ResetStats()
	if s := c.Stats(); s.Hits != 0 || s.Misses != 0 {
		t.Errorf("stats not reset: %+v", s)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[string, int](64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa(i % 50)
				c.Set(key, g)
				c.Get(key)
				c.GetOrCreate(key, func() int { return g })
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d, exceeds capacity", c.Len())
	}
}

func BenchmarkGetHit(b *testing.B) {
	c := New[string, int](1024)
	c.Set("key", 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}
