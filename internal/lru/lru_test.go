package lru

import (
	"errors"
	"strconv"
	"sync"
	"testing"
)

func value(v int) func() (int, error) {
	return func() (int, error) { return v, nil }
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](10)
	calls := 0
	create := func() (int, error) {
		calls++
		return 42, nil
	}

	for range 3 {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 42 {
			t.Fatalf("GetOrCreate = %d, %v, want 42, nil", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if s := c.Stats(); s.Hits != 2 || s.Misses != 1 || s.Len != 1 {
		t.Errorf("stats = %+v, want 2 hits, 1 miss and 1 entry", s)
	}
}

func TestGetOrCreateErrorNotCached(t *testing.T) {
	c := New[string, int](10)
	boom := errors.New("boom")

	if _, err := c.GetOrCreate("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if n := c.Stats().Len; n != 0 {
		t.Errorf("failed create should not be cached, len = %d", n)
	}
	if v, err := c.GetOrCreate("k", value(7)); err != nil || v != 7 {
		t.Errorf("retry = %d, %v, want 7, nil", v, err)
	}
}

func TestEviction(t *testing.T) {
	c := New[int, int](8)
	for i := range 8 {
		c.GetOrCreate(i, value(i))
	}
	// Touch the first entries so they are the most recently used.
	for i := range 4 {
		c.GetOrCreate(i, value(i))
	}
	c.GetOrCreate(100, value(100))

	s := c.Stats()
	if s.Len > 8 {
		t.Errorf("len = %d, want <= 8", s.Len)
	}
	if s.Evictions == 0 {
		t.Error("expected evictions to be counted")
	}
	for i := range 4 {
		created := false
		c.GetOrCreate(i, func() (int, error) {
			created = true
			return i, nil
		})
		if created {
			t.Errorf("recently used key %d was evicted", i)
		}
	}
}

func TestDelete(t *testing.T) {
	c := New[string, int](0)
	c.GetOrCreate("a", value(1))
	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if n := c.Stats().Len; n != 0 {
		t.Errorf("len after Delete = %d, want 0", n)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[string, int](50)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := strconv.Itoa((g * i) % 100)
				_, _ = c.GetOrCreate(key, func() (int, error) { return i, nil })
			}
		}()
	}
	wg.Wait()
	if n := c.Stats().Len; n > 100 {
		t.Errorf("len = %d, want <= 100", n)
	}
}
