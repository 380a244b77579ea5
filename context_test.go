package flowstate_test

import (
	"sync"
	"testing"

	. "github.com/okenna/flowstate"
)

func TestContextGetSetDelete(t *testing.T) {
	c := NewContext()

	if got := c.Get("missing"); got != nil {
		t.Errorf("expected nil for missing key, got %v", got)
	}

	c.Set("k", "v")
	if got := c.Get("k"); got != "v" {
		t.Errorf("expected v, got %v", got)
	}

	c.Delete("k")
	if got := c.Get("k"); got != nil {
		t.Errorf("expected nil after delete, got %v", got)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty context, got %d keys", c.Len())
	}
}

func TestContextUpdate(t *testing.T) {
	c := NewContext()
	for i := 0; i < 3; i++ {
		c.Update("count", func(old any) any {
			n, _ := old.(int)
			return n + 1
		})
	}
	if got := c.Get("count"); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestContextSnapshotIsCopy(t *testing.T) {
	c := NewContext()
	c.Set("a", 1)

	snap := c.Snapshot()
	snap["a"] = 99
	snap["b"] = 2

	if got := c.Get("a"); got != 1 {
		t.Errorf("snapshot mutation leaked into context: %v", got)
	}
	if got := c.Get("b"); got != nil {
		t.Errorf("snapshot insertion leaked into context: %v", got)
	}
}

func TestContextConcurrentAccess(t *testing.T) {
	c := NewContext()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Update("n", func(old any) any {
					v, _ := old.(int)
					return v + 1
				})
				c.Get("n")
			}
		}()
	}
	wg.Wait()

	if got := c.Get("n"); got != 800 {
		t.Errorf("expected 800 after concurrent updates, got %v", got)
	}
}
