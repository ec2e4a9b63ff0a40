package cache

import (
	"testing"
	"time"
)

func TestCache_HitAndExpiry(t *testing.T) {
	c := New(30 * time.Millisecond)

	c.Set("k", 42)
	if v, ok := c.Get("k"); !ok || v.(int) != 42 {
		t.Fatalf("expected hit with 42, got %v %v", v, ok)
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("entry must expire after the TTL")
	}
}

func TestCache_MissAndDelete(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Fatalf("expected miss")
	}

	c.Set("k", "v")
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatalf("deleted entry must not be served")
	}
}
