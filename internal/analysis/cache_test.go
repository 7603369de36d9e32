package analysis

import (
	"fmt"
	"testing"
	"time"
)

func TestCacheGetPut(t *testing.T) {
	c := NewCache(10, time.Hour)

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}

	c.Put("k", Result{DocumentType: "offer_letter"})
	got, ok := c.Get("k")
	if !ok {
		t.Fatalf("expected hit after put")
	}
	if got.DocumentType != "offer_letter" {
		t.Fatalf("expected stored result, got %+v", got)
	}
}

func TestCacheExpiresEntries(t *testing.T) {
	c := NewCache(10, time.Hour)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put("k", Result{})

	now = now.Add(59 * time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected entry to survive inside the TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to expire past the TTL")
	}
	if c.Len() != 0 {
		t.Fatalf("expected lazy delete on expired read, len=%d", c.Len())
	}
}

func TestCacheBoundedCapacity(t *testing.T) {
	c := NewCache(50, time.Hour)

	for i := 0; i < 120; i++ {
		c.Put(fmt.Sprintf("key-%d", i), Result{})
	}
	if c.Len() > 50 {
		t.Fatalf("cache exceeded capacity: %d", c.Len())
	}

	// Overwriting an existing key must not evict anything.
	before := c.Len()
	c.Put("key-119", Result{DocumentType: "coe"})
	if c.Len() != before {
		t.Fatalf("overwrite changed entry count: %d -> %d", before, c.Len())
	}
}
