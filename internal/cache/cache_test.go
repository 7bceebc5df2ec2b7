// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCacheBasicOperations(t *testing.T) {
	c := New[string](1 * time.Minute)
	defer c.Close()

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	_, exists = c.Get("key2")
	if exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New[string](100 * time.Millisecond)
	defer c.Close()

	c.Set("key1", "value1")

	if _, exists := c.Get("key1"); !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(150 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if stats := c.GetStats(); stats.Evictions != 1 {
		t.Errorf("Expected 1 eviction, got %d", stats.Evictions)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[int](1 * time.Minute)
	defer c.Close()

	c.Set("key1", 1)
	c.Delete("key1")

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[int](1 * time.Minute)
	defer c.Close()

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("key%d", i), i)
	}

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d entries", c.Len())
	}
	if stats := c.GetStats(); stats.TotalKeys != 0 || stats.Evictions != 3 {
		t.Errorf("Expected 0 keys and 3 evictions, got %d and %d", stats.TotalKeys, stats.Evictions)
	}
}

func TestCacheMaxEntries(t *testing.T) {
	c := NewWithOptions[string](time.Minute, Options{MaxEntries: 2})
	defer c.Close()

	c.SetWithTTL("short", "a", 10*time.Second)
	c.SetWithTTL("long", "b", time.Hour)
	c.Set("new", "c")

	if _, ok := c.Get("short"); ok {
		t.Error("Expected the entry closest to expiry to be evicted")
	}
	for _, key := range []string{"long", "new"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("Expected %s to survive eviction", key)
		}
	}

	// Overwriting an existing key does not evict
	c.Set("new", "d")
	if c.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", c.Len())
	}
}

func TestCacheBackgroundCleanup(t *testing.T) {
	c := NewWithOptions[string](10*time.Millisecond, Options{CleanupInterval: 20 * time.Millisecond})
	defer c.Close()

	c.Set("key1", "value1")

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Expected background cleanup to remove expired entry")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCacheHitRate(t *testing.T) {
	c := New[string](time.Minute)
	defer c.Close()

	if c.HitRate() != 0 {
		t.Errorf("Expected 0%% hit rate on empty cache, got %.2f", c.HitRate())
	}

	c.Set("key1", "value1")
	c.Get("key1")
	c.Get("key1")
	c.Get("key1")
	c.Get("missing")

	if rate := c.HitRate(); rate != 75.0 {
		t.Errorf("Expected 75%% hit rate, got %.2f", rate)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key%d-%d", id, j)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 1000 {
		t.Errorf("Expected 1000 entries, got %d", c.Len())
	}
}

func TestCacheCloseIsIdempotent(t *testing.T) {
	c := New[string](time.Minute)
	c.Close()
	c.Close()
}

func TestGenerateKey(t *testing.T) {
	type query struct {
		Price    *float64 `json:"price"`
		Category string   `json:"category"`
	}
	price := 299.0

	k1 := GenerateKey("mobile", query{Price: &price})
	k2 := GenerateKey("mobile", query{Price: &price})
	k3 := GenerateKey("mobile", query{Category: "Budget"})
	k4 := GenerateKey("broadband", query{Price: &price})

	if k1 != k2 {
		t.Error("Expected identical params to produce identical keys")
	}
	if k1 == k3 {
		t.Error("Expected different params to produce different keys")
	}
	if k1 == k4 {
		t.Error("Expected different namespaces to produce different keys")
	}
}
