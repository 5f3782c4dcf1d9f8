package inference

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IgorHWebDev/healthcare-sim/internal/llm"
)

func TestCacheKey_Deterministic(t *testing.T) {
	req := genRequest("55-year-old male with crushing chest pain")

	k1 := CacheKey("gemini-2.0-flash", req)
	k2 := CacheKey("gemini-2.0-flash", req)
	if k1 != k2 {
		t.Fatalf("same request produced different keys: %s vs %s", k1, k2)
	}
}

func TestCacheKey_VariesByContent(t *testing.T) {
	base := genRequest("chest pain")

	tests := []struct {
		name string
		req  llm.Request
	}{
		{"different message", genRequest("abdominal pain")},
		{"different system", llm.Request{System: "other", Messages: base.Messages}},
		{"with schema", llm.Request{
			System:   base.System,
			Messages: base.Messages,
			Schema:   &llm.Schema{Name: "medical-case"},
		}},
	}

	baseKey := CacheKey("m", base)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if k := CacheKey("m", tt.req); k == baseKey {
				t.Fatalf("expected distinct key for %s", tt.name)
			}
		})
	}

	if CacheKey("other-model", base) == baseKey {
		t.Fatal("expected distinct key for different model")
	}
}

func TestCache_LookupMissOnEmpty(t *testing.T) {
	c := NewCache(time.Hour)
	if _, ok := c.Lookup("absent"); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestCache_StoreAndLookup(t *testing.T) {
	c := NewCache(time.Hour)
	c.Store("k", json.RawMessage(`{"v":1}`))

	got, ok := c.Lookup("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != `{"v":1}` {
		t.Fatalf("Lookup = %s, want {\"v\":1}", got)
	}
}

func TestCache_OverwriteReplacesEntry(t *testing.T) {
	c := NewCache(time.Hour)
	c.Store("k", json.RawMessage(`{"v":1}`))
	c.Store("k", json.RawMessage(`{"v":2}`))

	got, _ := c.Lookup("k")
	if string(got) != `{"v":2}` {
		t.Fatalf("Lookup = %s, want the overwritten value", got)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	c := NewCache(20 * time.Millisecond)
	c.Store("k", json.RawMessage(`{}`))

	if _, ok := c.Lookup("k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Lookup("k"); ok {
		t.Fatal("expected miss after TTL expiry")
	}
}
