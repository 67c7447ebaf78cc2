package cache

import (
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	data := []byte(`{"map_1": "Map 1"}`)
	entry := NewEntry(data, 5*time.Minute)

	if string(entry.Data) != string(data) {
		t.Errorf("Data = %q, want %q", entry.Data, data)
	}
	if entry.IsExpired() {
		t.Error("Fresh entry should not be expired")
	}
	ttl := entry.TTL()
	if ttl <= 4*time.Minute || ttl > 5*time.Minute {
		t.Errorf("TTL = %v, want about 5m", ttl)
	}
}

func TestEntry_IsExpired(t *testing.T) {
	entry := &Entry{
		Data:     []byte("{}"),
		Expires:  time.Now().Add(-1 * time.Second),
		CachedAt: time.Now().Add(-1 * time.Minute),
	}

	if !entry.IsExpired() {
		t.Error("Entry past its expiry should be expired")
	}
	if entry.TTL() != 0 {
		t.Errorf("TTL of expired entry = %v, want 0", entry.TTL())
	}
}
