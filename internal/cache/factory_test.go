package cache

import (
	"testing"
	"time"
)

func TestFactory_New_UnknownProvider(t *testing.T) {
	_, err := New("nonexistent", ProviderConfig{})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestFactory_RegisteredProviders(t *testing.T) {
	names := RegisteredProviders()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["memory"] || !found["redis"] {
		t.Fatalf("Expected memory and redis providers, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Providers not sorted: %v", names)
			break
		}
	}
}

func TestFactory_Register_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic when registering a duplicate provider")
		}
	}()
	Register("memory", newMemoryCache)
}

func TestFactory_New_Redis_InvalidAddress(t *testing.T) {
	_, err := New("redis", ProviderConfig{
		Size:         100,
		TTL:          time.Hour,
		RedisAddress: "localhost:59999", // unlikely to have Redis here
	})
	if err == nil {
		t.Fatal("Expected error when connecting to invalid Redis address")
	}
}
