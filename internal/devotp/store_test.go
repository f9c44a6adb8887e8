package devotp

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put(ctx, "alice@x.edu", "483920", time.Now().UTC().Add(5*time.Minute))

	code, ok := store.Get(ctx, "alice@x.edu")
	if !ok {
		t.Fatal("Get should return code after Put")
	}
	if code != "483920" {
		t.Errorf("code = %q, want 483920", code)
	}
}

func TestMemoryStore_Get_Missing(t *testing.T) {
	store := NewMemoryStore()
	code, ok := store.Get(context.Background(), "nobody@x.edu")
	if ok || code != "" {
		t.Errorf("Get = (%q, %v), want empty and false", code, ok)
	}
}

func TestMemoryStore_Get_Expired(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put(ctx, "alice@x.edu", "483920", time.Now().UTC().Add(-time.Minute))

	if _, ok := store.Get(ctx, "alice@x.edu"); ok {
		t.Error("Get should return false for expired code")
	}
	// Entry is cleaned up on first read.
	if _, ok := store.Get(ctx, "alice@x.edu"); ok {
		t.Error("Get should return false after cleanup")
	}
}

func TestMemoryStore_Put_Replaces(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	expiresAt := time.Now().UTC().Add(5 * time.Minute)

	store.Put(ctx, "alice@x.edu", "111111", expiresAt)
	store.Put(ctx, "alice@x.edu", "222222", expiresAt)

	code, _ := store.Get(ctx, "alice@x.edu")
	if code != "222222" {
		t.Errorf("code = %q, want 222222", code)
	}
}
