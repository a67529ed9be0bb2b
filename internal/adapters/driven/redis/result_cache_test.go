package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/harshbhaskerwar28/Adobe-DocMind-AI-TeamX/internal/core/domain"
)

var testSlots = []string{"ai_insights", "similarity_connections", "podcast_recommendations"}

func TestResultCacheStore_SaveAndLoad(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewResultCacheStore(client, testSlots)
	ctx := context.Background()

	payload := []byte(`{"summary":"one theme"}`)
	if err := store.Save(ctx, "ai_insights", payload, "a,b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, fingerprint, err := store.Load(ctx, "ai_insights")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload mismatch: %s", got)
	}
	if fingerprint != "a,b" {
		t.Errorf("expected fingerprint a,b, got %s", fingerprint)
	}
}

func TestResultCacheStore_LoadEmptySlot(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewResultCacheStore(client, testSlots)
	_, _, err := store.Load(context.Background(), "ai_insights")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResultCacheStore_SlotsAreIndependent(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewResultCacheStore(client, testSlots)
	ctx := context.Background()

	_ = store.Save(ctx, "ai_insights", []byte(`{"a":1}`), "fp-1")
	_ = store.Save(ctx, "podcast_recommendations", []byte(`{"b":2}`), "fp-2")

	if err := store.Clear(ctx, "ai_insights"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := store.Load(ctx, "ai_insights"); !errors.Is(err, domain.ErrNotFound) {
		t.Error("expected cleared slot to be empty")
	}
	if _, fp, err := store.Load(ctx, "podcast_recommendations"); err != nil || fp != "fp-2" {
		t.Errorf("other slot must be untouched: %v %s", err, fp)
	}
}

func TestResultCacheStore_ClearAll(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewResultCacheStore(client, testSlots)
	ctx := context.Background()

	for _, slot := range testSlots {
		_ = store.Save(ctx, slot, []byte(`{}`), "fp")
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, slot := range testSlots {
		if _, _, err := store.Load(ctx, slot); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected slot %s cleared, got %v", slot, err)
		}
	}
}
