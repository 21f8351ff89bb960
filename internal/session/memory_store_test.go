package session

import (
	"context"
	"errors"
	"testing"

	"Lambda-Link/internal/notation"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Create(ctx, &Session{ID: "s1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, &Session{ID: "s1"}); !errors.Is(err, ErrSessionConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	state := notation.State{
		Domains:     []string{"cd"},
		Definitions: map[string]string{"fe": "custom"},
	}
	if err := store.Save(ctx, "s1", state); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.State.Domains) != 1 || got.State.Domains[0] != "cd" {
		t.Fatalf("domains lost: %+v", got.State)
	}
	if got.State.Definitions["fe"] != "custom" {
		t.Fatalf("definitions lost: %+v", got.State)
	}

	// 返回的是副本：调用方修改不应影响存储内的状态。
	got.State.Definitions["fe"] = "mutated"
	again, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.State.Definitions["fe"] != "custom" {
		t.Fatalf("store state should be isolated from callers: %+v", again.State)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "absent"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
