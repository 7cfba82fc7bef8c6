package fsm

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, 1, &Session{State: "a", Fields: map[string]string{"k": "v"}}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	other, err := store.Get(ctx, 2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if other != nil {
		t.Fatalf("user 2 should have no session, got %+v", other)
	}

	session, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if session == nil || session.State != "a" || session.Fields["k"] != "v" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestMemoryStoreClonesOnGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, 1, &Session{State: "a", Fields: map[string]string{}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	first, _ := store.Get(ctx, 1)
	first.Fields["dirty"] = "yes"

	second, _ := store.Get(ctx, 1)
	if _, ok := second.Fields["dirty"]; ok {
		t.Fatal("mutating a returned session leaked into the store")
	}
}

func TestMemoryStoreClearIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Clear(ctx, 42); err != nil {
		t.Fatalf("Clear of absent session: %v", err)
	}
	if err := store.Set(ctx, 42, &Session{State: "a", Fields: map[string]string{}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Clear(ctx, 42); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := store.Clear(ctx, 42); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if session, _ := store.Get(ctx, 42); session != nil {
		t.Fatalf("session survived Clear: %+v", session)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for range 100 {
				_ = store.Set(ctx, id, &Session{State: "a", Fields: map[string]string{}})
				_, _ = store.Get(ctx, id)
				_ = store.Clear(ctx, id)
			}
		}(int64(i))
	}
	wg.Wait()
}
