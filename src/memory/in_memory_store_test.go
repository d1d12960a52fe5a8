package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestInMemoryStoreWindowBound(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(3)

	for i := 0; i < 5; i++ {
		msg := Message{Role: "user", Content: fmt.Sprintf("m%d", i), At: time.Now()}
		if err := store.Append(ctx, "s1", msg); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.Get(ctx, "s1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected window of 3, got %d", len(got))
	}
	if got[0].Content != "m2" || got[2].Content != "m4" {
		t.Fatalf("window kept wrong messages: %+v", got)
	}
}

func TestInMemoryStoreGetLimit(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(10)
	for i := 0; i < 6; i++ {
		_ = store.Append(ctx, "s1", Message{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}
	got, _ := store.Get(ctx, "s1", 2)
	if len(got) != 2 || got[1].Content != "m5" {
		t.Fatalf("limit not honored: %+v", got)
	}
}

func TestInMemoryStoreConcurrentAppendsNoLoss(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(1000)

	const writers = 8
	const perWriter = 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = store.Append(ctx, "shared", Message{Role: "user", Content: fmt.Sprintf("w%d-%d", w, i)})
			}
		}(w)
	}
	wg.Wait()

	got, _ := store.Get(ctx, "shared", 1000)
	if len(got) != writers*perWriter {
		t.Fatalf("lost updates: got %d messages, want %d", len(got), writers*perWriter)
	}
}

func TestInMemoryStoreSessionsIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(10)
	_ = store.Append(ctx, "a", Message{Role: "user", Content: "hello a"})
	_ = store.Append(ctx, "b", Message{Role: "user", Content: "hello b"})

	if err := store.Reset(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	a, _ := store.Get(ctx, "a", 0)
	b, _ := store.Get(ctx, "b", 0)
	if len(a) != 0 {
		t.Fatalf("reset session still has messages: %+v", a)
	}
	if len(b) != 1 || b[0].Content != "hello b" {
		t.Fatalf("other session affected by reset: %+v", b)
	}
}
