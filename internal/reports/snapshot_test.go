package reports

import (
	"testing"
	"time"
)

func TestStoreStartsEmpty(t *testing.T) {
	store := NewStore()
	if _, ok := store.Load(); ok {
		t.Fatalf("fresh store should report no snapshot")
	}
}

func TestStorePublishAndLoad(t *testing.T) {
	store := NewStore()
	gen := store.Begin()
	snap := &Snapshot{
		Cur:       []StockRow{{ProductID: 1}},
		FetchedAt: time.Now(),
	}
	if !store.Publish(gen, snap) {
		t.Fatalf("publish with current generation should succeed")
	}
	got, ok := store.Load()
	if !ok || got != snap {
		t.Fatalf("Load() = %v, %v; want the published snapshot", got, ok)
	}
}

func TestStoreDropsSupersededGeneration(t *testing.T) {
	store := NewStore()

	slow := store.Begin()
	fast := store.Begin()

	fresh := &Snapshot{Cur: []StockRow{{ProductID: 2}}}
	if !store.Publish(fast, fresh) {
		t.Fatalf("newest generation must publish")
	}

	// The earlier reload finishes late; its data must not clobber fresher rows.
	if store.Publish(slow, &Snapshot{Cur: []StockRow{{ProductID: 1}}}) {
		t.Fatalf("superseded generation must be dropped")
	}

	got, _ := store.Load()
	if got != fresh {
		t.Fatalf("store kept stale snapshot %+v", got)
	}
}

func TestStoreRejectsNilSnapshot(t *testing.T) {
	store := NewStore()
	gen := store.Begin()
	if store.Publish(gen, nil) {
		t.Fatalf("nil snapshot must not publish")
	}
}
