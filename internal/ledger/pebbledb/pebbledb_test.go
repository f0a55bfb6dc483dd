package pebbledb

import (
	"context"
	"testing"

	"liquidityEngine/internal/ledger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return s
}

func TestPebbleRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.Get(ctx, "pool|missing"); err != ledger.ErrNotFound {
		t.Fatalf("get missing = %v, want ErrNotFound", err)
	}

	if err := s.Put(ctx, "pool|GALA:USD:3000", []byte(`{"fee":3000}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "pool|GALA:USD:3000")
	if err != nil || string(got) != `{"fee":3000}` {
		t.Fatalf("get = %q, %v", got, err)
	}

	if err := s.Delete(ctx, "pool|GALA:USD:3000"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "pool|GALA:USD:3000"); err != ledger.ErrNotFound {
		t.Fatalf("deleted key still present: %v", err)
	}
}

func TestPebbleQueryByPrefix(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, key := range []string{"posn|p|alice|a", "posn|p|alice|b", "posn|p|bob|a", "pool|p"} {
		if err := s.Put(ctx, key, []byte("v")); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	entries, err := s.QueryByPrefix(ctx, "posn|p|alice|")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Key != "posn|p|alice|a" || entries[1].Key != "posn|p|alice|b" {
		t.Fatalf("unexpected keys: %s, %s", entries[0].Key, entries[1].Key)
	}
}
