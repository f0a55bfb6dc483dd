package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Overlay stages writes on top of a base ledger. Reads see staged state
// first, then fall through; nothing reaches the base until Commit. An
// abandoned overlay leaves the base untouched, which is how failed
// operations roll back.
type Overlay struct {
	base    Ledger
	writes  map[string][]byte
	deletes map[string]struct{}
}

// NewOverlay wraps a base ledger with an empty staging area.
func NewOverlay(base Ledger) *Overlay {
	return &Overlay{
		base:    base,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

func (o *Overlay) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := o.writes[key]; ok {
		return value, nil
	}
	if _, ok := o.deletes[key]; ok {
		return nil, ErrNotFound
	}
	return o.base.Get(ctx, key)
}

func (o *Overlay) Put(_ context.Context, key string, value []byte) error {
	delete(o.deletes, key)
	o.writes[key] = value
	return nil
}

func (o *Overlay) Delete(_ context.Context, key string) error {
	delete(o.writes, key)
	o.deletes[key] = struct{}{}
	return nil
}

// QueryByPrefix merges staged writes into the base scan, honoring staged
// deletes, and returns the result in ascending key order.
func (o *Overlay) QueryByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	base, err := o.base.QueryByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	merged := make(map[string][]byte, len(base))
	for _, entry := range base {
		merged[entry.Key] = entry.Value
	}
	for key := range o.deletes {
		if strings.HasPrefix(key, prefix) {
			delete(merged, key)
		}
	}
	for key, value := range o.writes {
		if strings.HasPrefix(key, prefix) {
			merged[key] = value
		}
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, Entry{Key: key, Value: merged[key]})
	}
	return entries, nil
}

// Commit flushes the staged state to the base ledger in deterministic key
// order. The overlay is drained and can be reused afterwards.
func (o *Overlay) Commit(ctx context.Context) error {
	keys := make([]string, 0, len(o.deletes))
	for key := range o.deletes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := o.base.Delete(ctx, key); err != nil {
			return fmt.Errorf("commit delete %s: %w", key, err)
		}
	}

	keys = keys[:0]
	for key := range o.writes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := o.base.Put(ctx, key, o.writes[key]); err != nil {
			return fmt.Errorf("commit put %s: %w", key, err)
		}
	}

	o.writes = make(map[string][]byte)
	o.deletes = make(map[string]struct{})
	return nil
}
