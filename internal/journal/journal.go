// Package journal records committed engine operations as JSON lines. The
// journal is an audit trail, not state: replaying it is never required for
// correctness.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"liquidityEngine/internal/model"
)

// Journal is a sink for committed operation events.
type Journal interface {
	Append(events []model.Event) error
}

// Jsonl appends events to a JSONL file.
type Jsonl struct {
	path string
	mu   sync.Mutex
}

func NewJsonl(path string) *Jsonl {
	return &Jsonl{path: path}
}

// Append writes a batch of events as JSON lines.
func (j *Jsonl) Append(events []model.Event) error {
	if len(events) == 0 {
		return nil
	}

	dir := filepath.Dir(j.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create journal dir: %w", err)
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, event := range events {
		line, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush journal: %w", err)
	}

	return nil
}

// Nop discards all events.
type Nop struct{}

func (Nop) Append([]model.Event) error { return nil }
