package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"liquidityEngine/internal/model"
)

func TestJsonlAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events", "journal.jsonl")
	j := NewJsonl(path)

	batch := []model.Event{
		{Type: "swap", PoolID: "GALA:USD:3000", Timestamp: "2026-01-02T03:04:05Z"},
		{Type: "mint", PoolID: "GALA:USD:3000", Timestamp: "2026-01-02T03:04:06Z"},
	}
	if err := j.Append(batch); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := j.Append(batch[:1]); err != nil {
		t.Fatalf("second append: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	var types []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var event model.Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("bad line %q: %v", scanner.Text(), err)
		}
		types = append(types, event.Type)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(types) != 3 || types[0] != "swap" || types[1] != "mint" || types[2] != "swap" {
		t.Fatalf("journal lines = %v", types)
	}
}

func TestJsonlAppendEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	if err := NewJsonl(path).Append(nil); err != nil {
		t.Fatalf("empty append: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty append created the file: %v", err)
	}
}
