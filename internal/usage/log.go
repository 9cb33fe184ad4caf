// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package usage records document accesses in an append-only log, maintains
// a SQLite stats index over it, and recommends documents that deserve
// attention.
package usage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/docgarden/pkg/types"
)

// Log is the append-only JSONL usage log. One writer at a time; the caller
// owns that discipline.
type Log struct {
	path string
}

// OpenLog returns a Log at path. The file is created on first append.
func OpenLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Append writes one entry as a JSON line. A zero Time is stamped with the
// current time.
func (l *Log) Append(entry types.UsageEntry) error {
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}
	if entry.Path == "" {
		return fmt.Errorf("usage entry has no path")
	}
	if entry.Action == "" {
		entry.Action = types.ActionRead
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening usage log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding usage entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("appending usage entry: %w", err)
	}
	return nil
}

// ReadAll returns every well-formed entry in the log. Malformed lines are
// counted and skipped, never fatal; a missing log is an empty history.
func (l *Log) ReadAll() (entries []types.UsageEntry, malformed int, err error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("opening usage log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry types.UsageEntry
		if json.Unmarshal(line, &entry) != nil || entry.Path == "" {
			malformed++
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, malformed, fmt.Errorf("reading usage log: %w", err)
	}
	return entries, malformed, nil
}
