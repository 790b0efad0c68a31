// Package storage persists the task list as a single serialized value
// under one key of a local, synchronous key-value store.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is a synchronous key-value store. Set replaces the whole value
// atomically: a later Get sees either the old or the new value.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Open returns the backend named by kind. dbPath is used by sqlite,
// dataDir by file.
func Open(kind, dbPath, dataDir string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendSQLite:
		return OpenSQLite(dbPath)
	case BackendFile:
		return OpenDir(dataDir)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
