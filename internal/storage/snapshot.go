package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo/internal/logging"
	"todo/internal/task"
)

// DefaultKey holds the whole task list.
const DefaultKey = "todos"

// Snapshot adapts a KV to task.Persister.
type Snapshot struct {
	kv  KV
	key string
	log *logging.Logger
}

func NewSnapshot(kv KV, key string, log *logging.Logger) *Snapshot {
	if key == "" {
		key = DefaultKey
	}
	return &Snapshot{kv: kv, key: key, log: log.WithComponent("storage")}
}

// Load never fails: a missing, unreadable or unparseable value is an empty list.
func (s *Snapshot) Load() ([]task.Task, error) {
	data, err := s.kv.Get(s.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.Warn("read failed, starting empty", map[string]any{"key": s.key, "error": err})
		return nil, nil
	}
	tasks, err := Decode(data)
	if err != nil {
		s.log.Warn("unparseable snapshot, starting empty", map[string]any{"key": s.key, "error": err})
		return nil, nil
	}
	return tasks, nil
}

func (s *Snapshot) Save(tasks []task.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	s.log.Debug("saved", map[string]any{"key": s.key, "tasks": len(tasks)})
	return nil
}

// LastModified reports when the snapshot was last written, if the backend knows.
func (s *Snapshot) LastModified() time.Time {
	u, ok := s.kv.(interface {
		UpdatedAt(key string) (time.Time, error)
	})
	if !ok {
		return time.Time{}
	}
	t, err := u.UpdatedAt(s.key)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Encode serializes tasks as a JSON array. A nil list encodes as [].
func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return json.Marshal(tasks)
}

type record struct {
	ID        json.RawMessage `json:"id"`
	Text      string          `json:"text"`
	Completed bool            `json:"completed"`
}

// Decode parses a JSON array of tasks. Numeric ids, as written by the
// browser version, are accepted and kept as their decimal text. Records
// with blank text or a repeated id are dropped.
func Decode(data []byte) ([]task.Task, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	tasks := make([]task.Task, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		id, err := decodeID(r.ID)
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(r.Text)
		if id == "" || text == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		tasks = append(tasks, task.Task{ID: id, Text: text, Completed: r.Completed})
	}
	return tasks, nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("id %s: %w", raw, err)
	}
	return n.String(), nil
}
