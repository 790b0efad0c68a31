package task

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"todo/internal/logging"
)

// Persister stores a full snapshot of the list.
type Persister interface {
	Load() ([]Task, error)
	Save(tasks []Task) error
}

type Option func(*Store)

// WithIDFunc replaces the uuid based id generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.log = l.WithComponent("store") }
}

// WithPersistErrorHandler is called after every failed Save.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onPersistErr = fn }
}

// WithClock overrides time.Now for LastSaved.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store owns the ordered task list. Every mutation writes the whole list
// through to the Persister. A failed write leaves the in-memory list as the
// source of truth for the rest of the session.
type Store struct {
	mu           sync.Mutex
	tasks        []Task
	p            Persister
	newID        func() string
	now          func() time.Time
	log          *logging.Logger
	onPersistErr func(error)
	lastSaved    time.Time
}

// NewStore loads the initial list from p. Load errors start an empty list.
func NewStore(p Persister, opts ...Option) *Store {
	s := &Store{
		p:     p,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if p == nil {
		return s
	}
	tasks, err := p.Load()
	if err != nil {
		s.log.Warn("load failed, starting empty", map[string]any{"error": err})
		return s
	}
	s.tasks = dedupe(tasks)
	if lm, ok := p.(interface{ LastModified() time.Time }); ok {
		s.lastSaved = lm.LastModified()
	}
	s.log.Debug("loaded", map[string]any{"tasks": len(s.tasks)})
	return s
}

func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// LastSaved is the time of the last successful persist, zero if none.
func (s *Store) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

func (s *Store) Add(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, errEmptyText()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := Task{ID: s.freshID(), Text: text}
	s.tasks = append(s.tasks, t)
	s.persist()
	return t, nil
}

// Remove deletes the task with id and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	s.persist()
	return i >= 0
}

func (s *Store) UpdateText(id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errEmptyText()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks[i].Text = text
	s.persist()
	return nil
}

func (s *Store) SetCompleted(id string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks[i].Completed = completed
	s.persist()
	return nil
}

// Clear removes every task matching pred and returns how many went.
func (s *Store) Clear(pred func(Task) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !pred(t) {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, &EmptySelectionError{}
	}
	s.tasks = kept
	s.persist()
	return removed, nil
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// maxIDAttempts bounds how often an injected generator may repeat itself
// before freshID falls back to uuids.
const maxIDAttempts = 16

// freshID draws ids until one is unused in the list.
func (s *Store) freshID() string {
	for i := 0; i < maxIDAttempts; i++ {
		if id := s.newID(); id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
	s.log.Warn("id generator keeps colliding, using uuid", map[string]any{"attempts": maxIDAttempts})
	for {
		if id := uuid.NewString(); s.indexOf(id) < 0 {
			return id
		}
	}
}

// persist is called with s.mu held.
func (s *Store) persist() {
	if s.p == nil {
		return
	}
	snapshot := make([]Task, len(s.tasks))
	copy(snapshot, s.tasks)
	if err := s.p.Save(snapshot); err != nil {
		s.log.Warn("persist failed", map[string]any{"error": err, "tasks": len(snapshot)})
		if s.onPersistErr != nil {
			s.onPersistErr(err)
		}
		return
	}
	s.lastSaved = s.now()
}

func dedupe(tasks []Task) []Task {
	seen := make(map[string]struct{}, len(tasks))
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}
