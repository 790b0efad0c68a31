package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/logging"
	"todo/internal/storage"
	"todo/internal/task"
)

// session is everything one invocation needs, opened from a config file.
type session struct {
	cfg   config.Config
	kv    storage.KV
	store *task.Store
	ctrl  *app.Controller
	log   *logging.Logger

	logFile    io.Closer
	persistErr error
}

func openSession(configPath string) (*session, error) {
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, setupError(fmt.Errorf("load config: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, setupError(fmt.Errorf("invalid config %s: %w", configPath, err))
	}

	s := &session{cfg: cfg}
	if cfg.LogPath != "" {
		lg, f, err := logging.OpenFile(cfg.LogPath, logging.ParseLevel(cfg.LogLevel))
		if err != nil {
			return nil, setupError(fmt.Errorf("open log: %w", err))
		}
		s.log, s.logFile = lg, f
	}
	if firstLaunch {
		s.log.Info("created default config", map[string]any{"path": configPath})
	}

	kv, err := storage.Open(cfg.Backend, cfg.DBPath, cfg.DataDir)
	if err != nil {
		s.Close()
		return nil, setupError(fmt.Errorf("open storage: %w", err))
	}
	s.kv = kv
	s.log.Debug("storage opened", map[string]any{"backend": cfg.Backend})

	s.store = task.NewStore(
		storage.NewSnapshot(kv, storage.DefaultKey, s.log),
		task.WithLogger(s.log),
		task.WithPersistErrorHandler(func(err error) { s.persistErr = err }),
	)
	s.ctrl = app.New(s.store,
		app.WithPageSize(cfg.PageSize),
		app.WithFilter(cfg.Filter()),
		app.WithLogger(s.log),
	)
	return s, nil
}

// saved reports the last failed write of this session, if any.
func (s *session) saved() error {
	if s.persistErr != nil {
		return setupError(fmt.Errorf("save tasks: %w", s.persistErr))
	}
	return nil
}

func (s *session) Close() {
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			s.log.Warn("close storage", map[string]any{"error": err})
		}
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}
