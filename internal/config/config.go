package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"todo/internal/storage"
	"todo/internal/view"
)

const (
	AppName               = "todo"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "todo.log"

	DefaultNoticeTimeout    = 3 * time.Second
	DefaultAnimationTimeout = 500 * time.Millisecond
)

// Keymap values are bubbletea key names; several keys may be given
// separated by commas, e.g. "h,left".
type Keymap struct {
	Quit            string `toml:"quit"`
	Add             string `toml:"add"`
	Up              string `toml:"up"`
	Down            string `toml:"down"`
	Toggle          string `toml:"toggle"`
	Delete          string `toml:"delete"`
	Edit            string `toml:"edit"`
	Confirm         string `toml:"confirm"`
	Cancel          string `toml:"cancel"`
	Clear           string `toml:"clear"`
	FilterAll       string `toml:"filter_all"`
	FilterActive    string `toml:"filter_active"`
	FilterCompleted string `toml:"filter_completed"`
	FilterNext      string `toml:"filter_next"`
	PrevPage        string `toml:"prev_page"`
	NextPage        string `toml:"next_page"`
}

type Config struct {
	Backend          string `toml:"backend"`
	DBPath           string `toml:"db_path"`
	DataDir          string `toml:"data_dir"`
	PageSize         int    `toml:"page_size"`
	DefaultFilter    string `toml:"default_filter"`
	NoticeTimeout    string `toml:"notice_timeout"`
	AnimationTimeout string `toml:"animation_timeout"`
	LogPath          string `toml:"log_path"`
	LogLevel         string `toml:"log_level"`
	Keys             Keymap `toml:"keys"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/todo/config.toml, falling
// back to ~/.config/todo/config.toml and finally ./config.toml.
func ResolveConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, DefaultConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, ".config", AppName, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing a default file first if none exists.
// Relative paths inside the file are resolved against its directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg.resolve(filepath.Dir(path)), nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		Backend:          storage.BackendSQLite,
		DBPath:           DefaultDBName,
		DataDir:          ".",
		PageSize:         view.DefaultPageSize,
		DefaultFilter:    string(view.FilterAll),
		NoticeTimeout:    DefaultNoticeTimeout.String(),
		AnimationTimeout: DefaultAnimationTimeout.String(),
		LogPath:          DefaultLogName,
		LogLevel:         "info",
		Keys:             DefaultKeymap(),
	}
}

func DefaultKeymap() Keymap {
	return Keymap{
		Quit:            "q",
		Add:             "a",
		Up:              "k,up",
		Down:            "j,down",
		Toggle:          " ",
		Delete:          "d",
		Edit:            "e",
		Confirm:         "enter",
		Cancel:          "esc",
		Clear:           "C",
		FilterAll:       "1",
		FilterActive:    "2",
		FilterCompleted: "3",
		FilterNext:      "tab",
		PrevPage:        "h,left",
		NextPage:        "l,right",
	}
}

// fillDefaults replaces zero values left by a partial config file.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.PageSize < 1 {
		c.PageSize = d.PageSize
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = d.DefaultFilter
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	fillKey(&c.Keys.Quit, d.Keys.Quit)
	fillKey(&c.Keys.Add, d.Keys.Add)
	fillKey(&c.Keys.Up, d.Keys.Up)
	fillKey(&c.Keys.Down, d.Keys.Down)
	fillKey(&c.Keys.Toggle, d.Keys.Toggle)
	fillKey(&c.Keys.Delete, d.Keys.Delete)
	fillKey(&c.Keys.Edit, d.Keys.Edit)
	fillKey(&c.Keys.Confirm, d.Keys.Confirm)
	fillKey(&c.Keys.Cancel, d.Keys.Cancel)
	fillKey(&c.Keys.Clear, d.Keys.Clear)
	fillKey(&c.Keys.FilterAll, d.Keys.FilterAll)
	fillKey(&c.Keys.FilterActive, d.Keys.FilterActive)
	fillKey(&c.Keys.FilterCompleted, d.Keys.FilterCompleted)
	fillKey(&c.Keys.FilterNext, d.Keys.FilterNext)
	fillKey(&c.Keys.PrevPage, d.Keys.PrevPage)
	fillKey(&c.Keys.NextPage, d.Keys.NextPage)
}

func fillKey(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func (c Config) resolve(dir string) Config {
	c.DBPath = resolvePath(dir, c.DBPath)
	c.DataDir = resolvePath(dir, c.DataDir)
	c.LogPath = resolvePath(dir, c.LogPath)
	return c
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "file:") {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate reports values that cannot be used as given.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Backend) {
	case storage.BackendSQLite, storage.BackendFile, storage.BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("backend: unknown %q", c.Backend))
	}
	if _, err := view.ParseFilter(c.DefaultFilter); err != nil {
		errs = append(errs, fmt.Errorf("default_filter: %w", err))
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page_size: must be positive, got %d", c.PageSize))
	}
	for name, v := range map[string]string{"notice_timeout": c.NoticeTimeout, "animation_timeout": c.AnimationTimeout} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Filter is the parsed default filter, FilterAll when invalid.
func (c Config) Filter() view.Filter {
	f, _ := view.ParseFilter(c.DefaultFilter)
	return f
}

func (c Config) NoticeDuration() time.Duration {
	return parseDuration(c.NoticeTimeout, DefaultNoticeTimeout)
}

func (c Config) AnimationDuration() time.Duration {
	return parseDuration(c.AnimationTimeout, DefaultAnimationTimeout)
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Keys splits a comma separated key list.
func Keys(v string) []string {
	if v == " " {
		return []string{" "}
	}
	var out []string
	for _, k := range strings.Split(v, ",") {
		if k == " " {
			out = append(out, k)
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
