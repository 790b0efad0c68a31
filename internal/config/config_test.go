package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"todo/internal/view"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if cfg.PageSize != view.DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", cfg.PageSize, view.DefaultPageSize)
	}
	if want := filepath.Join(dir, "nested", DefaultDBName); cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(again, cfg) {
		t.Errorf("reloaded config differs:\n%+v\n%+v", again, cfg)
	}
}

func TestLoadOrCreate_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	body := `
backend = "file"
page_size = 10
default_filter = "active"

[keys]
add = "n"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.Backend != "file" || cfg.PageSize != 10 {
		t.Errorf("overrides lost: %+v", cfg)
	}
	if cfg.Filter() != view.FilterActive {
		t.Errorf("Filter() = %v, want active", cfg.Filter())
	}
	if cfg.Keys.Add != "n" {
		t.Errorf("Keys.Add = %q, want n", cfg.Keys.Add)
	}
	if cfg.Keys.Quit != "q" {
		t.Errorf("Keys.Quit = %q, want default q", cfg.Keys.Quit)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if cfg.NoticeDuration() != DefaultNoticeTimeout {
		t.Errorf("NoticeDuration() = %v, want %v", cfg.NoticeDuration(), DefaultNoticeTimeout)
	}
}

func TestLoadOrCreate_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte("page_size = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Backend = "redis"
	cfg.DefaultFilter = "done"
	cfg.NoticeTimeout = "soon"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"backend", "default_filter", "notice_timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()
	cfg.NoticeTimeout = "1500ms"
	cfg.AnimationTimeout = "-1s"
	if got := cfg.NoticeDuration(); got != 1500*time.Millisecond {
		t.Errorf("NoticeDuration() = %v", got)
	}
	if got := cfg.AnimationDuration(); got != DefaultAnimationTimeout {
		t.Errorf("AnimationDuration() = %v, want default", got)
	}
}

func TestResolveConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", AppName, DefaultConfigFileName)
	if got := ResolveConfigPath(); got != want {
		t.Errorf("ResolveConfigPath() = %q, want %q", got, want)
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"q", []string{"q"}},
		{"h, left", []string{"h", "left"}},
		{" ", []string{" "}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Keys(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Keys(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
