package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/starford/foliocal/internal/calendar"
	pkgconfig "github.com/starford/foliocal/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if strings.HasPrefix(cfg.App.LogFile, "~") {
		t.Errorf("log file not expanded: %q", cfg.App.LogFile)
	}
}

func TestCalendarConfig_Settings(t *testing.T) {
	cfg := CalendarConfig{
		SourceFolder:      "Journal",
		DateField:         "due",
		DisplayProperties: []string{"tags", "status"},
		StartOfWeek:       "sunday",
		HoverPreviewDelay: 250 * time.Millisecond,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	s := cfg.Settings()
	if s.SourceFolder != "Journal" || s.DateField != "due" || s.StartOfWeek != calendar.Sunday {
		t.Errorf("settings = %+v", s)
	}
	if s.HoverPreviewDelay != 250*time.Millisecond || len(s.DisplayProperties) != 2 {
		t.Errorf("settings = %+v", s)
	}
}

func TestCalendarConfig_Invalid(t *testing.T) {
	cases := map[string]CalendarConfig{
		"empty date field": {DateField: ""},
		"bad week start":   {DateField: "date", StartOfWeek: "friday"},
		"negative delay":   {DateField: "date", HoverPreviewDelay: -time.Second},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRefreshConfig_Cron(t *testing.T) {
	ok := RefreshConfig{Debounce: time.Second, ResyncCron: "0 * * * *"}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid cron rejected: %v", err)
	}
	off := RefreshConfig{}
	if err := off.Validate(); err != nil {
		t.Errorf("empty cron rejected: %v", err)
	}
	bad := RefreshConfig{ResyncCron: "every minute"}
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "cron") {
		t.Errorf("bad cron err = %v", err)
	}
}

func TestLoad_YAMLDurationsAndHome(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `app:
  log_level: debug
  http:
    port: 9090
vault:
  path: ~/notes
sqlite:
  path: ` + filepath.Join(dir, "db.sqlite") + `
calendar:
  source_folder: Journal
  date_field: date
  start_of_week: sunday
  hover_preview_delay: 750ms
refresh:
  debounce: 1s
  resync_cron: "*/5 * * * *"
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	home, _ := homedir.Dir()
	if cfg.Vault.Path != filepath.Join(home, "notes") {
		t.Errorf("vault path = %q", cfg.Vault.Path)
	}
	if cfg.Calendar.HoverPreviewDelay != 750*time.Millisecond || cfg.Refresh.Debounce != time.Second {
		t.Errorf("durations = %v %v", cfg.Calendar.HoverPreviewDelay, cfg.Refresh.Debounce)
	}
	if cfg.App.LogLevel != slog.LevelDebug || cfg.App.HTTP.Port != 9090 {
		t.Errorf("app = %+v", cfg.App)
	}
	if got := cfg.Calendar.DisplayProperties; len(got) != 1 || got[0] != "tags" {
		t.Errorf("display properties default lost: %v", got)
	}
}
