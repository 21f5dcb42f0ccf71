package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/go-homedir"
	"github.com/robfig/cron/v3"

	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/view"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Vault    VaultConfig       `yaml:"vault"`
	SQLite   SQLiteConfig      `yaml:"sqlite"`
	Auth     AuthConfig        `yaml:"auth"`
	Calendar CalendarConfig    `yaml:"calendar"`
	Refresh  RefreshConfig     `yaml:"refresh"`
}

// Validate expands "~" in paths and validates the configuration.
func (c *Config) Validate() error {
	for _, p := range []*string{&c.Vault.Path, &c.SQLite.Path, &c.App.LogFile} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("config: expand %q: %w", *p, err)
		}
		*p = expanded
	}
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Calendar.Validate(); err != nil {
		return err
	}
	return c.Refresh.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	// LogFile receives logs while the terminal UI owns stdout.
	LogFile  string     `yaml:"log_file"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the path to the Markdown vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// CalendarConfig holds the calendar view settings.
type CalendarConfig struct {
	SourceFolder      string        `yaml:"source_folder"`
	DateField         string        `yaml:"date_field"`
	DisplayProperties []string      `yaml:"display_properties"`
	StartOfWeek       string        `yaml:"start_of_week"`
	HoverPreviewDelay time.Duration `yaml:"hover_preview_delay"`
}

// Validate validates the calendar configuration.
func (c *CalendarConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DateField, validation.Required),
		validation.Field(&c.StartOfWeek, validation.In(string(calendar.Monday), string(calendar.Sunday))),
		validation.Field(&c.HoverPreviewDelay, validation.Min(time.Duration(0))),
	)
}

// Settings converts the configuration into view settings.
func (c *CalendarConfig) Settings() view.Settings {
	ws, err := calendar.ParseWeekStart(c.StartOfWeek)
	if err != nil {
		ws = calendar.Monday
	}
	return view.Settings{
		SourceFolder:      c.SourceFolder,
		DateField:         c.DateField,
		DisplayProperties: append([]string(nil), c.DisplayProperties...),
		StartOfWeek:       ws,
		HoverPreviewDelay: c.HoverPreviewDelay,
	}
}

// RefreshConfig controls how note changes reach the views.
type RefreshConfig struct {
	// Debounce coalesces bursts of change notifications.
	Debounce time.Duration `yaml:"debounce"`
	// ResyncCron schedules a full index reconcile. Empty disables it.
	ResyncCron string `yaml:"resync_cron"`
}

// Validate validates the refresh configuration.
func (c *RefreshConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
		validation.Field(&c.ResyncCron, validation.By(validCron)),
	)
}

func validCron(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := cron.ParseStandard(s); err != nil {
		return errors.New("must be a standard 5-field cron expression")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			LogFile:  "~/.local/share/foliocal/foliocal.log",
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		SQLite: SQLiteConfig{
			Path: "./foliocal.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Calendar: CalendarConfig{
			DateField:         view.DefaultDateField,
			DisplayProperties: []string{"tags"},
			StartOfWeek:       string(calendar.Monday),
			HoverPreviewDelay: view.DefaultHoverPreviewDelay,
		},
		Refresh: RefreshConfig{
			Debounce:   view.DefaultRefreshDebounce,
			ResyncCron: "*/15 * * * *",
		},
	}
}
