package view

import (
	"time"

	"github.com/starford/foliocal/internal/calendar"
)

// Defaults applied to empty settings fields.
const (
	DefaultDateField         = "date"
	DefaultHoverPreviewDelay = 500 * time.Millisecond
	DefaultRefreshDebounce   = 300 * time.Millisecond
)

// Settings is the calendar configuration read on every refresh.
type Settings struct {
	SourceFolder      string
	DateField         string
	DisplayProperties []string
	StartOfWeek       calendar.WeekStart
	HoverPreviewDelay time.Duration
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		DateField:         DefaultDateField,
		DisplayProperties: []string{"tags"},
		StartOfWeek:       calendar.Monday,
		HoverPreviewDelay: DefaultHoverPreviewDelay,
	}
}

func (s Settings) withDefaults() Settings {
	if s.DateField == "" {
		s.DateField = DefaultDateField
	}
	if s.StartOfWeek == "" {
		s.StartOfWeek = calendar.Monday
	}
	if s.HoverPreviewDelay < 0 {
		s.HoverPreviewDelay = 0
	}
	return s
}

// SettingsSource supplies the current settings. It is consulted on every
// refresh so edits made elsewhere take effect.
type SettingsSource interface {
	Settings() Settings
}

// StaticSettings is a SettingsSource that never changes.
type StaticSettings Settings

// Settings implements SettingsSource.
func (s StaticSettings) Settings() Settings { return Settings(s) }

// SettingsFunc adapts a function to SettingsSource.
type SettingsFunc func() Settings

// Settings implements SettingsSource.
func (f SettingsFunc) Settings() Settings { return f() }
