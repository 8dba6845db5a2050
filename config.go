package filmcard

import (
	"context"
	"strings"
	"time"
)

// Setting keys. Format settings are stored as FormatKeyPrefix + name.
const (
	SettingOrder    = "order"
	FormatKeyPrefix = "formats."
)

// GlobalDestination holds settings that apply to every destination.
const GlobalDestination = ""

// DefaultOrder is the line specification used when none is configured.
const DefaultOrder = "url,title;rating,runtime,genres,language;description;director,creator,stars;plot_keys"

// DefaultFormats returns the built-in template formats.
func DefaultFormats() map[string]string {
	return map[string]string{
		"url":         "%(url)s",
		"title":       "%(name)s (%(year)s)",
		"rating":      "Rating: %(rating)s",
		"runtime":     "Runtime: %(runtime)s",
		"genres":      "Genres: %(genres)s",
		"language":    "Language: %(language)s",
		"description": "%(description)s",
		"director":    "Director: %(director)s",
		"creator":     "Creator: %(creator)s",
		"stars":       "Stars: %(stars)s",
		"plot_keys":   "Keywords: %(plot_keys)s",
	}
}

// Setting is a single stored configuration value.
type Setting struct {
	Destination string    `json:"destination"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FormatName returns the template name of a format setting.
// Returns false for settings that are not formats.
func (s *Setting) FormatName() (string, bool) {
	return strings.CutPrefix(s.Key, FormatKeyPrefix)
}

// SettingFilter represents a filter for FindSettings.
type SettingFilter struct {
	Destination *string `json:"destination"`
	Key         *string `json:"key"`

	// Restrict to subset of results.
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// OutputConfig is an immutable snapshot of the output configuration for
// one destination. Callers must not modify it.
type OutputConfig struct {
	Destination string
	Order       LineSpec
	Formats     map[string]string

	// Version identifies the snapshot contents.
	Version uint64
}

// Render renders rec with the snapshot's order and formats.
func (c *OutputConfig) Render(rec *Record) []string {
	return Render(rec, c.Order, c.Formats)
}

// ResolveConfig builds the effective configuration for destination from
// the built-in defaults overlaid with global settings and then with the
// destination's own settings. Settings for other destinations are ignored.
func ResolveConfig(destination string, settings []*Setting) *OutputConfig {
	cfg := &OutputConfig{
		Destination: destination,
		Order:       ParseLineSpec(DefaultOrder),
		Formats:     DefaultFormats(),
	}

	apply := func(dest string) {
		for _, s := range settings {
			if s.Destination != dest {
				continue
			}
			if s.Key == SettingOrder {
				cfg.Order = ParseLineSpec(s.Value)
			} else if name, ok := s.FormatName(); ok {
				cfg.Formats[name] = s.Value
			}
		}
	}
	apply(GlobalDestination)
	if destination != GlobalDestination {
		apply(destination)
	}
	return cfg
}

// ValidateFormat returns EINVALID if format is malformed or references a
// field that does not exist.
func ValidateFormat(format string) error {
	rec := NewRecord()
	for _, f := range Fields {
		rec.Set(f, "")
	}
	if _, ok := RenderTemplate(format, rec); !ok {
		return Errorf(EINVALID, "invalid format %q: placeholders must be %%(field)s with a known field", format)
	}
	return nil
}

// ConfigService manages per-destination output configuration.
type ConfigService interface {
	// Snapshot returns the effective configuration for destination.
	// The snapshot is consistent and unaffected by later updates.
	Snapshot(ctx context.Context, destination string) (*OutputConfig, error)

	// SetFormat stores a template format for destination.
	// Returns EINVALID if the name is empty or the format is invalid.
	SetFormat(ctx context.Context, destination, name, format string) error

	// DeleteFormat removes a template format from destination.
	// Returns ENOTFOUND if it is not set.
	DeleteFormat(ctx context.Context, destination, name string) error

	// SetOrder stores the line specification for destination.
	SetOrder(ctx context.Context, destination string, spec LineSpec) error

	// DeleteOrder removes the line specification from destination.
	// Returns ENOTFOUND if it is not set.
	DeleteOrder(ctx context.Context, destination string) error

	// FindSettings returns stored settings matching the filter.
	FindSettings(ctx context.Context, filter SettingFilter) ([]*Setting, error)
}
