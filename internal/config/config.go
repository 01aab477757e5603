package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/teemow/hebcal/internal/hebcal"
)

const (
	// DefaultExportPath is where `hebcal export` writes when nothing else is configured
	DefaultExportPath = "shabbat.ics"

	appDir   = "hebcal"
	fileName = "config.yaml"
)

// LocationConfig is the default location. Exactly one variant should be
// set: a geonameid, a zip code, a city, or coordinates.
type LocationConfig struct {
	GeonameID *int     `yaml:"geonameid,omitempty" json:"geonameid,omitempty"`
	Zip       string   `yaml:"zip,omitempty" json:"zip,omitempty"`
	City      string   `yaml:"city,omitempty" json:"city,omitempty"`
	Latitude  *float64 `yaml:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `yaml:"longitude,omitempty" json:"longitude,omitempty"`
	TZID      string   `yaml:"tzid,omitempty" json:"tzid,omitempty"`
}

// IsZero reports whether no location is configured
func (l LocationConfig) IsZero() bool {
	return l.GeonameID == nil && l.Zip == "" && l.City == "" &&
		l.Latitude == nil && l.Longitude == nil && l.TZID == ""
}

func (l LocationConfig) variants() []string {
	var set []string
	if l.GeonameID != nil {
		set = append(set, "geonameid")
	}
	if l.Zip != "" {
		set = append(set, "zip")
	}
	if l.City != "" {
		set = append(set, "city")
	}
	if l.Latitude != nil || l.Longitude != nil || l.TZID != "" {
		set = append(set, "coordinates")
	}
	return set
}

// PreferencesConfig holds the request options that are not location.
type PreferencesConfig struct {
	// Havdalah is minutes after sundown; unset uses the service default (tzeit)
	Havdalah *int `yaml:"havdalah,omitempty" json:"havdalah,omitempty"`

	// CandleMinutes is candle-lighting minutes before sunset
	CandleMinutes *int `yaml:"candle_minutes,omitempty" json:"candle_minutes,omitempty"`

	// Transliteration is "ashkenazic" or "sephardic"
	Transliteration string `yaml:"transliteration,omitempty" json:"transliteration,omitempty"`

	// Leyning is "on" or "off"
	Leyning string `yaml:"leyning,omitempty" json:"leyning,omitempty"`
}

// ExportConfig configures `hebcal export`.
type ExportConfig struct {
	Path string `yaml:"path" json:"path"`

	// CalendarName overrides X-WR-CALNAME of the exported calendar
	CalendarName string `yaml:"calendar_name,omitempty" json:"calendar_name,omitempty"`

	// Schedule is a standard five-field cron expression. Empty exports once.
	Schedule string `yaml:"schedule,omitempty" json:"schedule,omitempty"`
}

// Config is the YAML profile.
type Config struct {
	Location    LocationConfig    `yaml:"location" json:"location"`
	Preferences PreferencesConfig `yaml:"preferences" json:"preferences"`
	Export      ExportConfig      `yaml:"export" json:"export"`
}

// DefaultConfig returns an empty profile with export defaults.
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{Path: DefaultExportPath},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hebcal/config.yaml, or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Normalize trims values and fills in defaults, so partially written
// profiles still behave.
func (c *Config) Normalize() {
	c.Location.Zip = strings.TrimSpace(c.Location.Zip)
	c.Location.City = strings.TrimSpace(c.Location.City)
	c.Location.TZID = strings.TrimSpace(c.Location.TZID)

	c.Preferences.Transliteration = strings.ToLower(strings.TrimSpace(c.Preferences.Transliteration))
	c.Preferences.Leyning = strings.ToLower(strings.TrimSpace(c.Preferences.Leyning))

	c.Export.Path = strings.TrimSpace(c.Export.Path)
	if c.Export.Path == "" {
		c.Export.Path = DefaultExportPath
	}
	c.Export.Path = expandHome(c.Export.Path)
	c.Export.Schedule = strings.TrimSpace(c.Export.Schedule)
}

// Validate checks the profile. Ranges of numeric options are left to the
// service.
func (c *Config) Validate() error {
	var errs []error

	if variants := c.Location.variants(); len(variants) > 1 {
		errs = append(errs, fmt.Errorf("location: only one of geonameid, zip, city or coordinates may be set, got %s",
			strings.Join(variants, ", ")))
	}
	if (c.Location.Latitude == nil) != (c.Location.Longitude == nil) {
		errs = append(errs, errors.New("location: latitude and longitude must be set together"))
	}

	if c.Preferences.Transliteration != "" {
		if _, err := hebcal.ParseTransliteration(c.Preferences.Transliteration); err != nil {
			errs = append(errs, fmt.Errorf("preferences: %w", err))
		}
	}
	if c.Preferences.Leyning != "" {
		if _, err := hebcal.ParseLeyning(c.Preferences.Leyning); err != nil {
			errs = append(errs, fmt.Errorf("preferences: %w", err))
		}
	}

	if c.Export.Schedule != "" {
		if _, err := cron.ParseStandard(c.Export.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("export: invalid schedule %q: %w", c.Export.Schedule, err))
		}
	}

	return errors.Join(errs...)
}

// Apply sets the profile's location and preferences on a request. Location
// fields are applied in a fixed order: geonameid, zip, city, latitude,
// longitude, tzid.
func (c *Config) Apply(h *hebcal.ShabbatHandler) error {
	loc := c.Location
	if loc.GeonameID != nil {
		h.GeonameID(*loc.GeonameID)
	}
	if loc.Zip != "" {
		h.Zip(loc.Zip)
	}
	if loc.City != "" {
		h.City(loc.City)
	}
	if loc.Latitude != nil {
		h.Latitude(*loc.Latitude)
	}
	if loc.Longitude != nil {
		h.Longitude(*loc.Longitude)
	}
	if loc.TZID != "" {
		h.TZID(loc.TZID)
	}

	prefs := c.Preferences
	if prefs.Havdalah != nil {
		h.Havdalah(*prefs.Havdalah)
	}
	if prefs.CandleMinutes != nil {
		h.MinutesBeforeSunset(*prefs.CandleMinutes)
	}
	if prefs.Transliteration != "" {
		t, err := hebcal.ParseTransliteration(prefs.Transliteration)
		if err != nil {
			return err
		}
		h.Transliteration(t)
	}
	if prefs.Leyning != "" {
		l, err := hebcal.ParseLeyning(prefs.Leyning)
		if err != nil {
			return err
		}
		h.Leyning(l)
	}

	return nil
}

// Load reads the profile at path. A missing file yields DefaultConfig.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path with 0600 permissions, replacing the file
// atomically.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".hebcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save writes the profile to path
func (c *Config) Save(path string) error {
	return Save(path, c)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
