// ABOUTME: User settings for the CRM console stored as JSON at the XDG config path
// ABOUTME: Handles defaults, .env loading, CRMPRO_* environment overrides, and save
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/harperreed/crmpro/models"
	"github.com/joho/godotenv"
)

const (
	// AppName names the XDG subdirectory.
	AppName = "crmpro"

	// ConfigFileName is where settings live inside the XDG config directory.
	ConfigFileName = "settings.json"

	// DefaultAddr is where `crmpro serve` listens when nothing else is set.
	DefaultAddr = "127.0.0.1:8420"
)

// ErrUnreadable marks a settings file that exists but does not parse.
var ErrUnreadable = errors.New("settings file unreadable")

// Profile describes the signed-in user. Name is the default task assignee.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Timezone string `json:"timezone"`
}

type Notifications struct {
	Email         bool `json:"email"`
	TaskReminders bool `json:"task_reminders"`
	DealUpdates   bool `json:"deal_updates"`
	WeeklyReports bool `json:"weekly_reports"`
	Browser       bool `json:"browser"`
}

// Security values are minutes and days, kept as strings like the settings form edits them.
type Security struct {
	TwoFactor      bool   `json:"two_factor"`
	SessionTimeout string `json:"session_timeout"`
	PasswordExpiry string `json:"password_expiry"`
}

type Preferences struct {
	Theme        string `json:"theme"`
	Language     string `json:"language"`
	DateFormat   string `json:"date_format"`
	Currency     string `json:"currency"`
	ItemsPerPage string `json:"items_per_page"`
}

// Settings is everything the settings screen edits plus process options.
type Settings struct {
	Profile       Profile       `json:"profile"`
	Notifications Notifications `json:"notifications"`
	Security      Security      `json:"security"`
	Preferences   Preferences   `json:"preferences"`

	// LogLevel is a charmbracelet/log level name.
	LogLevel string `json:"log_level,omitempty"`
	// Addr is the HTTP listen address for serve.
	Addr string `json:"addr,omitempty"`

	path string
	// backup is set when the file at path did not parse; Save moves it aside first.
	backup bool
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() *Settings {
	return &Settings{
		Profile: Profile{
			Name:     "John Doe",
			Email:    "john.doe@company.com",
			Phone:    "+1 (555) 123-4567",
			Title:    "Sales Manager",
			Company:  "CRM Pro Inc.",
			Timezone: "America/New_York",
		},
		Notifications: Notifications{
			Email:         true,
			TaskReminders: true,
			DealUpdates:   true,
			WeeklyReports: false,
			Browser:       true,
		},
		Security: Security{
			TwoFactor:      false,
			SessionTimeout: "30",
			PasswordExpiry: "90",
		},
		Preferences: Preferences{
			Theme:        "light",
			Language:     "en",
			DateFormat:   "MM/DD/YYYY",
			Currency:     "USD",
			ItemsPerPage: "20",
		},
		LogLevel: "info",
		Addr:     DefaultAddr,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/crmpro/settings.json.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFileName)
}

// LoadEnv reads a .env file from the working directory if one exists.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load reads settings from path, or DefaultPath when path is empty.
// A missing file yields defaults. A file that does not parse also yields
// defaults, together with an error wrapping ErrUnreadable; the next Save
// keeps the old file as path + ".bak". Environment overrides apply last:
//   - CRMPRO_USER_NAME
//   - CRMPRO_TIMEZONE
//   - CRMPRO_CURRENCY
//   - CRMPRO_LOG_LEVEL
//   - CRMPRO_ADDR
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := DefaultSettings()
	cfg.path = path

	var loadErr error
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		loaded := DefaultSettings()
		if jsonErr := json.Unmarshal(data, loaded); jsonErr != nil {
			cfg.backup = true
			loadErr = fmt.Errorf("%w: %s: %v", ErrUnreadable, path, jsonErr)
		} else {
			loaded.path = path
			cfg = loaded
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, loadErr
}

func applyEnvOverrides(cfg *Settings) {
	if name := os.Getenv("CRMPRO_USER_NAME"); name != "" {
		cfg.Profile.Name = name
	}
	if tz := os.Getenv("CRMPRO_TIMEZONE"); tz != "" {
		cfg.Profile.Timezone = tz
	}
	if cur := os.Getenv("CRMPRO_CURRENCY"); cur != "" {
		cfg.Preferences.Currency = cur
	}
	if level := os.Getenv("CRMPRO_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if addr := os.Getenv("CRMPRO_ADDR"); addr != "" {
		cfg.Addr = addr
	}
}

// Path is the file Save writes to.
func (s *Settings) Path() string {
	if s.path == "" {
		return DefaultPath()
	}
	return s.path
}

// Save persists the settings with owner-only permissions.
func (s *Settings) Save() error {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if s.backup {
		if err := os.Rename(path, path+".bak"); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to back up unreadable settings: %w", err)
		}
		s.backup = false
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Location resolves the profile timezone, falling back to UTC.
func (s *Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Profile.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today is the current calendar date in the profile timezone.
func (s *Settings) Today() models.Date {
	return models.Today(s.Location())
}

// Money returns the formatter for the preferred currency, or USD if the code is bad.
func (s *Settings) Money() *models.Money {
	m, err := models.NewMoney(s.Preferences.Currency, s.locale())
	if err != nil {
		return models.USD()
	}
	return m
}

func (s *Settings) locale() string {
	if s.Preferences.Language == "" {
		return "en-US"
	}
	return s.Preferences.Language
}

// ItemsPerPage parses the page size preference; non-positive or bad values give 20.
func (s *Settings) ItemsPerPage() int {
	n, err := strconv.Atoi(s.Preferences.ItemsPerPage)
	if err != nil || n <= 0 {
		return 20
	}
	return n
}
