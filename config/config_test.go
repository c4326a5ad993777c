// ABOUTME: Tests for settings defaults, file loading, env overrides, and save
// ABOUTME: Uses temp dirs and t.Setenv so nothing touches the real XDG paths
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", cfg.Profile.Name)
	assert.Equal(t, "USD", cfg.Preferences.Currency)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, path, cfg.Path())
}

func TestLoadInvalidFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	cfg, err := Load(path)
	require.ErrorIs(t, err, ErrUnreadable)
	assert.ErrorContains(t, err, path)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultSettings().Profile, cfg.Profile)
	assert.Equal(t, path, cfg.Path())

	// Saving keeps the unreadable file aside instead of dropping it.
	require.NoError(t, cfg.Save())
	old, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(old))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", again.Profile.Name)

	// A second save does not replace the backup.
	require.NoError(t, again.Save())
	require.NoError(t, cfg.Save())
	old, err = os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(old))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	cfg, err := Load(path)
	require.NoError(t, err)

	cfg.Profile.Name = "Jane Smith"
	cfg.Notifications.WeeklyReports = true
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", again.Profile.Name)
	assert.True(t, again.Notifications.WeeklyReports)
	assert.Equal(t, "America/New_York", again.Profile.Timezone)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"profile":{"name":"Mike Johnson"}}`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Mike Johnson", cfg.Profile.Name)
	assert.Equal(t, "light", cfg.Preferences.Theme)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CRMPRO_USER_NAME", "Sarah Davis")
	t.Setenv("CRMPRO_TIMEZONE", "Europe/London")
	t.Setenv("CRMPRO_CURRENCY", "EUR")
	t.Setenv("CRMPRO_LOG_LEVEL", "debug")
	t.Setenv("CRMPRO_ADDR", ":9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, "Sarah Davis", cfg.Profile.Name)
	assert.Equal(t, "Europe/London", cfg.Profile.Timezone)
	assert.Equal(t, "EUR", cfg.Money().Code())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9999", cfg.Addr)
}

func TestDerivedValues(t *testing.T) {
	cfg := DefaultSettings()

	cfg.Profile.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Preferences.Currency = "XYZZY"
	assert.Equal(t, "USD", cfg.Money().Code())

	assert.Equal(t, 20, cfg.ItemsPerPage())
	cfg.Preferences.ItemsPerPage = "50"
	assert.Equal(t, 50, cfg.ItemsPerPage())
	cfg.Preferences.ItemsPerPage = "-3"
	assert.Equal(t, 20, cfg.ItemsPerPage())
}

func TestSectionsAndToggle(t *testing.T) {
	cfg := DefaultSettings()
	assert.Len(t, AllSections(), 4)
	assert.Len(t, cfg.Fields(SectionProfile), 6)
	assert.Equal(t, "off", cfg.Fields(SectionNotifications)[3].Value)

	assert.True(t, cfg.Toggle(SectionNotifications, 3))
	assert.True(t, cfg.Notifications.WeeklyReports)

	assert.True(t, cfg.Toggle(SectionSecurity, 0))
	assert.True(t, cfg.Security.TwoFactor)

	assert.False(t, cfg.Toggle(SectionProfile, 0))
	assert.False(t, cfg.Toggle(SectionNotifications, 10))
}

func TestSet(t *testing.T) {
	cfg := DefaultSettings()

	assert.True(t, cfg.Set(SectionProfile, 0, "Jane Roe"))
	assert.Equal(t, "Jane Roe", cfg.Profile.Name)
	assert.Equal(t, "Jane Roe", cfg.Fields(SectionProfile)[0].Value)

	assert.True(t, cfg.Set(SectionPreferences, 3, "EUR"))
	assert.Equal(t, "EUR", cfg.Money().Code())

	assert.False(t, cfg.Set(SectionSecurity, 0, "on"))
	assert.False(t, cfg.Set(SectionNotifications, 1, "on"))
	assert.False(t, cfg.Set(SectionProfile, 6, "x"))
}

func TestLoadEnvWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, LoadEnv())
}
