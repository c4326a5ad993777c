// ABOUTME: Shared state handed to every CLI command
// ABOUTME: Bundles the workspace, activity feed, settings, logger, and output writer
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/config"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// Env is what a command needs to run. Zero-valued Out and Logger fall back to
// stdout and a stderr logger.
type Env struct {
	Workspace *store.Workspace
	Feed      *activity.Feed
	Settings  *config.Settings
	Logger    *log.Logger
	Out       io.Writer
	Version   string
}

func (e *Env) out() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

func (e *Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

func (e *Env) settings() *config.Settings {
	if e.Settings == nil {
		return config.DefaultSettings()
	}
	return e.Settings
}

func (e *Env) today() models.Date {
	return e.settings().Today()
}

func (e *Env) money() *models.Money {
	return e.settings().Money()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func limitRows[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
