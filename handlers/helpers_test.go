package handlers

import (
	"testing"

	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/seed"
	"github.com/harperreed/crmpro/store"
)

var testToday = models.MustParseDate("2025-01-17")

func fixedClock() models.Date { return testToday }

func setupTestWorkspace(t *testing.T) (*store.Workspace, *activity.Feed) {
	t.Helper()
	ws := store.NewWorkspace(seed.Default())
	feed := activity.NewFeed(0)
	ws.Observe(feed)
	return ws, feed
}

func intPtr(n int) *int { return &n }
