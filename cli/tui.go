// ABOUTME: Interactive console subcommand
// ABOUTME: Runs the full-screen bubbletea interface over the workspace
package cli

import (
	"github.com/harperreed/crmpro/tui"
)

// TUICommand blocks until the user quits the console.
func TUICommand(env *Env) error {
	env.logger().Debug("starting console", "contacts", env.Workspace.Contacts.Len(),
		"deals", env.Workspace.Deals.Len(), "tasks", env.Workspace.Tasks.Len())
	return tui.Run(env.Workspace, env.Feed, env.settings())
}
