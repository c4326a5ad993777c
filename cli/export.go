// ABOUTME: Snapshot export command
// ABOUTME: Writes the current workspace to a new SQLite file for reporting
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/harperreed/crmpro/export"
)

// ExportCommand writes a SQLite snapshot to the path given as its argument.
func ExportCommand(ctx context.Context, env *Env, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	force := fs.Bool("force", false, "Replace the file if it exists")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: export [--force] <file.db>")
	}

	settings := env.settings()
	env.Workspace.Lock()
	snap, err := export.WriteSQLite(ctx, fs.Arg(0), env.Workspace, export.Options{
		Today:     settings.Today(),
		Currency:  settings.Money().Code(),
		Feed:      env.Feed,
		Overwrite: *force,
	})
	env.Workspace.Unlock()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	env.logger().Info("snapshot written", "id", snap.ID, "path", snap.Path)
	_, _ = fmt.Fprintf(env.out(), "✓ Snapshot %s written to %s\n", snap.ID, snap.Path)
	_, _ = fmt.Fprintf(env.out(), "  %d contacts, %d deals, %d tasks, %d activity entries\n",
		snap.Contacts, snap.Deals, snap.Tasks, snap.Activity)
	return nil
}
