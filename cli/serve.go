// ABOUTME: HTTP API subcommand
// ABOUTME: Serves the JSON API and Prometheus metrics until interrupted
package cli

import (
	"context"
	"flag"

	"github.com/harperreed/crmpro/web"
)

// ServeCommand runs the HTTP API until ctx is cancelled.
func ServeCommand(ctx context.Context, env *Env, args []string) error {
	settings := env.settings()

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", settings.Addr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	server := web.NewServer(env.Workspace, env.Feed, web.Options{
		Today:  settings.Today,
		User:   settings.Profile.Name,
		Money:  settings.Money(),
		Logger: env.logger(),
	})
	return server.Start(ctx, *addr)
}
