// ABOUTME: Visualization CLI commands
// ABOUTME: Handles viz dashboard and graph generation commands
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/crmpro/viz"
)

// VizGraphCommand generates a pipeline or complete graph in DOT format.
func VizGraphCommand(env *Env, kind viz.GraphType, args []string) error {
	fs := flag.NewFlagSet("viz graph "+string(kind), flag.ContinueOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env.Workspace.Lock()
	dot, err := viz.NewGraphGenerator(env.Workspace, env.money()).Generate(kind)
	env.Workspace.Unlock()
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(dot), 0644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
		env.logger().Info("graph written", "type", kind, "path", *output)
		return nil
	}

	_, _ = fmt.Fprintln(env.out(), dot)
	return nil
}

func VizDashboardCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("viz dashboard", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	env.Workspace.Lock()
	stats := viz.GenerateDashboardStats(env.Workspace, env.Feed, env.today())
	env.Workspace.Unlock()

	_, _ = fmt.Fprint(env.out(), viz.RenderDashboard(stats, env.money()))
	return nil
}
