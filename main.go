// ABOUTME: Entry point for the crmpro console, MCP server, HTTP API, and CLI
// ABOUTME: Loads settings and seed data, then routes to the requested command
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/cli"
	"github.com/harperreed/crmpro/config"
	"github.com/harperreed/crmpro/seed"
	"github.com/harperreed/crmpro/store"
	"github.com/harperreed/crmpro/viz"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	seedPath := flag.String("seed", "", "YAML file with contacts, deals, and tasks to start with")
	configPath := flag.String("config", "", "Settings file (default: ~/.config/crmpro/settings.json)")

	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("crmpro version %s\n", version)
		os.Exit(0)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "crmpro",
	})

	if err := config.LoadEnv(); err != nil {
		logger.Warn("failed to load .env", "err", err)
	}
	settings, err := config.Load(*configPath)
	switch {
	case errors.Is(err, config.ErrUnreadable):
		logger.Warn("using default settings; saving will move the old file to .bak", "err", err)
	case err != nil:
		logger.Fatal("failed to load settings", "err", err)
	}
	if level, err := log.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	log.SetDefault(logger)

	initial := seed.Default()
	if *seedPath != "" {
		initial, err = seed.LoadFile(*seedPath)
		if err != nil {
			logger.Fatal("failed to load seed", "path", *seedPath, "err", err)
		}
		logger.Debug("loaded seed", "path", *seedPath)
	}

	ws := store.NewWorkspace(initial)
	feed := activity.NewFeed(activity.DefaultCapacity)
	ws.Observe(feed)

	env := &cli.Env{
		Workspace: ws,
		Feed:      feed,
		Settings:  settings,
		Logger:    logger,
		Version:   version,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	if len(args) == 0 {
		// Default to the console on a terminal
		if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
			args = []string{"tui"}
		} else {
			printUsage()
			os.Exit(0)
		}
	}

	if err := run(ctx, env, args[0], args[1:]); err != nil {
		stop()
		logger.Fatal("command failed", "command", args[0], "err", err)
	}
}

func run(ctx context.Context, env *cli.Env, command string, args []string) error {
	switch command {
	case "tui":
		return cli.TUICommand(env)
	case "mcp":
		return cli.MCPCommand(ctx, env)
	case "serve":
		return cli.ServeCommand(ctx, env, args)
	case "export":
		return cli.ExportCommand(ctx, env, args)
	case "crm":
		return runCRM(env, args)
	case "viz":
		return runViz(env, args)
	}

	fmt.Printf("Unknown command: %s\n\n", command)
	printUsage()
	os.Exit(1)
	return nil
}

func runCRM(env *cli.Env, args []string) error {
	if len(args) == 0 {
		fmt.Println("Error: crm requires a subcommand")
		printUsage()
		os.Exit(1)
	}

	crmCommand, crmArgs := args[0], args[1:]
	switch crmCommand {
	case "list-contacts":
		return cli.ListContactsCommand(env, crmArgs)
	case "list-deals":
		return cli.ListDealsCommand(env, crmArgs)
	case "list-tasks":
		return cli.ListTasksCommand(env, crmArgs)
	case "pipeline":
		return cli.PipelineCommand(env, crmArgs)
	case "task-stats":
		return cli.TaskStatsCommand(env, crmArgs)
	case "search":
		return cli.SearchCommand(env, crmArgs)
	}

	fmt.Printf("Unknown crm command: %s\n\n", crmCommand)
	printUsage()
	os.Exit(1)
	return nil
}

func runViz(env *cli.Env, args []string) error {
	if len(args) == 0 {
		fmt.Println("Error: viz requires a subcommand")
		printUsage()
		os.Exit(1)
	}

	vizCommand, vizArgs := args[0], args[1:]
	switch vizCommand {
	case "dashboard":
		return cli.VizDashboardCommand(env, vizArgs)
	case "graph":
		if len(vizArgs) == 0 {
			fmt.Println("Error: viz graph requires a type (pipeline or all)")
			printUsage()
			os.Exit(1)
		}
		switch kind := viz.GraphType(vizArgs[0]); kind {
		case viz.GraphPipeline, viz.GraphComplete:
			return cli.VizGraphCommand(env, kind, vizArgs[1:])
		}
		fmt.Printf("Unknown graph type: %s\n\n", vizArgs[0])
		printUsage()
		os.Exit(1)
	}

	fmt.Printf("Unknown viz command: %s\n\n", vizCommand)
	printUsage()
	os.Exit(1)
	return nil
}

func printUsage() {
	fmt.Printf(`crmpro v%s - contacts, deals, and tasks in one console

Data lives in memory for the life of the process. Each run starts from the
built-in sample data or from --seed.

USAGE:
  crmpro [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --seed <file.yaml>     Start from this fixture instead of the sample data
  --config <path>        Settings file (default: ~/.config/crmpro/settings.json)

COMMANDS:
  tui                    Interactive console (default on a terminal)
  mcp                    Start MCP server on stdio
  serve                  JSON HTTP API with Prometheus metrics
    --addr <host:port>     Listen address (default: %s)
  export [--force] <file.db>
                         Write a SQLite snapshot for reporting
  crm                    One-shot listing and metrics commands
  viz                    Dashboard and graphs

CRM COMMANDS:
  crmpro crm list-contacts  List contacts
    --query <text>            Search name, email, company
    --status <status>         active, inactive, prospect, all
    --limit <n>               Max results (default: items per page, 20)

  crmpro crm list-deals     List deals
    --query <text>            Search name, company, contact
    --stage <stage>           lead, qualified, proposal, negotiation,
                              closed-won, closed-lost, all
    --limit <n>               Max results (default: items per page, 20)

  crmpro crm list-tasks     List tasks
    --query <text>            Search title, description, assignee
    --status <status>         pending, in-progress, completed, all
    --priority <priority>     low, medium, high, all
    --due <state>             overdue, due-soon, done

  crmpro crm pipeline       Pipeline totals by stage
    --stage <stage>           Only this stage

  crmpro crm task-stats     Pending, completed, overdue, due-soon counts
    --today <YYYY-MM-DD>      Reference date

  crmpro crm search <text>  Search every collection

VIZ COMMANDS:
  crmpro viz dashboard           Text dashboard
  crmpro viz graph pipeline      Deals by stage as GraphViz DOT
  crmpro viz graph all           Every entity as GraphViz DOT
    --output <file>                Output file (default: stdout)

ENVIRONMENT:
  CRMPRO_USER_NAME, CRMPRO_TIMEZONE, CRMPRO_CURRENCY, CRMPRO_LOG_LEVEL,
  CRMPRO_ADDR override the settings file. A .env file in the working
  directory is loaded first.

EXAMPLES:
  # Start MCP server for Claude Desktop
  crmpro mcp

  # Deals in negotiation
  crmpro crm list-deals --stage negotiation

  # Overdue tasks as of a date
  crmpro crm task-stats --today 2025-01-17

  # Render the pipeline
  crmpro viz graph pipeline | dot -Tpng > pipeline.png

`, version, config.DefaultAddr)
}
