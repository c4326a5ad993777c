// ABOUTME: MCP server subcommand
// ABOUTME: Registers every CRM tool, resource, and prompt and serves them on stdio
package cli

import (
	"context"

	"github.com/harperreed/crmpro/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer builds the MCP server with all tools, resources, and prompts registered.
func NewMCPServer(env *Env) *mcp.Server {
	settings := env.settings()
	today := handlers.Clock(settings.Today)
	money := settings.Money()

	contactHandlers := handlers.NewContactHandlers(env.Workspace)
	dealHandlers := handlers.NewDealHandlers(env.Workspace, today)
	taskHandlers := handlers.NewTaskHandlers(env.Workspace, today, settings.Profile.Name)
	queryHandlers := handlers.NewQueryHandlers(env.Workspace, env.Feed, today, money)
	vizHandlers := handlers.NewVizHandlers(env.Workspace, env.Feed, today, money)
	resourceHandlers := handlers.NewResourceHandlers(env.Workspace, today)
	promptHandlers := handlers.NewPromptHandlers(env.Workspace, today, money)

	version := env.Version
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "crmpro",
		Version: version,
	}, nil)

	// Contacts
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact. Name, email, and company are required; status defaults to prospect",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update an existing contact's information",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact by ID",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search for contacts by name, email, or company, optionally filtered by status",
	}, contactHandlers.FindContacts)

	// Deals
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_deal",
		Description: "Create a new deal. Stage defaults to lead and the close date to 30 days from today",
	}, dealHandlers.AddDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_deal",
		Description: "Update an existing deal. A stage change resets the probability unless one is given",
	}, dealHandlers.UpdateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "change_deal_stage",
		Description: "Move a deal to another pipeline stage, applying the stage's default probability unless overridden",
	}, dealHandlers.ChangeDealStage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_deal",
		Description: "Delete a deal by ID",
	}, dealHandlers.DeleteDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_deals",
		Description: "Search for deals by name, company, or contact, optionally filtered by stage",
	}, dealHandlers.FindDeals)

	// Tasks
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_task",
		Description: "Create a new task. Due date defaults to tomorrow and assignee to the current user",
	}, taskHandlers.AddTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_task",
		Description: "Update an existing task",
	}, taskHandlers.UpdateTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_task_status",
		Description: "Advance a task one step along pending, in-progress, completed, pending",
	}, taskHandlers.ToggleTaskStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by ID",
	}, taskHandlers.DeleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_tasks",
		Description: "Search for tasks by title, description, or assignee, filtered by status, priority, or due state",
	}, taskHandlers.FindTasks)

	// Queries and metrics
	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_crm",
		Description: "Universal query tool for filtering contacts, deals, or tasks",
	}, queryHandlers.QueryCRM)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_crm",
		Description: "Search contacts, deals, and tasks at once",
	}, queryHandlers.SearchCRM)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_metrics",
		Description: "Total and weighted pipeline value with a per-stage breakdown",
	}, queryHandlers.PipelineMetrics)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "task_metrics",
		Description: "Pending, completed, overdue, and due-soon task counts",
	}, queryHandlers.TaskMetrics)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recent_activity",
		Description: "Most recent changes made in this session",
	}, queryHandlers.RecentActivity)

	// Visualization
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Generate a GraphViz DOT graph of the pipeline or of every entity",
	}, vizHandlers.GenerateGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dashboard",
		Description: "Text dashboard with pipeline, task, and activity summaries",
	}, vizHandlers.Dashboard)

	// Resources
	for _, r := range []*mcp.Resource{
		{URI: "crm://contacts", Name: "contacts", Description: "All contacts", MIMEType: "application/json"},
		{URI: "crm://deals", Name: "deals", Description: "All deals", MIMEType: "application/json"},
		{URI: "crm://tasks", Name: "tasks", Description: "All tasks with due state", MIMEType: "application/json"},
		{URI: "crm://pipeline", Name: "pipeline", Description: "Pipeline totals by stage", MIMEType: "application/json"},
	} {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	for _, t := range []*mcp.ResourceTemplate{
		{URITemplate: "crm://contacts/{id}", Name: "contact", Description: "One contact by ID", MIMEType: "application/json"},
		{URITemplate: "crm://deals/{id}", Name: "deal", Description: "One deal by ID", MIMEType: "application/json"},
		{URITemplate: "crm://tasks/{id}", Name: "task", Description: "One task by ID", MIMEType: "application/json"},
	} {
		server.AddResourceTemplate(t, resourceHandlers.ReadResource)
	}

	// Prompts
	server.AddPrompt(&mcp.Prompt{
		Name:        "contact-summary",
		Description: "Summarize a contact with their deals and tasks",
		Arguments: []*mcp.PromptArgument{
			{Name: "contact_id", Description: "Contact ID", Required: true},
		},
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "deal-analysis",
		Description: "Review the pipeline and suggest where to focus",
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "follow-up-suggestions",
		Description: "Suggest follow-ups for overdue and upcoming tasks",
	}, promptHandlers.GetPrompt)

	return server
}

// MCPCommand starts the MCP server on stdio.
func MCPCommand(ctx context.Context, env *Env) error {
	env.logger().Info("starting MCP server", "transport", "stdio")
	return NewMCPServer(env).Run(ctx, &mcp.StdioTransport{})
}
