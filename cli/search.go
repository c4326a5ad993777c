// ABOUTME: Workspace-wide search command
// ABOUTME: Prints contacts, deals, and tasks matching one query
package cli

import (
	"flag"
	"fmt"
	"strings"
)

// SearchCommand searches every collection for the given text.
func SearchCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	query := strings.Join(fs.Args(), " ")
	if query == "" {
		return fmt.Errorf("search text is required")
	}

	env.Workspace.Lock()
	results := env.Workspace.Search(query)
	env.Workspace.Unlock()

	out := env.out()
	if results.Len() == 0 {
		_, _ = fmt.Fprintf(out, "Nothing matches %q\n", query)
		return nil
	}

	if len(results.Contacts) > 0 {
		_, _ = fmt.Fprintf(out, "Contacts (%d)\n", len(results.Contacts))
		for _, c := range results.Contacts {
			_, _ = fmt.Fprintf(out, "  #%d %s <%s> %s\n", c.ID, c.Name, c.Email, c.Company)
		}
	}
	if len(results.Deals) > 0 {
		_, _ = fmt.Fprintf(out, "Deals (%d)\n", len(results.Deals))
		for _, d := range results.Deals {
			_, _ = fmt.Fprintf(out, "  #%d %s [%s] %s\n", d.ID, d.Name, d.Stage, env.money().Format(d.Value))
		}
	}
	if len(results.Tasks) > 0 {
		_, _ = fmt.Fprintf(out, "Tasks (%d)\n", len(results.Tasks))
		for _, t := range results.Tasks {
			_, _ = fmt.Fprintf(out, "  #%d %s [%s] due %s\n", t.ID, t.Title, t.Status, orDash(t.DueDate.String()))
		}
	}
	return nil
}
