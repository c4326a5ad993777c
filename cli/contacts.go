// ABOUTME: Contact CLI commands
// ABOUTME: Lists and filters contacts in the current workspace
package cli

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// ListContactsCommand lists contacts matching a query and status.
func ListContactsCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ContinueOnError)
	query := fs.String("query", "", "Search by name, email, or company")
	status := fs.String("status", models.FilterAll, "Filter by status (active, inactive, prospect, all)")
	limit := fs.Int("limit", env.settings().ItemsPerPage(), "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *status != models.FilterAll && !models.ContactStatus(*status).Valid() {
		return fmt.Errorf("unknown status %q", *status)
	}

	env.Workspace.Lock()
	contacts := env.Workspace.Contacts.Filter(store.ContactFilter{Query: *query, Status: *status})
	env.Workspace.Unlock()

	if len(contacts) == 0 {
		_, _ = fmt.Fprintln(env.out(), "No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(env.out(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCOMPANY\tSTATUS")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t-------\t------")

	shown := limitRows(contacts, *limit)
	for _, c := range shown {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, orDash(c.Email), orDash(c.Company), c.Status)
	}

	_ = w.Flush()
	_, _ = fmt.Fprintf(env.out(), "\n%d of %d contacts\n", len(shown), len(contacts))
	return nil
}
