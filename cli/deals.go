// ABOUTME: Deal CLI commands
// ABOUTME: Lists deals and prints pipeline metrics by stage
package cli

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// ListDealsCommand lists deals matching a query and stage.
func ListDealsCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("list-deals", flag.ContinueOnError)
	query := fs.String("query", "", "Search by name, company, or contact")
	stage := fs.String("stage", models.FilterAll, "Filter by stage (lead, qualified, proposal, negotiation, closed-won, closed-lost, all)")
	limit := fs.Int("limit", env.settings().ItemsPerPage(), "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *stage != models.FilterAll && !models.Stage(*stage).Valid() {
		return fmt.Errorf("unknown stage %q", *stage)
	}

	env.Workspace.Lock()
	deals := env.Workspace.Deals.Filter(store.DealFilter{Query: *query, Stage: *stage})
	env.Workspace.Unlock()

	if len(deals) == 0 {
		_, _ = fmt.Fprintln(env.out(), "No deals found")
		return nil
	}

	money := env.money()
	w := tabwriter.NewWriter(env.out(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tSTAGE\tVALUE\tPROB\tCLOSE")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t-----\t-----\t----\t-----")

	shown := limitRows(deals, *limit)
	for _, d := range shown {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d%%\t%s\n",
			d.ID, d.Name, orDash(d.Company), d.Stage, money.Format(d.Value),
			d.Probability, orDash(d.CloseDate.String()))
	}

	_ = w.Flush()
	_, _ = fmt.Fprintf(env.out(), "\n%d of %d deals\n", len(shown), len(deals))
	return nil
}

// PipelineCommand prints total and weighted pipeline value with a per-stage breakdown.
func PipelineCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("pipeline", flag.ContinueOnError)
	stage := fs.String("stage", "", "Only show this stage")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *stage != "" && !models.Stage(*stage).Valid() {
		return fmt.Errorf("unknown stage %q", *stage)
	}

	env.Workspace.Lock()
	pipeline := env.Workspace.Deals.Pipeline()
	env.Workspace.Unlock()

	money := env.money()
	w := tabwriter.NewWriter(env.out(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STAGE\tDEALS\tVALUE\tWEIGHTED")
	_, _ = fmt.Fprintln(w, "-----\t-----\t-----\t--------")
	for _, s := range pipeline.Stages {
		if *stage != "" && s.Stage != models.Stage(*stage) {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", s.Stage, s.Count, money.Format(s.Value), money.Format(s.Weighted))
	}
	if *stage == "" {
		_, _ = fmt.Fprintf(w, "TOTAL\t%d\t%s\t%s\n", pipeline.Count, money.Format(pipeline.Total), money.Format(pipeline.Weighted))
	}
	return w.Flush()
}
