package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(commandOptions(cmd)...)
		},
	}
}

func runDashboard(opts ...Option) error {
	e, err := bootstrap(context.Background(), opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	page, err := requireDashboard(e)
	if err != nil {
		return err
	}

	fmt.Fprintln(e.out, page.Welcome())
	fmt.Fprintln(e.out)

	stats := page.Stats()
	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTIVE PROJECTS\tPENDING TASKS\tWORKSPACES")
	fmt.Fprintln(w, "───────────────\t─────────────\t──────────")
	fmt.Fprintf(w, "%d\t%d\t%d\n", stats.ActiveProjects, stats.PendingTasks, stats.ActiveWorkspaces)
	w.Flush()

	fmt.Fprintln(e.out, "\nQuick actions:")
	for _, action := range page.QuickActions() {
		fmt.Fprintf(e.out, "  %-18s %s\n", action.Label, action.Path)
	}

	return nil
}
