package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taskflow-dev/taskflow/internal/app"
)

// NewRoutesCmd creates the routes command
func NewRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the application routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(commandOptions(cmd)...)
		},
	}
}

// runRoutes prints the router table. It needs no session.
func runRoutes(opts ...Option) error {
	o := &runOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	return printRoutes(o.out)
}

func printRoutes(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tNAME\tLAYOUT")
	fmt.Fprintln(w, "────\t────\t──────")

	for _, r := range app.Routes() {
		layout := string(r.Layout)
		if layout == "" {
			layout = "root"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Path, r.Name, layout)
	}

	return w.Flush()
}
