package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
)

var departmentsCmd = &cobra.Command{
	Use:     "departments <inputs...>",
	Aliases: []string{"depts"},
	Short:   "List departments with head-counts",
	Long: `Departments lists every distinct department in the inputs with the
number of people in it, ordered for the configured locale. Records with no
department are not counted.

Examples:
  orgtree departments people.csv
  orgtree departments people.csv -o yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDepartments,
}

func init() {
	addInputFlags(departmentsCmd, false)
	rootCmd.AddCommand(departmentsCmd)
}

func runDepartments(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}

	depts := org.Departments(s.records(), s.locale)
	return emit(cmd.OutOrStdout(), s.outputFormat(), depts, func() string {
		if len(depts) == 0 {
			return "No departments found.\n"
		}
		var b strings.Builder
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DEPARTMENT\tPEOPLE")
		for _, d := range depts {
			fmt.Fprintf(tw, "%s\t%d\n", d.Name, d.Count)
		}
		tw.Flush()
		return b.String()
	})
}
