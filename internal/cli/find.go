package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
)

var findLimit int

var findCmd = &cobra.Command{
	Use:   "find <query> <inputs...>",
	Short: "Find people by name and show who they report to",
	Long: `Find fuzzy-matches the query against every name in the hierarchy. The
query's letters must appear in order, ignoring case and accents, so "jdoe"
finds "Jane Doe". Each hit is printed with its reporting chain.

Find does not stop on validation errors: it is meant for exploring data
that may still be broken.

Examples:
  orgtree find riley people.csv
  orgtree find "sam" people.csv --limit 3 -o json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFind,
}

func init() {
	addInputFlags(findCmd, false)
	findCmd.Flags().IntVarP(&findLimit, "limit", "n", 10, "Maximum number of hits (0 for all)")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	query := args[0]
	s, err := openSession(cmd, args[1:])
	if err != nil {
		return err
	}

	forest := org.Build(s.records(), s.buildOptions())
	roots := append(append([]*org.Node{}, forest.Roots...), forest.Detached...)
	hits := org.Search(roots, query, findLimit)

	return emit(cmd.OutOrStdout(), s.outputFormat(), hits, func() string {
		if len(hits) == 0 {
			return fmt.Sprintf("No one matches %q.\n", query)
		}
		th := theme()
		var b strings.Builder
		for _, h := range hits {
			b.WriteString(th.TreeMatch.Render(h.Record.Name))
			fmt.Fprintf(&b, "  %s · %s  [%s]\n", h.Record.Title, h.Record.Department, h.Record.ID)
			if len(h.Chain) == 0 {
				b.WriteString(th.HelpDesc.Render("  top of the hierarchy") + "\n")
				continue
			}
			chain := make([]string, len(h.Chain))
			for i, c := range h.Chain {
				chain[i] = c.Name
			}
			b.WriteString(th.HelpDesc.Render("  reports through "+strings.Join(chain, " → ")) + "\n")
		}
		return b.String()
	})
}
