package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/logging"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
)

// flagForce lets tree, flatten and browse continue past validation errors.
var flagForce bool

var treeCmd = &cobra.Command{
	Use:   "tree <inputs...>",
	Short: "Print the reporting hierarchy",
	Long: `Tree validates the inputs, builds the reporting hierarchy and prints it
as an indented tree. Validation errors stop the command unless --force is
given; warnings are reported and the tree is still printed.

--dept and --query narrow the view. Managers of matching people are kept
so every match is shown in context.

Examples:
  orgtree tree people.csv
  orgtree tree people.csv --dept Engineering --query lead
  orgtree tree people.xlsx --sheet Staff -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTree,
}

func init() {
	addInputFlags(treeCmd, true)
	treeCmd.Flags().BoolVar(&flagForce, "force", false, "Continue even when validation finds errors")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}
	view, err := buildView(cmd, s)
	if err != nil {
		return err
	}

	return emit(cmd.OutOrStdout(), s.outputFormat(), view, func() string {
		if view.Count() == 0 {
			return "No one matches the current view.\n"
		}
		return theme().ForestText(view, !s.filter.IsEmpty())
	})
}

// buildView gates the session's records on validation, builds the forest
// and applies the session's view filter to its roots and detached members.
func buildView(cmd *cobra.Command, s *session) (*org.Forest, error) {
	report := org.Validate(s.records())
	if err := gate(cmd, report, flagForce); err != nil {
		return nil, err
	}

	forest := org.Build(s.records(), s.buildOptions())
	logger := logging.New("cli")
	logger.Debug("built hierarchy",
		"records", len(s.records()),
		"roots", len(forest.Roots),
		"detached", len(forest.Detached),
		"policy", s.policy)

	return filterForest(forest, s.filter)
}

func filterForest(f *org.Forest, vf org.ViewFilter) (*org.Forest, error) {
	roots, err := org.Filter(f.Roots, vf)
	if err != nil {
		return nil, fmt.Errorf("applying view: %w", err)
	}
	detached, err := org.Filter(f.Detached, vf)
	if err != nil {
		return nil, fmt.Errorf("applying view: %w", err)
	}
	return &org.Forest{Roots: roots, Detached: detached}, nil
}
