package cli

import (
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/buildinfo"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <inputs...>",
	Short: "Explore the hierarchy in an interactive terminal view",
	Long: `Browse opens a full-screen view of the hierarchy with a search box and a
department list. Typing narrows the tree as you go; space toggles a
department. Validation errors stop the command unless --force is given.

--dept and --query set the initial view.

Keys:
  tab / shift+tab  switch pane
  space            toggle department
  a / n            select all / no departments
  esc              clear the search
  ?                help
  q, ctrl+c        quit`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBrowse,
}

func init() {
	addInputFlags(browseCmd, true)
	browseCmd.Flags().BoolVar(&flagForce, "force", false, "Continue even when validation finds errors")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}
	if err := gate(cmd, org.Validate(s.records()), flagForce); err != nil {
		return err
	}

	return tui.RunBrowser(tui.BrowserConfig{
		Version:     buildinfo.GetInfo().Version,
		Source:      s.source(),
		Forest:      org.Build(s.records(), s.buildOptions()),
		Departments: org.Departments(s.records(), s.locale),
		Initial:     s.filter,
	})
}
