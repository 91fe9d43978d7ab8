package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagDir     string
	flagNoColor bool
)

// rootCmd is the base command for orgtree.
var rootCmd = &cobra.Command{
	Use:   "orgtree",
	Short: "Validate and explore organisation charts from spreadsheet exports",
	Long: `orgtree reads employee records from CSV, TSV, XLSX or JSON exports,
checks the reporting structure for defects (missing fields, duplicate ids,
dangling managers, cycles, multiple roots) and turns the records into a
browsable hierarchy.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

// setupGlobals applies env fallbacks, logging, color and --dir. Commands
// that override PersistentPreRunE call it themselves.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	if !flags.Changed("verbose") && os.Getenv("ORGTREE_VERBOSE") != "" {
		flagVerbose = true
	}
	if !flags.Changed("quiet") && os.Getenv("ORGTREE_QUIET") != "" {
		flagQuiet = true
	}
	if !flags.Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("ORGTREE_NO_COLOR") != "") {
		flagNoColor = true
	}

	logging.Setup(logging.Options{
		Verbose: flagVerbose,
		Quiet:   flagQuiet,
		JSON:    os.Getenv("ORGTREE_LOG_FORMAT") == "json",
		Output:  cmd.ErrOrStderr(),
	})

	if flagNoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if flagDir != "" {
		if err := os.Chdir(flagDir); err != nil {
			return fmt.Errorf("changing directory to %s: %w", flagDir, err)
		}
	}
	return nil
}

func init() {
	addGlobalFlags(rootCmd)
}

func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: ORGTREE_VERBOSE)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: ORGTREE_QUIET)")
	pf.StringVar(&flagConfig, "config", "", "Path to orgtree.toml config file")
	pf.StringVar(&flagDir, "dir", "", "Override working directory")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: ORGTREE_NO_COLOR, NO_COLOR)")
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// NewRootCmd returns a fresh command tree mirroring rootCmd, for the
// completion and man page generators. Subcommands are cloned, so the
// package-level tree keeps its parents and writers. Global flags are bound
// to the same variables as rootCmd's.
func NewRootCmd() *cobra.Command {
	cmd := cloneCommand(rootCmd)
	addGlobalFlags(cmd)
	return cmd
}

// cloneCommand copies c and its subcommands. Flag definitions are shared
// with the original.
func cloneCommand(c *cobra.Command) *cobra.Command {
	clone := &cobra.Command{
		Use:               c.Use,
		Aliases:           c.Aliases,
		Short:             c.Short,
		Long:              c.Long,
		Example:           c.Example,
		Args:              c.Args,
		ValidArgs:         c.ValidArgs,
		ValidArgsFunction: c.ValidArgsFunction,
		Hidden:            c.Hidden,
		SilenceUsage:      c.SilenceUsage,
		SilenceErrors:     c.SilenceErrors,
		PersistentPreRunE: c.PersistentPreRunE,
		PreRunE:           c.PreRunE,
		RunE:              c.RunE,
		Run:               c.Run,
	}
	if c.HasParent() {
		clone.Flags().AddFlagSet(c.LocalNonPersistentFlags())
		clone.PersistentFlags().AddFlagSet(c.PersistentFlags())
	}
	for _, child := range c.Commands() {
		clone.AddCommand(cloneCommand(child))
	}
	return clone
}
