package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/config"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/ingest"
)

var initFlagForce bool

// initCmd implements "orgtree init [sample]". It writes orgtree.toml into
// the working directory and never reads an existing one.
var initCmd = &cobra.Command{
	Use:   "init [sample]",
	Short: "Create a starter orgtree.toml",
	Long: `Init writes a commented orgtree.toml to the current directory. When a
sample input file is given, the columns detected in it (and any --column
flags) are written to the [columns] section.

Examples:
  orgtree init
  orgtree init people.csv
  orgtree init export.xlsx --sheet Staff --interactive --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlagForce, "force", false, "Overwrite an existing orgtree.toml")
	initCmd.Flags().StringVar(&inFlags.format, "format", "", "Sample format: csv, tsv, xlsx, json (default: by extension)")
	initCmd.Flags().StringVar(&inFlags.sheet, "sheet", "", "XLSX worksheet to read (default: first sheet)")
	initCmd.Flags().StringVar(&inFlags.delimiter, "delimiter", "", `CSV delimiter, e.g. ";" or "\t"`)
	initCmd.Flags().StringArrayVar(&inFlags.columns, "column", nil, "Map a field to a header (repeatable)")
	initCmd.Flags().BoolVarP(&inFlags.interactive, "interactive", "i", false, "Pick columns for the sample interactively")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	o, err := inFlags.overrides(cmd)
	if err != nil {
		return err
	}
	cfg := config.Resolve(config.NewDefaults(), nil, nil, o).Config

	if len(args) == 1 {
		s := &session{resolved: &config.ResolvedConfig{Config: cfg}}
		_, _, m, err := detectMapping(s, args[0])
		if err != nil {
			return err
		}
		for _, f := range ingest.Fields {
			if h := m[f]; h != "" {
				cfg.Columns.Set(string(f), h)
			}
		}
		// The sample's settings are only needed to read it.
		cfg.Input.Format, cfg.Input.Delimiter = "", ""
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	path, err := config.WriteStarter(dir, cfg, initFlagForce)
	if errors.Is(err, config.ErrConfigExists) {
		return fmt.Errorf("%s already exists in %s; use --force to overwrite", config.ConfigFileName, dir)
	}
	if err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "Wrote %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Review the [columns] section of %s\n", config.ConfigFileName)
	fmt.Fprintln(out, "  2. Run: orgtree validate <your export>")
	return nil
}
