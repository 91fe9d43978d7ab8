package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/logging"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/org"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/watch"
)

var (
	validateStrict bool
	validateWatch  bool
)

// validateOutput is the machine-readable form of a validation run.
type validateOutput struct {
	org.Report  `yaml:",inline"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
}

var validateCmd = &cobra.Command{
	Use:   "validate <inputs...>",
	Short: "Check employee records for structural defects",
	Long: `Validate reads the inputs and reports missing fields, duplicate ids,
managers that match no record, reporting cycles and multiple roots.

The exit status is non-zero when the records are not acceptable, or with
--strict when any warning is present.

Examples:
  orgtree validate people.csv
  orgtree validate 'exports/**/*.xlsx' -o json
  orgtree validate people.csv --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	addInputFlags(validateCmd, false)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat warnings as failures")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "Re-validate whenever an input file changes")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}

	if !validateWatch {
		return validateOnce(cmd, s)
	}

	// Report the first run and keep watching whatever it found.
	if err := validateOnce(cmd, s); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}

	paths := make([]string, 0, len(s.loaded.Files))
	for _, f := range s.loaded.Files {
		paths = append(paths, f.Path)
	}
	logger := logging.New("watch")
	w, err := watch.New(paths, watch.DefaultDebounce, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching for changes", "files", len(paths))
	return w.Run(ctx, func(changed []string) error {
		logger.Info("inputs changed", "files", changed)
		if err := s.load(cmd, args); err != nil {
			return err
		}
		return validateOnce(cmd, s)
	})
}

// validateOnce validates the session's records and writes the report.
func validateOnce(cmd *cobra.Command, s *session) error {
	report := org.Validate(s.records())
	out := validateOutput{Report: *report, Fingerprint: report.Fingerprint()}

	err := emit(cmd.OutOrStdout(), s.outputFormat(), out, func() string {
		th := theme()
		return th.ReportText(report) + th.StatusKey.Render("  fingerprint ") + th.StatusValue.Render(out.Fingerprint) + "\n"
	})
	if err != nil {
		return err
	}

	switch {
	case report.HasErrors():
		return fmt.Errorf("validation failed: %d error(s)", len(report.Errors()))
	case validateStrict && report.HasWarnings():
		return fmt.Errorf("validation failed: %d warning(s) with --strict", len(report.Warnings()))
	}
	return nil
}

