package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/config"
)

// configCmd groups the debug and validate subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  "Inspect, validate, and debug orgtree configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// configDebugCmd implements "orgtree config debug".
var configDebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show resolved configuration with source annotations",
	Long: `Display the fully-resolved configuration showing each value and
the source where it came from (cli flag, environment variable, config file, or default).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, _, err := loadAndResolveConfig(nil)
		if err != nil {
			return err
		}
		printResolvedConfig(cmd, resolved)
		return nil
	},
}

// configValidateCmd implements "orgtree config validate".
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and report issues",
	Long:  "Check the configuration for errors and warnings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, meta, err := loadAndResolveConfig(nil)
		if err != nil {
			return err
		}
		result := config.Validate(resolved.Config, meta)
		printValidationResult(cmd, result)
		if result.HasErrors() {
			return fmt.Errorf("configuration has %d error(s)", len(result.Errors()))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDebugCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

// loadAndResolveConfig loads orgtree.toml (from --config, or found by
// walking up from the working directory) and merges it with defaults, the
// environment and overrides. The returned metadata is nil when no file was
// loaded.
func loadAndResolveConfig(overrides *config.CLIOverrides) (*config.ResolvedConfig, *toml.MetaData, error) {
	var (
		fileCfg *config.Config
		meta    *toml.MetaData
		cfgPath string
	)

	if flagConfig != "" {
		cfgPath = flagConfig
	} else {
		found, err := config.FindConfigFile(".")
		if err != nil {
			return nil, nil, fmt.Errorf("finding config file: %w", err)
		}
		cfgPath = found
	}

	if cfgPath != "" {
		fc, md, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		fileCfg = fc
		meta = &md
	}

	resolved := config.Resolve(config.NewDefaults(), fileCfg, os.LookupEnv, overrides)
	resolved.Path = cfgPath

	return resolved, meta, nil
}

// sourceStyle colors a source annotation. --no-color strips the ANSI codes
// through the Ascii profile set in setupGlobals.
func sourceStyle(src config.ConfigSource) lipgloss.Style {
	switch src {
	case config.SourceFile:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	case config.SourceEnv:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	case config.SourceCLI:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	}
}

var (
	styleHeader   = lipgloss.NewStyle().Bold(true)
	styleSection  = lipgloss.NewStyle().Bold(true)
	styleErrorLbl = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarnLbl  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleSuccess  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

const fieldWidth = 16

func printHeading(out io.Writer, title string) {
	fmt.Fprintln(out, styleHeader.Render(title))
	fmt.Fprintln(out, strings.Repeat("=", len(title)))
	fmt.Fprintln(out)
}

// printResolvedConfig writes every configuration key with its source.
func printResolvedConfig(cmd *cobra.Command, rc *config.ResolvedConfig) {
	out := cmd.OutOrStdout()
	printHeading(out, "Configuration Debug")

	if rc.Path != "" {
		fmt.Fprintf(out, "Config file: %s\n", rc.Path)
	} else {
		fmt.Fprintln(out, "Config file: none found")
	}
	fmt.Fprintln(out)

	c := rc.Config
	src := func(key string) config.ConfigSource {
		if s, ok := rc.Sources[key]; ok {
			return s
		}
		return config.SourceDefault
	}

	fmt.Fprintln(out, styleSection.Render("[input]"))
	printField(out, "format", fmtStr(c.Input.Format), src("input.format"))
	printField(out, "delimiter", fmtStr(c.Input.Delimiter), src("input.delimiter"))
	printField(out, "sheet", fmtStr(c.Input.Sheet), src("input.sheet"))
	printField(out, "concurrency", fmt.Sprint(c.Input.Concurrency), src("input.concurrency"))
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[columns]"))
	for _, key := range config.ColumnKeys {
		printField(out, key, fmtStr(c.Columns.Get(key)), src("columns."+key))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[hierarchy]"))
	printField(out, "locale", fmtStr(c.Hierarchy.Locale), src("hierarchy.locale"))
	printField(out, "cycle_policy", fmtStr(c.Hierarchy.CyclePolicy), src("hierarchy.cycle_policy"))
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[view]"))
	printField(out, "departments", fmtSlice(c.View.Departments), src("view.departments"))
	printField(out, "query", fmtStr(c.View.Query), src("view.query"))
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[output]"))
	printField(out, "format", fmtStr(c.Output.Format), src("output.format"))
}

func printField(out io.Writer, name, value string, src config.ConfigSource) {
	padded := fmt.Sprintf("  %-*s", fieldWidth, name)
	label := sourceStyle(src).Render(fmt.Sprintf("(source: %s)", src))
	fmt.Fprintf(out, "%s = %-32s %s\n", padded, value, label)
}

func fmtStr(s string) string {
	return fmt.Sprintf("%q", s)
}

func fmtSlice(ss []string) string {
	if len(ss) == 0 {
		return "[]"
	}
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmtStr(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// printValidationResult writes the configuration findings.
func printValidationResult(cmd *cobra.Command, result *config.ValidationResult) {
	out := cmd.OutOrStdout()
	printHeading(out, "Configuration Validation")

	errs := result.Errors()
	warns := result.Warnings()

	if len(errs) == 0 && len(warns) == 0 {
		fmt.Fprintln(out, styleSuccess.Render("No issues found."))
		return
	}

	printIssues := func(label lipgloss.Style, title string, issues []config.ValidationIssue) {
		if len(issues) == 0 {
			return
		}
		fmt.Fprintln(out, label.Render(title))
		for _, issue := range issues {
			fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
		}
		fmt.Fprintln(out)
	}
	printIssues(styleErrorLbl, "Errors:", errs)
	printIssues(styleWarnLbl, "Warnings:", warns)

	fmt.Fprintf(out, "%d error(s), %d warning(s)\n", len(errs), len(warns))
}
