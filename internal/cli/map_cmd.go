package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/ingest"
)

// mapOutput is the machine-readable form of "orgtree map".
type mapOutput struct {
	Path     string              `json:"path" yaml:"path"`
	Format   ingest.Format       `json:"format" yaml:"format"`
	Encoding string              `json:"encoding" yaml:"encoding"`
	Headers  []string            `json:"headers" yaml:"headers"`
	Columns  map[string]string   `json:"columns" yaml:"columns"`
	Missing  []string            `json:"missing" yaml:"missing"`
	Samples  map[string][]string `json:"samples" yaml:"samples"`
}

const mapSampleSize = 3

var mapCmd = &cobra.Command{
	Use:   "map <input>",
	Short: "Show how input columns map to record fields",
	Long: `Map reads one input file, detects which column holds each record field
and shows sample values for each. Columns given with --column or in the
[columns] section of orgtree.toml take precedence over detection.

With --interactive a form lets you pick the column for every field. The
result is printed as a [columns] snippet ready to paste into orgtree.toml.

Examples:
  orgtree map people.csv
  orgtree map export.xlsx --sheet Staff --interactive`,
	Args: cobra.ExactArgs(1),
	RunE: runMap,
}

func init() {
	addInputFlags(mapCmd, false)
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	s, err := resolveSession(cmd)
	if err != nil {
		return err
	}
	t, format, m, err := detectMapping(s, args[0])
	if err != nil {
		return err
	}

	out := mapOutput{
		Path:     args[0],
		Format:   format,
		Encoding: t.Encoding,
		Headers:  t.Headers,
		Columns:  make(map[string]string),
		Missing:  []string{},
		Samples:  make(map[string][]string),
	}
	for _, f := range ingest.Fields {
		if h := m[f]; h != "" {
			out.Columns[string(f)] = h
			out.Samples[string(f)] = t.Sample(h, mapSampleSize)
		}
	}
	for _, f := range m.Missing() {
		out.Missing = append(out.Missing, string(f))
	}

	snippet, err := m.Snippet()
	if err != nil {
		return err
	}
	return emit(cmd.OutOrStdout(), s.outputFormat(), out, func() string {
		return mapText(t, m, snippet)
	})
}

// detectMapping reads path and resolves its column mapping: detection,
// then configured overrides, then the wizard when --interactive is set.
func detectMapping(s *session, path string) (*ingest.Table, ingest.Format, ingest.Mapping, error) {
	in := s.resolved.Config.Input
	format, err := ingest.DetectFormat(path, in.Format)
	if err != nil {
		return nil, "", nil, err
	}
	opts := ingest.Options{Sheet: in.Sheet}
	if in.Delimiter != "" {
		if opts.Delimiter, err = ingest.ParseDelimiter(in.Delimiter); err != nil {
			return nil, "", nil, err
		}
	}
	t, err := ingest.ReadFile(path, format, opts)
	if err != nil {
		return nil, "", nil, err
	}

	m, err := ingest.AutoDetect(t.Headers).Merge(s.resolved.Config.Columns.Overrides())
	if err != nil {
		return nil, "", nil, err
	}
	if inFlags.interactive {
		if m, err = ingest.RunMappingWizard(t, m); err != nil {
			return nil, "", nil, err
		}
	}
	return t, format, m, nil
}

func mapText(t *ingest.Table, m ingest.Mapping, snippet string) string {
	th := theme()
	var b strings.Builder

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tCOLUMN\tSAMPLES")
	for _, f := range ingest.Fields {
		h := m[f]
		switch {
		case h != "":
			fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Label(), h, strings.Join(t.Sample(h, mapSampleSize), ", "))
		case f.Required():
			fmt.Fprintf(tw, "%s\t%s\t\n", f.Label(), th.IssueError.Render("(not found)"))
		default:
			fmt.Fprintf(tw, "%s\t-\t\n", f.Label())
		}
	}
	tw.Flush()

	if missing := m.Missing(); len(missing) > 0 {
		labels := make([]string, len(missing))
		for i, f := range missing {
			labels[i] = f.Label()
		}
		fmt.Fprintf(&b, "\n%s %s\n", th.IssueError.Render("Missing required fields:"), strings.Join(labels, ", "))
		b.WriteString("Map them with --column field=Header or --interactive.\n")
	}

	b.WriteString("\n")
	b.WriteString(snippet)
	return b.String()
}
