package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
)

// ErrWizardCancelled is returned when the user aborts the mapping wizard.
var ErrWizardCancelled = errors.New("column mapping cancelled by user")

const (
	wizardWidth = 80

	// noColumn is the select value for an optional field left unmapped.
	noColumn = ""

	sampleValues = 3
)

// RunMappingWizard asks the user to pick a source column for every field,
// starting from the detected mapping. It satisfies MappingFunc.
func RunMappingWizard(t *Table, detected Mapping) (Mapping, error) {
	chosen := make(map[Field]*string, len(Fields))
	var fields []huh.Field
	for _, f := range Fields {
		v := detected[f]
		chosen[f] = &v
		fields = append(fields, huh.NewSelect[string]().
			Title(fieldTitle(f)).
			Options(columnOptions(t, f)...).
			Value(chosen[f]).
			Validate(requireColumn(f)))
	}

	confirmed := true
	fields = append(fields, huh.NewConfirm().
		Title(fmt.Sprintf("Use this mapping for %s?", t.Source)).
		Affirmative("Use it").
		Negative("Cancel").
		Value(&confirmed))

	err := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(huh.ThemeCharm()).
		WithWidth(wizardWidth).
		Run()
	if err != nil {
		return nil, mapWizardErr(err)
	}
	if !confirmed {
		return nil, ErrWizardCancelled
	}

	out := Mapping{}
	for f, v := range chosen {
		if *v != noColumn {
			out[f] = *v
		}
	}
	return out, nil
}

func fieldTitle(f Field) string {
	if f.Required() {
		return f.Label() + " column"
	}
	return f.Label() + " column (optional)"
}

// columnOptions lists the table's headers with a few sample values each.
// Optional fields get a leading "(none)" choice.
func columnOptions(t *Table, f Field) []huh.Option[string] {
	var opts []huh.Option[string]
	if !f.Required() {
		opts = append(opts, huh.NewOption("(none)", noColumn))
	}
	for _, h := range t.Headers {
		label := h
		if samples := t.Sample(h, sampleValues); len(samples) > 0 {
			label = fmt.Sprintf("%s  e.g. %s", h, strings.Join(samples, ", "))
		}
		opts = append(opts, huh.NewOption(label, h))
	}
	return opts
}

func requireColumn(f Field) func(string) error {
	return func(v string) error {
		if f.Required() && v == noColumn {
			return fmt.Errorf("%s is required", f.Label())
		}
		return nil
	}
}

func mapWizardErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrWizardCancelled
	}
	return fmt.Errorf("mapping wizard: %w", err)
}

// Snippet renders m as a [columns] section for orgtree.toml.
func (m Mapping) Snippet() (string, error) {
	cols := make(map[string]string, len(m))
	for f, h := range m {
		if h != "" {
			cols[string(f)] = h
		}
	}
	var b strings.Builder
	enc := toml.NewEncoder(&b)
	enc.Indent = ""
	if err := enc.Encode(struct {
		Columns map[string]string `toml:"columns"`
	}{cols}); err != nil {
		return "", fmt.Errorf("encoding column mapping: %w", err)
	}
	return b.String(), nil
}
