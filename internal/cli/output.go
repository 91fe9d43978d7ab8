package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/config"
	"github.com/AbdelazizMoustafa10m/orgtree/internal/tui"
)

// theme returns the terminal theme, without colors under --no-color.
func theme() tui.Theme {
	if flagNoColor {
		return tui.PlainTheme()
	}
	return tui.DefaultTheme()
}

// emit writes v in the requested output format. text renders the
// human-readable form and is only called for the text format.
func emit(w io.Writer, format string, v any, text func() string) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case config.OutputText, "":
		_, err := io.WriteString(w, text())
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
