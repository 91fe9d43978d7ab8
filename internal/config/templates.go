package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/charmbracelet/log"
)

//go:embed templates/orgtree.toml.tmpl
var templateFS embed.FS

const starterTemplate = "templates/orgtree.toml.tmpl"

// ErrConfigExists is returned by WriteStarter when orgtree.toml is already
// present and force is not set.
var ErrConfigExists = errors.New("config file already exists")

// ColumnEntry is one [columns] line of the starter file.
type ColumnEntry struct {
	Key    string
	Header string
}

type starterData struct {
	*Config
	ColumnEntries []ColumnEntry
}

// RenderStarter renders cfg as a commented orgtree.toml.
func RenderStarter(cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = NewDefaults()
	}

	content, err := templateFS.ReadFile(starterTemplate)
	if err != nil {
		return nil, fmt.Errorf("reading embedded template: %w", err)
	}

	tmpl, err := template.New("orgtree.toml").
		Funcs(template.FuncMap{"quote": strconv.Quote}).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing starter template: %w", err)
	}

	data := starterData{Config: cfg}
	for _, key := range ColumnKeys {
		data.ColumnEntries = append(data.ColumnEntries, ColumnEntry{Key: key, Header: cfg.Columns.Get(key)})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing starter template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteStarter writes a starter orgtree.toml into dir and returns its path.
// An existing file is kept unless force is set.
func WriteStarter(dir string, cfg *Config, force bool) (string, error) {
	dest := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(dest); err == nil {
		if !force {
			return "", fmt.Errorf("writing %s: %w", dest, ErrConfigExists)
		}
		log.Debug("overwriting existing config", "path", dest)
	}

	out, err := RenderStarter(cfg)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}
