// Command gen-completions writes orgtree shell completion scripts for bash,
// zsh, fish and powershell into an output directory so release archives can
// ship them.
//
// Usage:
//
//	go run ./scripts/gen-completions [output-dir]
//
// The default output directory is "completions".
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AbdelazizMoustafa10m/orgtree/internal/cli"
)

func main() {
	outDir := "completions"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := run(outDir); err != nil {
		fmt.Fprintln(os.Stderr, "gen-completions:", err)
		os.Exit(1)
	}
	fmt.Printf("All completions written to %s/\n", outDir)
}

func run(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %q: %w", outDir, err)
	}

	root := cli.NewRootCmd()
	targets := []struct {
		name string
		gen  func(w io.Writer) error
	}{
		{"orgtree.bash", func(w io.Writer) error { return root.GenBashCompletionV2(w, true) }},
		{"_orgtree", root.GenZshCompletion},
		{"orgtree.fish", func(w io.Writer) error { return root.GenFishCompletion(w, true) }},
		{"orgtree.ps1", root.GenPowerShellCompletionWithDesc},
	}

	for _, t := range targets {
		path := filepath.Join(outDir, t.name)
		if err := writeFile(path, t.gen); err != nil {
			return err
		}
		fmt.Printf("Generated %s\n", path)
	}
	return nil
}

func writeFile(path string, gen func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	if err := gen(f); err != nil {
		f.Close()
		return fmt.Errorf("generating %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path, err)
	}
	return nil
}
