package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionCmd_AllShells(t *testing.T) {
	tests := []struct {
		shell    string
		contains string
	}{
		{shell: "bash", contains: "bash"},
		{shell: "zsh", contains: "compdef"},
		{shell: "fish", contains: "complete -c orgtree"},
		{shell: "powershell", contains: "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, errOut, err := runCLI(t, "completion", tt.shell)
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
			assert.NotContains(t, errOut, tt.contains, "completion script should not go to stderr")
		})
	}
}

func TestCompletionCmd_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no shell", args: []string{"completion"}},
		{name: "unknown shell", args: []string{"completion", "tcsh"}},
		{name: "extra args", args: []string{"completion", "bash", "zsh"}},
		{name: "case sensitive", args: []string{"completion", "Bash"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestCompletionCmd_Metadata(t *testing.T) {
	assert.Equal(t, []string{"bash", "zsh", "fish", "powershell"}, completionCmd.ValidArgs)
	assert.True(t, completionCmd.DisableFlagsInUseLine)
	assert.Contains(t, completionCmd.Long, "orgtree completion bash")
	assert.Contains(t, completionCmd.Long, "_orgtree")
}
