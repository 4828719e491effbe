package cli

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the command tree with the given args and returns
// everything written to stdout.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	cmd := NewRootCommand()
	cmd.SetArgs(args)
	execErr := cmd.Execute()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, execErr)
	return string(out)
}

func TestEstimateCommand_TaskSetsMultiplier(t *testing.T) {
	out := runCommand(t, "estimate",
		"--model", "gpt-4o", "--input-tokens", "100", "--output-tokens", "300",
		"--task", "image_generation")

	assert.Contains(t, out, "x3.0 energy")
	assert.Contains(t, out, "1.263 Wh")
}

func TestEstimateCommand_ExplicitMultiplierWins(t *testing.T) {
	// --multiplier overrides --task; the summary reports the multiplier
	// actually applied.
	out := runCommand(t, "estimate",
		"--model", "gpt-4o", "--input-tokens", "100", "--output-tokens", "300",
		"--task", "image_generation", "--multiplier", "1")

	assert.Contains(t, out, "x1.0 energy")
	assert.Contains(t, out, "0.421 Wh")
	assert.NotContains(t, out, "image_generation")
}
