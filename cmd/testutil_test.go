package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag back to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// isolate keeps config discovery away from the developer's own files.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Chdir(home)
	return t.TempDir()
}

// run executes the root command with the given data dir and captures stdout.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--data-dir", dataDir))
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRunJSON[T any](t *testing.T, dataDir string, args ...string) T {
	t.Helper()
	out, err := run(t, dataDir, append(args, "--json")...)
	require.NoError(t, err, out)

	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}
