package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/calc-sim/fxpad/internal/keys"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String(), runErr
}

func TestRootHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "send", "keys", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestKeysTableOutput(t *testing.T) {
	keysFormat = "table"
	out, err := captureStdout(t, func() error { return runKeys(keysCmd, nil) })
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "KEY_PLUS")
	assert.Contains(t, out, "KEY_OPTN")
	// One header line plus one line per key.
	assert.Equal(t, keys.Count()+1, strings.Count(strings.TrimRight(out, "\n"), "\n")+1)
}

func TestKeysJSONOutput(t *testing.T) {
	keysFormat = "json"
	out, err := captureStdout(t, func() error { return runKeys(keysCmd, nil) })
	require.NoError(t, err)

	var entries []keys.Info
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, keys.Count())
	assert.Equal(t, "KEY0", entries[0].Name)
}

func TestKeysYAMLOutput(t *testing.T) {
	keysFormat = "yaml"
	out, err := captureStdout(t, func() error { return runKeys(keysCmd, nil) })
	require.NoError(t, err)

	var entries []keys.Info
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, keys.Count())
	assert.Equal(t, "KEY_PLUS", entries[10].Name)
	assert.Equal(t, keys.KeyPlus, entries[10].Code)
}

func TestKeysUnsupportedFormat(t *testing.T) {
	keysFormat = "csv"
	_, err := captureStdout(t, func() error { return runKeys(keysCmd, nil) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestVersionShortOutput(t *testing.T) {
	versionFormat = "text"
	versionShort = true
	out, err := captureStdout(t, func() error { return runVersionCommand(versionCmd, nil) })
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}
