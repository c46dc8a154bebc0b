package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with an isolated home and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	flagBaseURL = ""
	flagEngine = ""
	debugMode = false

	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "search")
	assert.Contains(t, names, "presets")
	assert.Contains(t, names, "open")
	assert.Contains(t, names, "config")
	assert.Contains(t, names, "version")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pagemark")
	assert.Contains(t, out, "dev")
}

func TestVersionCmd_JSON(t *testing.T) {
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
}

func TestConfigPathCmd(t *testing.T) {
	out, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "pagemark")
	assert.Contains(t, out, "config.yaml")
}

func TestConfigShowCmd(t *testing.T) {
	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "base_url")
	assert.Contains(t, out, "per_page")
}

func TestPresetsCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jsonl_index", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"files": []string{"manualA.jsonl", "manualB.jsonl"},
		})
	}))
	defer srv.Close()

	out, err := execute(t, "presets", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "manualA")
	assert.Contains(t, out, "--preset manualB.jsonl")
}
