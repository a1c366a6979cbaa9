// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/server"
	"github.com/pdiddy/cite-catalog/internal/store"
	"github.com/pdiddy/cite-catalog/internal/viewmodel"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	c, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultBaseURL, c.Client.BaseURL)
	assert.Equal(t, types.DefaultTimeout, c.Client.Timeout)
	assert.Equal(t, types.DefaultNotificationTTL, c.UI.NotificationTTL)
	assert.Equal(t, types.DefaultDBPath, c.Server.DBPath)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cite-catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
client:
  base_url: http://catalog.example:9000
  timeout: 5s
ui:
  locale: ru
  notification_ttl: 1500ms
`), 0o644))
	t.Setenv("CITE_CATALOG_SERVER_ADDR", ":9999")

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)
	require.NoError(t, v.ReadInConfig())

	c, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "http://catalog.example:9000", c.Client.BaseURL)
	assert.Equal(t, 5*time.Second, c.Client.Timeout)
	assert.Equal(t, "ru", c.UI.Locale)
	assert.Equal(t, 1500*time.Millisecond, c.UI.NotificationTTL)
	assert.Equal(t, ":9999", c.Server.Addr)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, "error")
	require.NoError(t, err)
	l.Info("hidden")
	l.Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = newLogger(&buf, "loud")
	assert.Error(t, err)
}

func TestPrintList(t *testing.T) {
	loc := messages.New("en")
	lv := viewmodel.BuildList([]types.Citation{
		{ID: "7", Title: "Graphs", Journal: "Math", Year: 1736, Pages: "1-10", Keywords: "graphs, bridges"},
	}, loc, time.Now())

	var buf bytes.Buffer
	printList(&buf, lv, loc)
	out := buf.String()
	assert.Contains(t, out, "Graphs  [7]")
	assert.Contains(t, out, "Authors not specified")
	assert.Contains(t, out, "Math (1736)")
	assert.Contains(t, out, "pp. 1-10")
	assert.Contains(t, out, "#graphs #bridges")

	buf.Reset()
	printList(&buf, viewmodel.BuildList(nil, loc, time.Now()), loc)
	assert.Equal(t, "No citations found\n", buf.String())
}

func TestPrintDetail(t *testing.T) {
	loc := messages.New("en")
	d := viewmodel.BuildDetail(types.Citation{Title: "T", DOI: "10.1/x", CreatedAt: "bogus"}, loc)

	var buf bytes.Buffer
	printDetail(&buf, d, loc)
	out := buf.String()
	assert.Contains(t, out, "10.1/x <https://doi.org/10.1/x>")
	assert.Contains(t, out, "Created: Invalid Date")
}

func TestPromptConfirmer(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, promptConfirmer(strings.NewReader("y\n"), &out).Confirm("Sure?"))
	assert.Equal(t, "Sure? [y/N] ", out.String())
	assert.False(t, promptConfirmer(strings.NewReader("\n"), io.Discard).Confirm("Sure?"))
	assert.False(t, promptConfirmer(strings.NewReader(""), io.Discard).Confirm("Sure?"))
}

// TestCommandsAgainstBackend runs subcommands against the reference backend.
func TestCommandsAgainstBackend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st, err := store.Open(filepath.Join(t.TempDir(), "c.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ts := httptest.NewServer(server.New(st, server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))).Handler())
	t.Cleanup(ts.Close)

	run := func(args ...string) (string, string, error) {
		var stdout, stderr bytes.Buffer
		rootCmd.SetOut(&stdout)
		rootCmd.SetErr(&stderr)
		rootCmd.SetArgs(append([]string{"--base-url", ts.URL, "--log-level", "error"}, args...))
		err := rootCmd.Execute()
		return stdout.String(), stderr.String(), err
	}

	out, stderr, err := run("add", "--title", "Bridges of Königsberg", "--authors", "Leonhard Euler", "--year", "1736ad")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	assert.NotEmpty(t, id)
	assert.Contains(t, stderr, "Citation added")

	out, _, err = run("list", "--json")
	require.NoError(t, err)
	var listed []types.Citation
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, 1736, listed[0].Year)

	_, _, err = run("edit", id, "--journal", "Commentarii")
	require.NoError(t, err)

	out, _, err = run("show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Commentarii")
	assert.Contains(t, out, "Leonhard Euler")

	dir := t.TempDir()
	out, _, err = run("export", "--format", "bibtex", "--dir", dir)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "citations.bibtex"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "citations.bibtex"), strings.TrimSpace(out))
	assert.Contains(t, string(data), "@article{LeonhardEuler1736,")

	_, _, err = run("add", "--title", "  ")
	assert.Error(t, err)

	_, _, err = run("delete", id, "--yes")
	require.NoError(t, err)

	// Flag values persist between Execute calls on the shared command tree.
	out, _, err = run("list", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "No citations found")
}
