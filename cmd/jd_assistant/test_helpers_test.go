package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/jd-assistant/internal/backend/backendtest"
)

const (
	routeAnalyze = "POST /analyze-jd"
	routeUpload  = "POST /resume/upload"
	routeStatus  = "GET /resume/status"
)

type fakeClipboard struct {
	texts []string
}

func (c *fakeClipboard) WriteText(text string) error {
	c.texts = append(c.texts, text)
	return nil
}

// cliHarness runs the CLI in-process against a fake backend and a private
// state file.
type cliHarness struct {
	srv       *backendtest.Server
	storePath string
	clip      *fakeClipboard
	stdin     io.Reader
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	srv := backendtest.NewServer()
	t.Cleanup(srv.Close)

	h := &cliHarness{
		srv:       srv,
		storePath: filepath.Join(t.TempDir(), "state.json"),
		clip:      &fakeClipboard{},
		stdin:     strings.NewReader(""),
	}
	_, err := h.run("config", "set", srv.URL)
	require.NoError(t, err)
	return h
}

// run executes one CLI invocation and returns its stdout.
func (h *cliHarness) run(args ...string) (string, error) {
	cmd := newRootCmd(&app{clipboard: h.clip})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(h.stdin)
	cmd.SetArgs(append([]string{"--store", h.storePath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// writeFile creates name in a temp dir and returns its path.
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
