package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jd-assistant/internal/backend/backendtest"
	"github.com/jonathan/jd-assistant/internal/config"
	"github.com/jonathan/jd-assistant/internal/jdinput"
	"github.com/jonathan/jd-assistant/internal/resume"
)

var emailReply = backendtest.Reply{Status: http.StatusOK, Body: map[string]any{
	"match_score":       82,
	"missing_skills":    []string{"Kubernetes"},
	"contact_mode":      "email",
	"destination_email": "hr@x.com",
	"email_subject":     "Application",
	"email_body":        "Hello",
}}

// pngHeader is enough for the media type to be sniffed as PNG.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestConfig_SetAndGet(t *testing.T) {
	h := newCLIHarness(t)

	out, err := h.run("config", "get")
	require.NoError(t, err)
	assert.Equal(t, h.srv.URL+"\n", out)

	out, err = h.run("config", "set", "http://10.0.0.5:9000/")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend set to http://10.0.0.5:9000/")

	out, err = h.run("config", "get")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000/\n", out, "address is stored verbatim")
}

func TestConfig_SetFromConfigFile(t *testing.T) {
	h := newCLIHarness(t)
	data, err := json.Marshal(config.Config{BackendURL: "http://backend.internal:8000"})
	require.NoError(t, err)
	cfgPath := writeFile(t, "config.json", data)

	_, err = h.run("--config", cfgPath, "config", "set")
	require.NoError(t, err)

	out, err := h.run("config", "get")
	require.NoError(t, err)
	assert.Equal(t, "http://backend.internal:8000\n", out)
}

func TestConfig_SetWithoutURL(t *testing.T) {
	h := newCLIHarness(t)
	_, err := h.run("config", "set")
	assert.Error(t, err)
}

func TestConfig_InvalidConfigFile(t *testing.T) {
	h := newCLIHarness(t)
	cfgPath := writeFile(t, "config.json", []byte(`{"log_level": "loud"}`))

	_, err := h.run("--config", cfgPath, "config", "get")
	assert.ErrorContains(t, err, "config error")
}

func TestPing(t *testing.T) {
	h := newCLIHarness(t)
	out, err := h.run("ping")
	require.NoError(t, err)
	assert.Equal(t, "Backend "+h.srv.URL+": ok\n", out)
}

func TestAnalyze_TextThenShowAndClear(t *testing.T) {
	h := newCLIHarness(t)
	h.srv.Reply(routeAnalyze, emailReply)

	out, err := h.run("analyze", "--text", "Senior Go engineer")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Analysis complete")
	assert.Contains(t, out, "82% (strong match)")
	assert.Contains(t, out, "Kubernetes")
	assert.Contains(t, out, "hr@x.com")

	reqs := h.srv.Requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, "Senior Go engineer", reqs[len(reqs)-1].Fields["jd_text"])

	out, err = h.run("show")
	require.NoError(t, err)
	assert.Contains(t, out, "82% (strong match)")
	assert.Equal(t, 1, h.srv.Count(routeAnalyze), "show uses the cache")

	out, err = h.run("clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	out, err = h.run("show")
	require.NoError(t, err)
	assert.Equal(t, MsgNoCachedAnalysis+"\n", out)
}

func TestAnalyze_TextFile(t *testing.T) {
	h := newCLIHarness(t)
	path := writeFile(t, "job.txt", []byte("Platform engineer\n"))

	_, err := h.run("analyze", "--text-file", path)
	require.NoError(t, err)

	reqs := h.srv.Requests()
	assert.Equal(t, "Platform engineer", reqs[len(reqs)-1].Fields["jd_text"])
}

func TestAnalyze_RequiresExactlyOneInput(t *testing.T) {
	h := newCLIHarness(t)

	_, err := h.run("analyze")
	assert.Error(t, err)

	_, err = h.run("analyze", "--text", "a", "--url", "https://example.com/job")
	assert.Error(t, err)

	assert.Zero(t, h.srv.Count(routeAnalyze))
}

func TestAnalyze_EmptyTextMakesNoCall(t *testing.T) {
	h := newCLIHarness(t)

	_, err := h.run("analyze", "--text", "   ")
	require.Error(t, err)
	assert.Equal(t, jdinput.MsgEmptyText, err.Error())
	assert.Zero(t, h.srv.Count(routeAnalyze))
}

func TestAnalyze_BackendDetailIsTheError(t *testing.T) {
	h := newCLIHarness(t)
	h.srv.Reply(routeAnalyze, backendtest.Reply{Status: http.StatusBadRequest, Body: map[string]any{"detail": "No resume uploaded"}})

	_, err := h.run("analyze", "--text", "Senior Go engineer")
	require.Error(t, err)
	assert.Equal(t, "No resume uploaded", err.Error())

	out, err := h.run("show")
	require.NoError(t, err)
	assert.Equal(t, MsgNoCachedAnalysis+"\n", out)
}

func TestAnalyze_StdinImageIsPasted(t *testing.T) {
	h := newCLIHarness(t)
	h.stdin = bytes.NewReader(pngHeader)

	_, err := h.run("analyze", "--stdin-image")
	require.NoError(t, err)

	reqs := h.srv.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, jdinput.PastedImageName, last.Files["jd_image"].Filename)
	assert.Equal(t, "image/png", last.Files["jd_image"].ContentType)
	assert.Equal(t, pngHeader, last.Files["jd_image"].Data)
}

func TestAnalyze_ImageFile(t *testing.T) {
	h := newCLIHarness(t)
	path := writeFile(t, "jd.png", pngHeader)

	_, err := h.run("analyze", "--image", path)
	require.NoError(t, err)

	reqs := h.srv.Requests()
	assert.Equal(t, "jd.png", reqs[len(reqs)-1].Files["jd_image"].Filename)
}

func TestAnalyze_ImageFileMustBeAnImage(t *testing.T) {
	h := newCLIHarness(t)
	path := writeFile(t, "jd.txt", []byte("plain text"))

	_, err := h.run("analyze", "--image", path)
	require.Error(t, err)
	assert.Equal(t, jdinput.MsgNotAnImage, err.Error())
	assert.Zero(t, h.srv.Count(routeAnalyze))
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	h := newCLIHarness(t)
	path := writeFile(t, "resume.docx", []byte("not a pdf"))

	_, err := h.run("upload", path)
	require.Error(t, err)
	assert.Equal(t, resume.MsgNotPDF, err.Error())
	assert.Zero(t, h.srv.Count(routeUpload))
}

func TestUpload_ReportsStoredName(t *testing.T) {
	h := newCLIHarness(t)
	h.srv.Reply(routeUpload, backendtest.Reply{Status: http.StatusOK, Body: map[string]any{"filename": "cv.pdf"}})
	h.srv.Reply(routeStatus, backendtest.Reply{Status: http.StatusOK, Body: map[string]any{
		"exists": true, "filename": "cv.pdf", "updated_at": "2026-01-02T15:04:05Z",
	}})
	path := writeFile(t, "cv.pdf", []byte("%PDF-1.4 test"))

	out, err := h.run("replace", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Resume uploaded: cv.pdf")
	assert.Equal(t, 1, h.srv.Count(routeUpload))
}

func TestStatus_NoResume(t *testing.T) {
	h := newCLIHarness(t)

	out, err := h.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "No resume uploaded.")
	assert.Equal(t, 1, h.srv.Count(routeStatus))
}

func TestCopy(t *testing.T) {
	h := newCLIHarness(t)

	_, err := h.run("copy", "destinationEmail")
	assert.EqualError(t, err, MsgNoCachedAnalysis)

	h.srv.Reply(routeAnalyze, emailReply)
	_, err = h.run("analyze", "--text", "Senior Go engineer")
	require.NoError(t, err)

	out, err := h.run("copy", "destinationEmail")
	require.NoError(t, err)
	assert.Equal(t, "Copied destinationEmail.\n", out)
	assert.Equal(t, []string{"hr@x.com"}, h.clip.texts)

	_, err = h.run("copy", "notAControl")
	assert.Error(t, err)
}

func TestInspect_RejectsNonPDF(t *testing.T) {
	h := newCLIHarness(t)
	path := writeFile(t, "resume.txt", []byte("text"))

	_, err := h.run("inspect", path)
	require.Error(t, err)
	assert.Equal(t, resume.MsgNotPDF, err.Error())
}
