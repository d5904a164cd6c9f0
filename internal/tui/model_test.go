package tui

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jd-assistant/internal/backend/backendtest"
	"github.com/jonathan/jd-assistant/internal/jdinput"
	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/session"
	"github.com/jonathan/jd-assistant/internal/store"
	"github.com/jonathan/jd-assistant/internal/types"
)

type recordingClipboard struct{ text []string }

func (c *recordingClipboard) WriteText(text string) error {
	c.text = append(c.text, text)
	return nil
}

func newTestModel(t *testing.T) (Model, *backendtest.Server, *recordingClipboard) {
	t.Helper()
	srv := backendtest.NewServer()
	t.Cleanup(srv.Close)
	srv.Reply("POST /analyze-jd", backendtest.Reply{Status: http.StatusOK, Body: map[string]any{
		"match_score":  55,
		"contact_mode": "dm",
		"dm_message":   "Hi, I'd love to chat about the role.",
		"warnings":     []string{"Role requires relocation"},
	}})

	kv := store.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), store.KeyBackendURL, srv.URL))
	clip := &recordingClipboard{}
	s := session.New(kv, session.Options{Clipboard: clip})

	m := NewModel(context.Background(), s)
	m = run(t, m, m.Init())
	require.False(t, m.activating)
	return m, srv, clip
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// run executes cmd synchronously and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			key = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		m, _ = update(t, m, key)
	}
	return m
}

func TestModel_TypeSubmitCopyClear(t *testing.T) {
	m, srv, clip := newTestModel(t)

	m = typeText(t, m, "Senior Go")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "Senior G", m.session.View().Input.Text)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.submitting)

	// A second ctrl+s while the first is pending issues nothing.
	_, again := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, again)

	m = run(t, m, cmd)
	assert.False(t, m.submitting)
	assert.Equal(t, 1, srv.Count("POST /analyze-jd"))

	v := m.session.View()
	require.Equal(t, results.ModeResult, v.Mode)
	assert.Equal(t, results.BandCaution, v.Result.Band)
	out := m.View()
	assert.Contains(t, out, "Match 55%")
	assert.Contains(t, out, "Role requires relocation")
	assert.Contains(t, out, "1-1 copy")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	require.NotNil(t, cmd)
	m, tick := update(t, m, cmd())
	assert.NotNil(t, tick, "successful copy schedules the feedback redraw")
	assert.Equal(t, []string{"Hi, I'd love to chat about the role."}, clip.text)
	assert.True(t, m.session.View().Copied[results.ControlDMMessage])

	// Out-of-range digits do nothing.
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	assert.Nil(t, cmd)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, results.ModeInput, m.session.View().Mode)
	assert.Contains(t, m.View(), "Analyze")
}

func TestModel_TabSwitchesModeAndSelectsImage(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = typeText(t, m, "draft")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	v := m.session.View()
	assert.Equal(t, types.InputImage, v.Input.Mode)
	assert.Empty(t, v.Input.Text)

	path := filepath.Join(t.TempDir(), "jd.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))

	m = typeText(t, m, path)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	v = m.session.View()
	assert.True(t, v.Input.HasImage)
	assert.Equal(t, "jd.png", v.Input.ImageName)
	assert.Empty(t, m.pathInput)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.False(t, m.session.View().Input.HasImage)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(path), Paste: true})
	v = m.session.View()
	assert.True(t, v.Input.HasImage)
	assert.Equal(t, jdinput.PastedImageName, v.Input.ImageName)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.session.View().Input.HasImage)
}

func TestModel_UploadPrompt(t *testing.T) {
	m, srv, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, promptResume, m.prompt)
	assert.Contains(t, m.View(), "Resume PDF path")

	m = typeText(t, m, "/tmp/resume.exe")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.uploading)
	assert.Equal(t, promptNone, m.prompt)

	m = run(t, m, cmd)
	assert.False(t, m.uploading)
	assert.NotEmpty(t, m.notice, "missing file is reported")
	assert.Zero(t, srv.Count("POST /resume/upload"))
}

func TestModel_EmptySubmitShowsValidation(t *testing.T) {
	m, srv, _ := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = run(t, m, cmd)

	assert.Equal(t, jdinput.MsgEmptyText, m.session.View().Input.Status.Text)
	assert.Contains(t, m.View(), jdinput.MsgEmptyText)
	assert.Zero(t, srv.Count("POST /analyze-jd"))
}

func TestFeedbackExpiry(t *testing.T) {
	cmd := expireFeedback()
	require.NotNil(t, cmd)

	start := time.Now()
	msg := cmd()
	assert.IsType(t, feedbackExpiredMsg{}, msg)
	assert.GreaterOrEqual(t, time.Since(start), results.CopyFeedbackDuration)
}

func TestVisibleControls(t *testing.T) {
	both := results.Build(&types.AnalysisResult{Contact: types.NewContact(types.ContactBoth, nil, nil)})
	assert.Len(t, visibleControls(both), 4)
	assert.Empty(t, visibleControls(results.View{}))
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Hello there", want: "Hello there"},
		{name: "emphasis", in: "*urgent* role", want: `\*urgent\* role`},
		{name: "heading", in: "# Team", want: `\# Team`},
		{name: "numbered line", in: "1. Go", want: `1\. Go`},
		{name: "indented", in: "    code", want: "code"},
		{name: "line breaks kept", in: "Hi,\nThanks", want: "Hi,  \nThanks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeMarkdown(tt.in))
		})
	}
}

func TestResultMarkdown_BackendTextIsEscaped(t *testing.T) {
	view := results.Build(&types.AnalysisResult{
		MatchScore:    60,
		MissingSkills: []string{"C++"},
		Warnings:      []string{"_Remote_ only"},
		Contact: types.NewContact(types.ContactEmail,
			&types.EmailDraft{To: "hr@x.com", Subject: "Re: #42", Body: "**Hi** team"}, nil),
	})

	md := resultMarkdown(view, nil)
	assert.Contains(t, md, `C\+\+`)
	assert.Contains(t, md, `\_Remote\_ only`)
	assert.Contains(t, md, `Re: \#42`)
	assert.Contains(t, md, `\*\*Hi\*\* team`)

	r, err := glamour.NewTermRenderer(glamour.WithStylePath("notty"), glamour.WithWordWrap(80))
	require.NoError(t, err)
	out, err := r.Render(md)
	require.NoError(t, err)
	assert.Contains(t, out, "**Hi** team")
	assert.Contains(t, out, "Re: #42")
}

func TestModel_ResizeRebuildsRenderer(t *testing.T) {
	m, _, _ := newTestModel(t)
	initial := m.markdown
	require.NotNil(t, initial)

	resized, _ := update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.NotSame(t, initial, resized.markdown)

	again, _ := update(t, resized, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Same(t, resized.markdown, again.markdown)
}
