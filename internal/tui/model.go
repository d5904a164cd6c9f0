// Package tui is the interactive popup: a bubbletea program that feeds key
// presses into a session and draws its View.
package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jonathan/jd-assistant/internal/analysis"
	"github.com/jonathan/jd-assistant/internal/jdinput"
	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/resume"
	"github.com/jonathan/jd-assistant/internal/session"
	"github.com/jonathan/jd-assistant/internal/types"
)

// --- Messages ---

type activatedMsg struct{ err error }

type submittedMsg struct{ err error }

type uploadedMsg struct {
	err error
	// notice is set when the file could not be read before dispatching.
	notice string
}

type copiedMsg struct {
	control string
	outcome results.CopyOutcome
}

// feedbackExpiredMsg triggers a redraw once copy confirmation has lapsed.
type feedbackExpiredMsg struct{}

// prompt is a single-line path entry shown at the bottom of the screen.
type prompt int

const (
	promptNone prompt = iota
	promptResume
)

// --- Commands ---

func activate(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		_, err := s.Dispatch(ctx, session.Activate{})
		return activatedMsg{err: err}
	}
}

func submit(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		_, err := s.Dispatch(ctx, session.SubmitAnalysis{})
		return submittedMsg{err: err}
	}
}

func upload(ctx context.Context, s *session.Session, path string) tea.Cmd {
	return func() tea.Msg {
		var file *resume.File
		if path != "" {
			f, err := resume.FileFromPath(path)
			if err != nil {
				return uploadedMsg{err: err, notice: err.Error()}
			}
			file = f
		}
		_, err := s.Dispatch(ctx, session.UploadResume{File: file})
		return uploadedMsg{err: err}
	}
}

func copyControl(ctx context.Context, s *session.Session, control string) tea.Cmd {
	return func() tea.Msg {
		out, _ := s.Dispatch(ctx, session.Copy{Control: control})
		return copiedMsg{control: control, outcome: out.Copy}
	}
}

func expireFeedback() tea.Cmd {
	return tea.Tick(results.CopyFeedbackDuration+50*time.Millisecond, func(time.Time) tea.Msg {
		return feedbackExpiredMsg{}
	})
}

// --- Model ---

// Model is the bubbletea model of the popup.
type Model struct {
	ctx     context.Context
	session *session.Session

	width  int
	height int
	// markdown renders the result panel; rebuilt when the width changes.
	markdown *glamour.TermRenderer

	activating bool
	submitting bool
	uploading  bool

	// pathInput collects an image path in image mode or a résumé path in the
	// résumé prompt.
	pathInput string
	prompt    prompt
	// notice is a transient local message not owned by the session.
	notice string
}

// NewModel creates a Model driving s.
func NewModel(ctx context.Context, s *session.Session) Model {
	return Model{ctx: ctx, session: s, activating: true, markdown: newMarkdownRenderer(defaultWidth)}
}

// newMarkdownRenderer returns nil when glamour cannot build a renderer; the
// result panel then shows the raw markdown.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return activate(m.ctx, m.session)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 && msg.Width != m.width {
			m.markdown = newMarkdownRenderer(msg.Width)
		}
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case activatedMsg:
		m.activating = false
		if msg.err != nil {
			m.notice = msg.err.Error()
		}
		return m, nil

	case submittedMsg:
		m.submitting = false
		if msg.err == nil {
			m.pathInput = ""
		}
		return m, nil

	case uploadedMsg:
		m.uploading = false
		m.notice = msg.notice
		return m, nil

	case copiedMsg:
		if msg.outcome == results.CopyDone {
			return m, expireFeedback()
		}
		return m, nil

	case feedbackExpiredMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.notice = ""

	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	view := m.session.View()
	switch msg.String() {
	case "ctrl+o":
		m.prompt = promptResume
		m.pathInput = ""
		return m, nil
	case "ctrl+d":
		_, _ = m.session.Dispatch(m.ctx, session.ToggleResumeDetails{})
		return m, nil
	}

	if view.Mode == results.ModeResult {
		return m.handleResultKey(msg, view)
	}
	return m.handleInputKey(msg, view)
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = promptNone
		m.pathInput = ""
		return m, nil
	case tea.KeyEnter:
		path := expandPath(m.pathInput)
		m.prompt = promptNone
		m.pathInput = ""
		m.uploading = true
		return m, upload(m.ctx, m.session, path)
	case tea.KeyBackspace:
		m.pathInput = dropLastRune(m.pathInput)
	case tea.KeySpace:
		m.pathInput += " "
	case tea.KeyRunes:
		m.pathInput += string(msg.Runes)
	}
	return m, nil
}

func (m Model) handleResultKey(msg tea.KeyMsg, view session.View) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r", "ctrl+r":
		if _, err := m.session.Dispatch(m.ctx, session.ClearResults{}); err != nil {
			m.notice = err.Error()
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		controls := visibleControls(view.Result)
		if idx := int(msg.Runes[0] - '1'); idx >= 0 && idx < len(controls) {
			return m, copyControl(m.ctx, m.session, controls[idx])
		}
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg, view session.View) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "ctrl+s":
		if view.Input.Disabled || m.submitting {
			return m, nil
		}
		m.submitting = true
		return m, submit(m.ctx, m.session)
	case "tab":
		next := types.InputImage
		if view.Input.Mode == types.InputImage {
			next = types.InputText
		}
		m.dispatchInput(session.SwitchInputMode{Mode: next})
		m.pathInput = ""
		return m, nil
	}

	if view.Input.Disabled {
		return m, nil
	}
	if view.Input.Mode == types.InputText {
		return m.editText(msg, view.Input.Text)
	}
	return m.editImage(msg)
}

func (m Model) editText(msg tea.KeyMsg, text string) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text += "\n"
	case tea.KeySpace:
		text += " "
	case tea.KeyBackspace:
		text = dropLastRune(text)
	case tea.KeyRunes:
		text += string(msg.Runes)
	default:
		return m, nil
	}
	m.dispatchInput(session.SetText{Text: text})
	return m, nil
}

// editImage edits the image path. Enter selects the file at the path; a
// terminal paste (for example a screenshot dragged into the terminal) is
// delivered as a clipboard paste of that file's contents.
func (m Model) editImage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		path := expandPath(m.pathInput)
		img, err := jdinput.ImageFromFile(path)
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.dispatchInput(session.SelectImage{Image: img})
		m.pathInput = ""
	case tea.KeyCtrlX:
		m.dispatchInput(session.ClearImage{})
	case tea.KeyBackspace:
		m.pathInput = dropLastRune(m.pathInput)
	case tea.KeySpace:
		m.pathInput += " "
	case tea.KeyRunes:
		if msg.Paste {
			path := expandPath(string(msg.Runes))
			data, err := os.ReadFile(path)
			if err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.dispatchInput(session.Paste{Items: []jdinput.ClipboardItem{jdinput.ClipboardItemFromBytes(data)}})
			return m, nil
		}
		m.pathInput += string(msg.Runes)
	}
	return m, nil
}

// dispatchInput applies a synchronous input event. Errors are surfaced by the
// session's status area, except the in-flight guard which only blocks input.
func (m *Model) dispatchInput(ev session.Event) {
	_, err := m.session.Dispatch(m.ctx, ev)
	var verr *types.ValidationError
	if err != nil && !errors.Is(err, analysis.ErrInFlight) && !errors.As(err, &verr) {
		m.notice = err.Error()
	}
}

// visibleControls lists the copyable controls of the visible contact panel,
// numbered from 1 in the view.
func visibleControls(v results.View) []string {
	switch {
	case v.EmailOnly.Visible:
		return []string{results.ControlDestinationEmail, results.ControlEmailSubject, results.ControlEmailBody}
	case v.DMOnly.Visible:
		return []string{results.ControlDMMessage}
	case v.Both.Visible:
		return []string{results.ControlDestinationEmailBoth, results.ControlEmailSubjectBoth, results.ControlEmailBodyBoth, results.ControlDMMessageBoth}
	default:
		return nil
	}
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// expandPath cleans up a typed or pasted path: surrounding quotes added by
// terminals are dropped and a leading ~/ is expanded.
func expandPath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), `'"`)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Run starts the popup and blocks until the user quits.
func Run(ctx context.Context, s *session.Session) error {
	p := tea.NewProgram(NewModel(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
