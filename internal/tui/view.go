package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/session"
	"github.com/jonathan/jd-assistant/internal/types"
)

const defaultWidth = 72

var controlLabels = map[string]string{
	results.ControlDestinationEmail:     "To",
	results.ControlEmailSubject:         "Subject",
	results.ControlEmailBody:            "Body",
	results.ControlDMMessage:            "Message",
	results.ControlDestinationEmailBoth: "To",
	results.ControlEmailSubjectBoth:     "Subject",
	results.ControlEmailBodyBoth:        "Body",
	results.ControlDMMessageBoth:        "Message",
}

func (m Model) View() string {
	if m.activating {
		return "\n  Loading...\n"
	}

	v := m.session.View()
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	parts := []string{m.viewResume(v.Resume, width)}
	if v.Mode == results.ModeResult {
		parts = append(parts, m.viewResult(v))
	} else {
		parts = append(parts, titleStyle.Render("Job Assistant"), m.viewInput(v.Input, width))
	}
	if m.prompt == promptResume {
		parts = append(parts, fmt.Sprintf("Resume PDF path: %s█", m.pathInput))
	}
	if m.notice != "" {
		parts = append(parts, statusStyle(types.StatusError).Render(m.notice))
	}
	parts = append(parts, helpStyle.Render(m.help(v)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewResume(rv session.ResumeView, width int) string {
	var sb strings.Builder
	switch {
	case m.uploading:
		sb.WriteString("Uploading résumé...")
	case !rv.Uploaded:
		sb.WriteString("No résumé uploaded · ctrl+o to upload")
	case rv.Expanded:
		sb.WriteString("▲ " + rv.Filename)
		if rv.UpdatedAt != "" {
			sb.WriteString("\n  " + rv.UpdatedAt)
		}
		sb.WriteString("\n  " + mutedStyle.Render("ctrl+o to replace"))
	default:
		sb.WriteString("▼ " + rv.SummaryFilename)
		if rv.SummaryUpdated != "" {
			sb.WriteString("  " + mutedStyle.Render(rv.SummaryUpdated))
		}
	}
	if rv.Status.Visible() {
		sb.WriteString("\n" + statusStyle(rv.Status.Kind).Render(rv.Status.Text))
	}
	return sectionStyle.Width(width - 2).Render(sb.String())
}

func (m Model) viewInput(iv session.InputView, width int) string {
	textTab, imageTab := activeTabStyle, inactiveTabStyle
	if iv.Mode == types.InputImage {
		textTab, imageTab = inactiveTabStyle, activeTabStyle
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, textTab.Render("Text"), imageTab.Render("Image"))

	var body string
	if iv.Mode == types.InputText {
		body = iv.Text
		if !iv.Disabled {
			body += "█"
		}
		if strings.TrimSpace(iv.Text) == "" && !iv.Disabled {
			body = mutedStyle.Render("Paste or type the job description...") + "█"
		}
	} else {
		if iv.HasImage {
			body = "🖼  " + iv.ImageName + mutedStyle.Render("  (ctrl+x to clear)")
		} else {
			body = mutedStyle.Render("Drop or paste a screenshot, or type a path and press enter")
		}
		body += "\n" + m.pathInput
		if !iv.Disabled {
			body += "█"
		}
	}

	style := sectionStyle
	if iv.Disabled {
		style = disabledSectionStyle
	}
	button := iv.AnalyzeLabel
	if !iv.Disabled {
		button += mutedStyle.Render(" (ctrl+s)")
	}

	lines := []string{tabs, style.Width(width - 2).Render(body), button}
	if iv.Status.Visible() {
		lines = append(lines, statusStyle(iv.Status.Kind).Render(iv.Status.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewResult(v session.View) string {
	score := scoreStyle(v.Result.Band).Render("Match " + v.Result.MatchScore)

	md := resultMarkdown(v.Result, v.Copied)
	rendered := md
	if m.markdown != nil {
		if out, err := m.markdown.Render(md); err == nil {
			rendered = out
		}
	}

	lines := []string{score, rendered}
	if v.Input.Status.Visible() {
		lines = append(lines, statusStyle(v.Input.Status.Kind).Render(v.Input.Status.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// resultMarkdown lays out the result body. Copyable fields are numbered in
// the order of visibleControls.
func resultMarkdown(r results.View, copied map[string]bool) string {
	var sb strings.Builder

	if r.WarningsVisible {
		sb.WriteString("### Warnings\n\n")
		for _, w := range r.Warnings {
			sb.WriteString("- ⚠ " + escapeMarkdown(w) + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("### Missing skills\n\n")
	for _, skill := range r.MissingSkills {
		sb.WriteString("- " + escapeMarkdown(skill) + "\n")
	}
	sb.WriteString("\n")

	controls := visibleControls(r)
	if len(controls) > 0 {
		sb.WriteString("### Contact\n\n")
	}
	for i, control := range controls {
		text, _ := r.FieldText(control)
		marker := ""
		if copied[control] {
			marker = " ✓ Copied!"
		}
		fmt.Fprintf(&sb, "**[%d] %s**%s\n\n", i+1, controlLabels[control], marker)
		if strings.TrimSpace(text) == "" {
			text = "_Not specified_"
		} else {
			text = escapeMarkdown(text)
		}
		sb.WriteString(text + "\n\n")
	}
	return sb.String()
}

// escapeMarkdown makes backend text render literally: ASCII punctuation is
// backslash-escaped, leading indentation is dropped so it cannot start a code
// block, and line breaks are kept as hard breaks.
func escapeMarkdown(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		var sb strings.Builder
		for _, r := range strings.TrimLeft(line, " \t") {
			if strings.ContainsRune("\\`*_{}[]()<>#+-=.!|~", r) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "  \n")
}

func (m Model) help(v session.View) string {
	if m.prompt != promptNone {
		return "enter upload · esc cancel"
	}
	common := "ctrl+o résumé · ctrl+d details · ctrl+c quit"
	if v.Mode == results.ModeResult {
		if n := len(visibleControls(v.Result)); n > 0 {
			return fmt.Sprintf("1-%d copy · r clear · %s", n, common)
		}
		return "r clear · " + common
	}
	return "tab text/image · ctrl+s analyze · " + common
}
