package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/resume"
	"github.com/jonathan/jd-assistant/internal/session"
	"github.com/jonathan/jd-assistant/internal/types"
)

const (
	// boxWidth is the outer width of formatted boxes.
	boxWidth = 60
	// previewLines is how many lines of résumé text Inspect output shows.
	previewLines = 8
)

// bandLabels are shown next to the match score.
var bandLabels = map[results.ScoreBand]string{
	results.BandPositive: "strong match",
	results.BandCaution:  "partial match",
	results.BandNegative: "weak match",
}

// Printer writes session state as boxed plain text.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a box with a title. Long lines are wrapped, never cut, so
// drafts can be copied from the terminal.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(wrapped, inner))
		}
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs the résumé section: a one-line summary, or the file
// details when expanded.
func (p *Printer) PrintResume(rv session.ResumeView) {
	if !rv.Uploaded {
		p.printBox("RESUME", "No resume uploaded.\nRun `jd_assistant upload <file.pdf>` to add one.")
		return
	}
	if !rv.Expanded {
		summary := "Resume uploaded"
		if rv.SummaryFilename != "" {
			summary += ": " + rv.SummaryFilename
		}
		if rv.SummaryUpdated != "" {
			summary += " (" + rv.SummaryUpdated + ")"
		}
		p.printBox("RESUME", summary)
		return
	}
	var lines []string
	for _, line := range []string{rv.Filename, rv.UpdatedAt} {
		if line != "" {
			lines = append(lines, line)
		}
	}
	p.printBox("RESUME", strings.Join(lines, "\n"))
}

// PrintResult outputs a rendered analysis result. Only the visible contact
// panel is printed.
func (p *Printer) PrintResult(v results.View) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match score:  %s (%s)\n\n", v.MatchScore, bandLabels[v.Band]))

	sb.WriteString("Missing skills:\n")
	for _, skill := range v.MissingSkills {
		sb.WriteString(fmt.Sprintf("  • %s\n", skill))
	}

	if v.WarningsVisible {
		sb.WriteString("\nWarnings:\n")
		for _, warning := range v.Warnings {
			sb.WriteString(fmt.Sprintf("  ! %s\n", warning))
		}
	}
	p.printBox("ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))

	switch {
	case v.EmailOnly.Visible:
		p.printEmail("EMAIL", v.EmailOnly.Email, results.ControlDestinationEmail, results.ControlEmailSubject, results.ControlEmailBody)
	case v.DMOnly.Visible:
		p.printDM("DIRECT MESSAGE", v.DMOnly.DM, results.ControlDMMessage)
	case v.Both.Visible:
		p.printEmail("EMAIL", v.Both.Email, results.ControlDestinationEmailBoth, results.ControlEmailSubjectBoth, results.ControlEmailBodyBoth)
		p.printDM("DIRECT MESSAGE", v.Both.DM, results.ControlDMMessageBoth)
	}
}

func (p *Printer) printEmail(title string, e results.EmailPanel, toID, subjectID, bodyID string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("To [%s]:\n  %s\n", toID, orPlaceholder(e.DestinationEmail)))
	sb.WriteString(fmt.Sprintf("Subject [%s]:\n  %s\n", subjectID, orPlaceholder(e.Subject)))
	sb.WriteString(fmt.Sprintf("Body [%s]:\n%s", bodyID, orPlaceholder(e.Body)))
	p.printBox(title, sb.String())
}

func (p *Printer) printDM(title, message, id string) {
	p.printBox(title, fmt.Sprintf("[%s]\n%s", id, orPlaceholder(message)))
}

// PrintStatus outputs a status message on one line, prefixed by its kind.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStatus(msg types.StatusMessage) {
	if !msg.Visible() {
		return
	}
	prefix := "•"
	switch msg.Kind {
	case types.StatusSuccess:
		prefix = "✓"
	case types.StatusError:
		prefix = "✗"
	}
	fmt.Fprintf(p.out, "%s %s\n", prefix, msg.Text)
}

// PrintPreview outputs a local résumé preview.
func (p *Printer) PrintPreview(preview *resume.Preview) {
	if preview == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:   %s\n", preview.Name))
	sb.WriteString(fmt.Sprintf("Size:   %.1f KB\n", float64(preview.Size)/1024))
	sb.WriteString(fmt.Sprintf("Pages:  %d\n", preview.Pages))

	lines := strings.Split(strings.TrimSpace(preview.Text), "\n")
	if len(lines) > 0 && lines[0] != "" {
		sb.WriteString("\n")
		shown := min(len(lines), previewLines)
		sb.WriteString(strings.Join(lines[:shown], "\n"))
		if len(lines) > shown || preview.Truncated {
			sb.WriteString("\n...")
		}
	}
	p.printBox("RESUME PREVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// wrap splits line into chunks of at most width runes, breaking at spaces
// where possible.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}
	var out []string
	runes := []rune(line)
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
