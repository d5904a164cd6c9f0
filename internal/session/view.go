package session

import (
	"time"

	"github.com/jonathan/jd-assistant/internal/analysis"
	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/types"
)

// Button labels of the analyze control.
const (
	LabelAnalyze   = "Analyze"
	LabelAnalyzing = "Analyzing..."
)

// TimestampLayout formats résumé timestamps, e.g. "Jan 2, 2006, 03:04 PM".
const TimestampLayout = "Jan 2, 2006, 03:04 PM"

// ResumeView is the résumé section.
type ResumeView struct {
	// Uploaded selects the "uploaded" state over the "upload" state.
	Uploaded bool
	Expanded bool
	// Collapsed summary row.
	SummaryFilename string
	SummaryUpdated  string
	// Expanded details.
	Filename  string
	UpdatedAt string
	Uploading bool
	Status    types.StatusMessage
}

// InputView is the job-description input section.
type InputView struct {
	Mode         types.InputMode
	Text         string
	ImageName    string
	HasImage     bool
	Disabled     bool
	AnalyzeLabel string
	Status       types.StatusMessage
}

// View is a snapshot of everything a surface needs to draw.
type View struct {
	Mode   results.UIMode
	Resume ResumeView
	Input  InputView
	Result results.View
	// Copied lists the controls currently showing copy confirmation.
	Copied map[string]bool
}

// View projects the current state without changing it.
func (s *Session) View() View {
	busy := s.orchestrator.State() == analysis.StateSubmitting

	s.mu.Lock()
	input := InputView{
		Mode:         s.input.Mode(),
		Text:         s.input.Text(),
		Disabled:     busy,
		AnalyzeLabel: LabelAnalyze,
		Status:       s.analyzeStatus,
	}
	if img := s.input.Image(); img != nil {
		input.HasImage = true
		input.ImageName = img.Filename
	}
	resumeStatus := s.resumeStatus
	uploading := s.uploading
	s.mu.Unlock()

	if busy {
		input.AnalyzeLabel = LabelAnalyzing
	}

	v := View{
		Mode:   s.renderer.Mode(),
		Resume: resumeView(s.resume.Status(), s.resume.Expanded()),
		Input:  input,
		Result: s.renderer.View(),
		Copied: make(map[string]bool),
	}
	v.Resume.Uploading = uploading
	v.Resume.Status = resumeStatus

	for _, control := range results.Controls {
		if s.copier.Confirmed(control) {
			v.Copied[control] = true
		}
	}
	return v
}

func resumeView(status types.ResumeStatus, expanded bool) ResumeView {
	rv := ResumeView{Uploaded: status.Exists, Expanded: expanded}
	if !status.Exists {
		return rv
	}
	if status.Filename != "" {
		rv.SummaryFilename = status.Filename
		rv.Filename = "File: " + status.Filename
	}
	if status.UpdatedAt != nil {
		formatted := FormatTimestamp(*status.UpdatedAt)
		rv.SummaryUpdated = formatted
		rv.UpdatedAt = "Last updated: " + formatted
	}
	return rv
}

// FormatTimestamp renders t in local time using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}
