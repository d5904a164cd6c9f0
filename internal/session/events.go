package session

import (
	"github.com/jonathan/jd-assistant/internal/jdinput"
	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/resume"
	"github.com/jonathan/jd-assistant/internal/types"
)

// Event is a user or lifecycle action dispatched into a Session.
type Event interface {
	eventName() string
}

// Activate opens the session: the résumé status is queried and the cached
// result, if any, is shown.
type Activate struct{}

// SwitchInputMode changes the active input tab.
type SwitchInputMode struct {
	Mode types.InputMode
}

// SetText replaces the job-description text.
type SetText struct {
	Text string
}

// SelectImage records an image chosen from disk.
type SelectImage struct {
	Image *types.ImageInput
}

// Paste delivers clipboard items.
type Paste struct {
	Items []jdinput.ClipboardItem
}

// ClearImage discards the pending image.
type ClearImage struct{}

// SubmitAnalysis sends the collected input for analysis.
type SubmitAnalysis struct{}

// UploadResume uploads or replaces the stored résumé.
type UploadResume struct {
	File *resume.File
}

// ToggleResumeDetails expands or collapses the résumé details.
type ToggleResumeDetails struct{}

// ClearResults drops the cached result and returns to input mode.
type ClearResults struct{}

// Copy copies the text of a result control to the clipboard.
type Copy struct {
	Control string
}

// SetBackendURL persists a new backend base address.
type SetBackendURL struct {
	URL string
}

func (Activate) eventName() string            { return "activate" }
func (SwitchInputMode) eventName() string     { return "switch_input_mode" }
func (SetText) eventName() string             { return "set_text" }
func (SelectImage) eventName() string         { return "select_image" }
func (Paste) eventName() string               { return "paste" }
func (ClearImage) eventName() string          { return "clear_image" }
func (SubmitAnalysis) eventName() string      { return "submit_analysis" }
func (UploadResume) eventName() string        { return "upload_resume" }
func (ToggleResumeDetails) eventName() string { return "toggle_resume_details" }
func (ClearResults) eventName() string        { return "clear_results" }
func (Copy) eventName() string                { return "copy" }
func (SetBackendURL) eventName() string       { return "set_backend_url" }

// Outcome carries the event-specific result of a dispatch.
type Outcome struct {
	// Handled is set when a paste was consumed and its default action must be suppressed.
	Handled bool
	// Copy is the outcome of a Copy event.
	Copy results.CopyOutcome
	// Filename is the stored name after a successful upload.
	Filename string
	// Result is the analysis produced by a successful submit.
	Result *types.AnalysisResult
}
