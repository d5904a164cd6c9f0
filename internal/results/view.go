package results

import (
	"fmt"
	"sync"

	"github.com/jonathan/jd-assistant/internal/types"
)

// UIMode is the top-level view.
type UIMode string

const (
	ModeInput  UIMode = "input"
	ModeResult UIMode = "result"
)

// ScoreBand is the severity band of a match score.
type ScoreBand string

const (
	BandNone     ScoreBand = ""
	BandPositive ScoreBand = "positive"
	BandCaution  ScoreBand = "caution"
	BandNegative ScoreBand = "negative"
)

// Band thresholds: scores at or above PositiveThreshold are positive, at or
// above CautionThreshold are caution, everything else negative.
const (
	PositiveThreshold = 70
	CautionThreshold  = 50
)

// NoneLabel is shown when no skills are missing.
const NoneLabel = "None"

// BandFor classifies a match score.
func BandFor(score int) ScoreBand {
	switch {
	case score >= PositiveThreshold:
		return BandPositive
	case score >= CautionThreshold:
		return BandCaution
	default:
		return BandNegative
	}
}

// EmailPanel holds the email fields of a contact panel.
type EmailPanel struct {
	DestinationEmail string
	Subject          string
	Body             string
}

// ContactPanel is one of the three mutually exclusive contact panels.
type ContactPanel struct {
	Visible bool
	Email   EmailPanel
	DM      string
}

// View is the rendered result. The zero value is the cleared view.
type View struct {
	MatchScore      string
	Band            ScoreBand
	MissingSkills   []string
	Warnings        []string
	WarningsVisible bool
	EmailOnly       ContactPanel
	DMOnly          ContactPanel
	Both            ContactPanel
}

// Build projects result into a View.
func Build(result *types.AnalysisResult) View {
	v := View{
		MatchScore: fmt.Sprintf("%d%%", result.MatchScore),
		Band:       BandFor(result.MatchScore),
	}

	if len(result.Warnings) > 0 {
		v.WarningsVisible = true
		v.Warnings = append([]string(nil), result.Warnings...)
	}

	if len(result.MissingSkills) > 0 {
		v.MissingSkills = append([]string(nil), result.MissingSkills...)
	} else {
		v.MissingSkills = []string{NoneLabel}
	}

	email := EmailPanel{}
	if result.Contact.Email != nil {
		email = EmailPanel{
			DestinationEmail: result.Contact.Email.To,
			Subject:          result.Contact.Email.Subject,
			Body:             result.Contact.Email.Body,
		}
	}
	dm := ""
	if result.Contact.DM != nil {
		dm = result.Contact.DM.Message
	}

	switch result.Contact.Mode {
	case types.ContactDM:
		v.DMOnly = ContactPanel{Visible: true, DM: dm}
	case types.ContactBoth:
		v.Both = ContactPanel{Visible: true, Email: email, DM: dm}
	default:
		v.EmailOnly = ContactPanel{Visible: true, Email: email}
	}
	return v
}

// Renderer holds the current UI mode and rendered result.
type Renderer struct {
	mu   sync.RWMutex
	mode UIMode
	view View
}

// NewRenderer starts in input mode with an empty view.
func NewRenderer() *Renderer {
	return &Renderer{mode: ModeInput}
}

// Render shows result in result mode.
func (r *Renderer) Render(result *types.AnalysisResult) {
	v := Build(result)
	r.mu.Lock()
	r.mode = ModeResult
	r.view = v
	r.mu.Unlock()
}

// Hide discards any rendered result without leaving the current mode.
func (r *Renderer) Hide() {
	r.mu.Lock()
	r.view = View{}
	r.mu.Unlock()
}

// Clear resets every field and returns to input mode.
func (r *Renderer) Clear() {
	r.mu.Lock()
	r.mode = ModeInput
	r.view = View{}
	r.mu.Unlock()
}

// Mode returns the current UI mode.
func (r *Renderer) Mode() UIMode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// View returns the rendered result.
func (r *Renderer) View() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view
}

// FieldText returns the text shown by a copyable control, and false for
// unknown controls.
func (v View) FieldText(control string) (string, bool) {
	switch control {
	case ControlDestinationEmail:
		return v.EmailOnly.Email.DestinationEmail, true
	case ControlEmailSubject:
		return v.EmailOnly.Email.Subject, true
	case ControlEmailBody:
		return v.EmailOnly.Email.Body, true
	case ControlDMMessage:
		return v.DMOnly.DM, true
	case ControlDestinationEmailBoth:
		return v.Both.Email.DestinationEmail, true
	case ControlEmailSubjectBoth:
		return v.Both.Email.Subject, true
	case ControlEmailBodyBoth:
		return v.Both.Email.Body, true
	case ControlDMMessageBoth:
		return v.Both.DM, true
	default:
		return "", false
	}
}
