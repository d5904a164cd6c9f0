package results

import (
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// Copyable control identifiers.
const (
	ControlDestinationEmail     = "destinationEmail"
	ControlEmailSubject         = "emailSubject"
	ControlEmailBody            = "emailBody"
	ControlDMMessage            = "dmMessage"
	ControlDestinationEmailBoth = "destinationEmailBoth"
	ControlEmailSubjectBoth     = "emailSubjectBoth"
	ControlEmailBodyBoth        = "emailBodyBoth"
	ControlDMMessageBoth        = "dmMessageBoth"
)

// Controls lists every copyable control.
var Controls = []string{
	ControlDestinationEmail, ControlEmailSubject, ControlEmailBody, ControlDMMessage,
	ControlDestinationEmailBoth, ControlEmailSubjectBoth, ControlEmailBodyBoth, ControlDMMessageBoth,
}

// CopyFeedbackDuration is how long a control shows its confirmation.
const CopyFeedbackDuration = time.Second

// Placeholder values that are never copied.
var copySentinels = map[string]bool{
	"N/A":           true,
	"Not specified": true,
}

// CopyOutcome is the result of a copy request.
type CopyOutcome string

const (
	CopySkipped CopyOutcome = "skipped"
	CopyDone    CopyOutcome = "copied"
	CopyFailed  CopyOutcome = "failed"
)

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// SystemClipboard uses the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// Copier copies control text and tracks transient per-control confirmation.
type Copier struct {
	clipboard Clipboard
	now       func() time.Time

	mu     sync.Mutex
	copied map[string]time.Time
}

// NewCopier creates a Copier. A nil clipboard uses the system clipboard.
func NewCopier(cb Clipboard, now func() time.Time) *Copier {
	if cb == nil {
		cb = SystemClipboard{}
	}
	if now == nil {
		now = time.Now
	}
	return &Copier{clipboard: cb, now: now, copied: make(map[string]time.Time)}
}

// Copy writes text for control. Empty text and placeholders are skipped.
// It never panics; failures are reported through the outcome.
func (c *Copier) Copy(control, text string) (outcome CopyOutcome) {
	text = strings.TrimSpace(text)
	if text == "" || copySentinels[text] {
		return CopySkipped
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = CopyFailed
		}
	}()
	if err := c.clipboard.WriteText(text); err != nil {
		return CopyFailed
	}

	c.mu.Lock()
	c.copied[control] = c.now().Add(CopyFeedbackDuration)
	c.mu.Unlock()
	return CopyDone
}

// Confirmed reports whether control is still showing its confirmation.
func (c *Copier) Confirmed(control string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	until, ok := c.copied[control]
	if !ok {
		return false
	}
	if !c.now().Before(until) {
		delete(c.copied, control)
		return false
	}
	return true
}
