package types

import (
	"fmt"
	"strings"
)

// ContactMode names the outreach channel(s) recommended by an analysis.
type ContactMode string

const (
	// ContactEmail recommends an email to a destination address.
	ContactEmail ContactMode = "email"
	// ContactDM recommends a direct message.
	ContactDM ContactMode = "dm"
	// ContactBoth recommends an email and a direct message.
	ContactBoth ContactMode = "both"
)

// DefaultContactMode is used when a response carries no contact_mode.
const DefaultContactMode = ContactEmail

// ParseContactMode decodes a wire value. An empty value maps to DefaultContactMode.
func ParseContactMode(s string) (ContactMode, error) {
	switch mode := ContactMode(strings.TrimSpace(s)); mode {
	case "":
		return DefaultContactMode, nil
	case ContactEmail, ContactDM, ContactBoth:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown contact mode %q", s)
	}
}

// IncludesEmail reports whether the mode carries email fields.
func (m ContactMode) IncludesEmail() bool {
	return m == ContactEmail || m == ContactBoth
}

// IncludesDM reports whether the mode carries a direct message.
func (m ContactMode) IncludesDM() bool {
	return m == ContactDM || m == ContactBoth
}

// EmailDraft is the suggested outreach email.
type EmailDraft struct {
	To      string
	Subject string
	Body    string
}

// DMDraft is the suggested direct message.
type DMDraft struct {
	Message string
}

// Contact is the tagged union of outreach suggestions. Email is non-nil exactly
// when Mode includes email, DM exactly when Mode includes a direct message.
type Contact struct {
	Mode  ContactMode
	Email *EmailDraft
	DM    *DMDraft
}

// NewContact builds a Contact for mode, keeping only the drafts the mode implies.
// Missing drafts for the mode are replaced by empty ones.
func NewContact(mode ContactMode, email *EmailDraft, dm *DMDraft) Contact {
	c := Contact{Mode: mode}
	if mode.IncludesEmail() {
		if email == nil {
			email = &EmailDraft{}
		}
		e := *email
		c.Email = &e
	}
	if mode.IncludesDM() {
		if dm == nil {
			dm = &DMDraft{}
		}
		d := *dm
		c.DM = &d
	}
	return c
}
