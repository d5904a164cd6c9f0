// Package types defines the data exchanged with the analysis backend and the
// state shown by the client.
package types

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

// AnalysisResult is the structured outcome of a job description analysis.
type AnalysisResult struct {
	MatchScore    int
	MissingSkills []string
	Warnings      []string
	Contact       Contact
	Timestamp     time.Time
}

// analysisWire is the flat JSON shape used by the backend and the local cache.
// The backend may send match_score as a float; it is rounded to the nearest
// integer before the range check.
type analysisWire struct {
	MatchScore       float64   `json:"match_score" validate:"min=0,max=100"`
	MissingSkills    []string  `json:"missing_skills"`
	ContactMode      string    `json:"contact_mode,omitempty" validate:"omitempty,oneof=email dm both"`
	Warnings         []string  `json:"warnings"`
	DestinationEmail *string   `json:"destination_email,omitempty"`
	EmailSubject     *string   `json:"email_subject,omitempty"`
	EmailBody        *string   `json:"email_body,omitempty"`
	DMMessage        *string   `json:"dm_message,omitempty"`
	Timestamp        time.Time `json:"timestamp,omitzero"`
}

var analysisValidator = validator.New()

// MarshalJSON writes the flat wire shape. Mode-specific fields are emitted only
// for the modes that imply them.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	mode := r.Contact.Mode
	if mode == "" {
		mode = DefaultContactMode
	}
	w := analysisWire{
		MatchScore:    float64(r.MatchScore),
		MissingSkills: nonNil(r.MissingSkills),
		ContactMode:   string(mode),
		Warnings:      nonNil(r.Warnings),
		Timestamp:     r.Timestamp,
	}
	if mode.IncludesEmail() {
		email := EmailDraft{}
		if r.Contact.Email != nil {
			email = *r.Contact.Email
		}
		w.DestinationEmail = &email.To
		w.EmailSubject = &email.Subject
		w.EmailBody = &email.Body
	}
	if mode.IncludesDM() {
		dm := DMDraft{}
		if r.Contact.DM != nil {
			dm = *r.Contact.DM
		}
		w.DMMessage = &dm.Message
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the flat wire shape into the tagged Contact union.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	var w analysisWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	w.MatchScore = math.Round(w.MatchScore)
	if err := analysisValidator.Struct(&w); err != nil {
		return fmt.Errorf("invalid analysis result: %w", err)
	}
	mode, err := ParseContactMode(w.ContactMode)
	if err != nil {
		return err
	}

	email := &EmailDraft{
		To:      deref(w.DestinationEmail),
		Subject: deref(w.EmailSubject),
		Body:    deref(w.EmailBody),
	}
	dm := &DMDraft{Message: deref(w.DMMessage)}

	*r = AnalysisResult{
		MatchScore:    int(w.MatchScore),
		MissingSkills: nonNil(w.MissingSkills),
		Warnings:      nonNil(w.Warnings),
		Contact:       NewContact(mode, email, dm),
		Timestamp:     w.Timestamp,
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
