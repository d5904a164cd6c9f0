package types

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// ResumeStatus is the backend's record of the stored résumé.
// Filename and UpdatedAt are set only when Exists is true.
type ResumeStatus struct {
	Exists    bool
	Filename  string
	UpdatedAt *time.Time
}

type resumeStatusWire struct {
	Exists    bool    `json:"exists"`
	Filename  *string `json:"filename,omitempty"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

// isoLayouts are tried in order. The backend emits naive timestamps for UTC values.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an RFC 3339 or naive ISO-8601 timestamp. Naive values are UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// UnmarshalJSON decodes the status payload and enforces the exists invariant.
// An unparseable updated_at leaves UpdatedAt nil; the résumé is still reported
// as stored.
func (s *ResumeStatus) UnmarshalJSON(data []byte) error {
	var w resumeStatusWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*s = ResumeStatus{Exists: w.Exists}
	if !w.Exists {
		return nil
	}
	if w.Filename != nil {
		s.Filename = *w.Filename
	}
	if w.UpdatedAt != nil && *w.UpdatedAt != "" {
		t, err := ParseTimestamp(*w.UpdatedAt)
		if err != nil {
			slog.Debug("ignoring resume timestamp", "updated_at", *w.UpdatedAt, "error", err)
			return nil
		}
		s.UpdatedAt = &t
	}
	return nil
}

// MarshalJSON writes the wire shape.
func (s ResumeStatus) MarshalJSON() ([]byte, error) {
	w := resumeStatusWire{Exists: s.Exists}
	if s.Exists {
		name := s.Filename
		w.Filename = &name
		if s.UpdatedAt != nil {
			ts := s.UpdatedAt.UTC().Format(time.RFC3339)
			w.UpdatedAt = &ts
		}
	}
	return json.Marshal(w)
}
