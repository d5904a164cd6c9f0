package types

// StatusKind classifies a status message.
type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// StatusMessage is an inline message shown in one of the status areas.
// The zero value means the area is hidden.
type StatusMessage struct {
	Text string     `json:"text"`
	Kind StatusKind `json:"kind"`
}

// Visible reports whether the message should be displayed.
func (m StatusMessage) Visible() bool {
	return m.Text != ""
}

// ValidationError is a local input error detected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
