package types

// InputMode selects how the job description is supplied.
type InputMode string

const (
	// InputText supplies the job description as free text.
	InputText InputMode = "text"
	// InputImage supplies the job description as an image.
	InputImage InputMode = "image"
)

// ImageInput is an in-memory image with its declared media type.
type ImageInput struct {
	Filename  string
	MediaType string
	Data      []byte
}

// JDPayload is the unambiguous analysis request body: exactly one of Text or
// Image is meaningful, selected by Kind.
type JDPayload struct {
	Kind  InputMode
	Text  string
	Image *ImageInput
}
