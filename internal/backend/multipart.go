package backend

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// File is a named binary part of a multipart request.
type File struct {
	Name      string
	MediaType string
	Content   io.Reader
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type formBuilder struct {
	buf bytes.Buffer
	w   *multipart.Writer
}

func newFormBuilder() *formBuilder {
	fb := &formBuilder{}
	fb.w = multipart.NewWriter(&fb.buf)
	return fb
}

func (fb *formBuilder) field(name, value string) error {
	return fb.w.WriteField(name, value)
}

// file writes a file part with an explicit media type. multipart.Writer's
// CreateFormFile always declares application/octet-stream.
func (fb *formBuilder) file(field string, f File) error {
	mediaType := f.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", mediaType)

	part, err := fb.w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f.Content); err != nil {
		return fmt.Errorf("failed to copy %s: %w", f.Name, err)
	}
	return nil
}

// finish closes the form and returns the body and its content type.
func (fb *formBuilder) finish() (io.Reader, string, error) {
	if err := fb.w.Close(); err != nil {
		return nil, "", err
	}
	return &fb.buf, fb.w.FormDataContentType(), nil
}
