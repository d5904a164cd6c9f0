package resume

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// previewLength caps the extracted text kept in a Preview.
const previewLength = 400

// Preview summarizes a local PDF before it is uploaded.
type Preview struct {
	Name      string
	Size      int64
	Pages     int
	Text      string
	Truncated bool
}

// Inspect reads the PDF at path and extracts its page count and leading text.
// It applies the same validation as Upload first.
func Inspect(path string) (*Preview, error) {
	file, err := FileFromPath(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(file); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	preview := &Preview{
		Name:  file.Name,
		Size:  file.Size,
		Pages: pdfReader.NumPage(),
	}

	text := strings.Join(strings.Fields(buf.String()), " ")
	if runes := []rune(text); len(runes) > previewLength {
		text = string(runes[:previewLength])
		preview.Truncated = true
	}
	preview.Text = text
	return preview, nil
}
