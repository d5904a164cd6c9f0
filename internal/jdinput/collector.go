// Package jdinput collects the job description to analyze. Exactly one of two
// input modes is active: free text or an image supplied by file selection or
// clipboard paste.
package jdinput

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/jd-assistant/internal/types"
)

// PastedImageName is the filename given to images taken from the clipboard.
const PastedImageName = "pasted-image.png"

// Validation messages shown to the user.
const (
	MsgEmptyText  = "Please enter job description text"
	MsgNoImage    = "Please paste an image or select an image file"
	MsgNotAnImage = "Please select an image file"
)

// ErrWrongMode is returned when an action targets the inactive input mode.
var ErrWrongMode = errors.New("input mode is not active")

// ClipboardItem is one entry of a paste event.
type ClipboardItem struct {
	MediaType string
	Data      []byte
}

// Collector owns the job-description input state. It is not safe for
// concurrent use; the session serializes access.
type Collector struct {
	mode     types.InputMode
	text     string
	pasted   *types.ImageInput
	selected *types.ImageInput
}

// NewCollector starts in text mode.
func NewCollector() *Collector {
	return &Collector{mode: types.InputText}
}

// Mode returns the active input mode.
func (c *Collector) Mode() types.InputMode {
	return c.mode
}

// Text returns the current text.
func (c *Collector) Text() string {
	return c.text
}

// Image returns the image that would be submitted, preferring a pasted one.
func (c *Collector) Image() *types.ImageInput {
	if c.pasted != nil {
		return c.pasted
	}
	return c.selected
}

// SwitchMode activates mode and clears the data of the mode being left.
func (c *Collector) SwitchMode(mode types.InputMode) error {
	switch mode {
	case types.InputText:
		c.clearImage()
	case types.InputImage:
		c.text = ""
	default:
		return fmt.Errorf("unknown input mode %q", mode)
	}
	c.mode = mode
	return nil
}

// SetText replaces the text. Only valid in text mode.
func (c *Collector) SetText(text string) error {
	if c.mode != types.InputText {
		return ErrWrongMode
	}
	c.text = text
	return nil
}

// SelectImage records an image chosen through the file picker. It replaces
// an earlier pasted image, so the latest acquisition is the one submitted.
func (c *Collector) SelectImage(img *types.ImageInput) error {
	if c.mode != types.InputImage {
		return ErrWrongMode
	}
	if img == nil || !strings.HasPrefix(img.MediaType, "image/") {
		return &types.ValidationError{Field: "jd_image", Message: MsgNotAnImage}
	}
	c.selected = img
	c.pasted = nil
	return nil
}

// Paste handles a clipboard paste. It takes the first image-typed item and
// ignores the rest. It reports whether the paste was consumed, in which case
// the default paste action must be suppressed. Pastes outside image mode are
// left alone.
func (c *Collector) Paste(items []ClipboardItem) bool {
	if c.mode != types.InputImage {
		return false
	}
	for _, item := range items {
		if strings.Contains(item.MediaType, "image") {
			c.pasted = &types.ImageInput{
				Filename:  PastedImageName,
				MediaType: item.MediaType,
				Data:      item.Data,
			}
			break
		}
	}
	return true
}

// ClearImage drops any pasted or selected image.
func (c *Collector) ClearImage() {
	c.clearImage()
}

// Submitted releases the pending image after a successful analysis.
func (c *Collector) Submitted() {
	c.clearImage()
}

func (c *Collector) clearImage() {
	c.pasted = nil
	c.selected = nil
}

// BuildPayload validates the active mode and returns the request payload.
func (c *Collector) BuildPayload() (types.JDPayload, error) {
	switch c.mode {
	case types.InputText:
		text := strings.TrimSpace(c.text)
		if text == "" {
			return types.JDPayload{}, &types.ValidationError{Field: "jd_text", Message: MsgEmptyText}
		}
		return types.JDPayload{Kind: types.InputText, Text: text}, nil
	case types.InputImage:
		img := c.Image()
		if img == nil {
			return types.JDPayload{}, &types.ValidationError{Field: "jd_image", Message: MsgNoImage}
		}
		return types.JDPayload{Kind: types.InputImage, Image: img}, nil
	default:
		return types.JDPayload{}, fmt.Errorf("unknown input mode %q", c.mode)
	}
}

// ImageFromBytes sniffs the media type of data and names it filename.
func ImageFromBytes(filename string, data []byte) *types.ImageInput {
	return &types.ImageInput{
		Filename:  filename,
		MediaType: mimetype.Detect(data).String(),
		Data:      data,
	}
}

// ImageFromFile reads an image from disk for file selection.
func ImageFromFile(path string) (*types.ImageInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return ImageFromBytes(filepath.Base(path), data), nil
}

// ClipboardItemFromBytes builds a paste item from raw data, sniffing its type.
func ClipboardItemFromBytes(data []byte) ClipboardItem {
	return ClipboardItem{MediaType: mimetype.Detect(data).String(), Data: data}
}
