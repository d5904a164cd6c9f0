package jdinput

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/jd-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for media type sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestSwitchMode_ClearsTextWhenLeavingText(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.SetText("Senior Go engineer"))

	require.NoError(t, c.SwitchMode(types.InputImage))
	assert.Empty(t, c.Text())

	require.NoError(t, c.SwitchMode(types.InputText))
	assert.Empty(t, c.Text())
}

func TestSwitchMode_ClearsImageWhenLeavingImage(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.SwitchMode(types.InputImage))
	require.True(t, c.Paste([]ClipboardItem{{MediaType: "image/png", Data: pngHeader}}))
	require.NoError(t, c.SelectImage(ImageFromBytes("shot.png", pngHeader)))
	require.NotNil(t, c.Image())

	require.NoError(t, c.SwitchMode(types.InputText))
	assert.Nil(t, c.Image())

	require.NoError(t, c.SwitchMode(types.InputImage))
	_, err := c.BuildPayload()
	assert.Error(t, err, "image data must not survive a round trip through text mode")
}

func TestPaste_FirstImageWins(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.SwitchMode(types.InputImage))

	handled := c.Paste([]ClipboardItem{
		{MediaType: "text/plain", Data: []byte("hello")},
		{MediaType: "image/jpeg", Data: []byte("jpeg-bytes")},
		{MediaType: "image/png", Data: pngHeader},
	})
	assert.True(t, handled)

	img := c.Image()
	require.NotNil(t, img)
	assert.Equal(t, PastedImageName, img.Filename)
	assert.Equal(t, "image/jpeg", img.MediaType)
	assert.Equal(t, []byte("jpeg-bytes"), img.Data)
}

func TestPaste_NoImageKeepsPrevious(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.SwitchMode(types.InputImage))
	require.True(t, c.Paste([]ClipboardItem{{MediaType: "image/png", Data: pngHeader}}))

	handled := c.Paste([]ClipboardItem{{MediaType: "text/plain", Data: []byte("x")}})
	assert.True(t, handled, "paste is suppressed in image mode even without an image")
	require.NotNil(t, c.Image())
	assert.Equal(t, "image/png", c.Image().MediaType)
}

func TestPaste_IgnoredInTextMode(t *testing.T) {
	c := NewCollector()
	handled := c.Paste([]ClipboardItem{{MediaType: "image/png", Data: pngHeader}})
	assert.False(t, handled)
	assert.Nil(t, c.Image())
}

func TestBuildPayload_Text(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.SetText("   \n\t "))

	_, err := c.BuildPayload()
	var validationErr *types.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, MsgEmptyText, validationErr.Message)

	require.NoError(t, c.SetText("  Senior Go engineer \n"))
	payload, err := c.BuildPayload()
	require.NoError(t, err)
	assert.Equal(t, types.InputText, payload.Kind)
	assert.Equal(t, "Senior Go engineer", payload.Text)
	assert.Nil(t, payload.Image)
}

func TestBuildPayload_ImagePrefersPasted(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.SwitchMode(types.InputImage))

	_, err := c.BuildPayload()
	var validationErr *types.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, MsgNoImage, validationErr.Message)

	require.NoError(t, c.SelectImage(ImageFromBytes("posting.png", pngHeader)))
	payload, err := c.BuildPayload()
	require.NoError(t, err)
	assert.Equal(t, "posting.png", payload.Image.Filename)

	c.Paste([]ClipboardItem{{MediaType: "image/png", Data: pngHeader}})
	payload, err = c.BuildPayload()
	require.NoError(t, err)
	assert.Equal(t, types.InputImage, payload.Kind)
	assert.Equal(t, PastedImageName, payload.Image.Filename)
	assert.Empty(t, payload.Text)
}

func TestSelectImage_ReplacesEarlierPaste(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.SwitchMode(types.InputImage))

	c.Paste([]ClipboardItem{{MediaType: "image/png", Data: pngHeader}})
	require.NoError(t, c.SelectImage(ImageFromBytes("posting.png", pngHeader)))

	payload, err := c.BuildPayload()
	require.NoError(t, err)
	assert.Equal(t, "posting.png", payload.Image.Filename)

	c.Paste([]ClipboardItem{{MediaType: "image/png", Data: pngHeader}})
	payload, err = c.BuildPayload()
	require.NoError(t, err)
	assert.Equal(t, PastedImageName, payload.Image.Filename)
}

func TestSetText_WrongMode(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.SwitchMode(types.InputImage))
	assert.ErrorIs(t, c.SetText("x"), ErrWrongMode)
	assert.ErrorIs(t, NewCollector().SelectImage(ImageFromBytes("a.png", pngHeader)), ErrWrongMode)
}

func TestSelectImage_RejectsNonImage(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.SwitchMode(types.InputImage))

	err := c.SelectImage(ImageFromBytes("notes.txt", []byte("just some text")))
	var validationErr *types.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, MsgNotAnImage, validationErr.Message)
}

func TestSubmittedReleasesImage(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.SwitchMode(types.InputImage))
	c.Paste([]ClipboardItem{{MediaType: "image/png", Data: pngHeader}})

	c.Submitted()
	assert.Nil(t, c.Image())
	assert.Equal(t, types.InputImage, c.Mode())
}

func TestImageFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	img, err := ImageFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "posting.png", img.Filename)
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, "image/png", ClipboardItemFromBytes(pngHeader).MediaType)
}
