package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/jonathan/jd-assistant/internal/schemas"
	"github.com/jonathan/jd-assistant/internal/types"
)

// Multipart fields of the analysis request. Exactly one is sent.
const (
	FieldJDText  = "jd_text"
	FieldJDImage = "jd_image"
)

// Analyze submits a job description and returns the decoded analysis.
func (c *Client) Analyze(ctx context.Context, payload types.JDPayload) (*types.AnalysisResult, error) {
	const op = "analyze"

	form := newFormBuilder()
	switch payload.Kind {
	case types.InputText:
		if err := form.field(FieldJDText, payload.Text); err != nil {
			return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
		}
	case types.InputImage:
		if payload.Image == nil {
			return nil, fmt.Errorf("%s: image payload without image", op)
		}
		err := form.file(FieldJDImage, File{
			Name:      payload.Image.Filename,
			MediaType: payload.Image.MediaType,
			Content:   bytes.NewReader(payload.Image.Data),
		})
		if err != nil {
			return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
		}
	default:
		return nil, fmt.Errorf("%s: unknown payload kind %q", op, payload.Kind)
	}

	body, contentType, err := form.finish()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
	}

	resp, err := c.do(ctx, op, http.MethodPost, PathAnalyze, body, contentType)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, apiError(op, resp)
	}

	if err := schemas.ValidateAnalysisResult(resp.Body); err != nil {
		return nil, &ProtocolError{Op: op, Message: "unexpected response", Cause: err}
	}

	var result types.AnalysisResult
	if err := decodeJSON(op, resp.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
