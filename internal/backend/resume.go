package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/jd-assistant/internal/schemas"
	"github.com/jonathan/jd-assistant/internal/types"
)

// UploadResult is the backend's acknowledgement of a résumé upload.
type UploadResult struct {
	Filename  string
	Message   string
	UpdatedAt *time.Time
}

// ResumeStatus fetches the stored résumé record.
func (c *Client) ResumeStatus(ctx context.Context) (types.ResumeStatus, error) {
	const op = "resume status"

	resp, err := c.do(ctx, op, http.MethodGet, PathResumeStatus, nil, "")
	if err != nil {
		return types.ResumeStatus{}, err
	}
	if !resp.ok() {
		return types.ResumeStatus{}, apiError(op, resp)
	}
	if err := schemas.ValidateResumeStatus(resp.Body); err != nil {
		return types.ResumeStatus{}, &ProtocolError{Op: op, Message: "unexpected response", Cause: err}
	}

	var status types.ResumeStatus
	if err := decodeJSON(op, resp.Body, &status); err != nil {
		return types.ResumeStatus{}, err
	}
	return status, nil
}

// UploadResume stores or replaces the résumé document. The file is sent in the
// "file" field.
func (c *Client) UploadResume(ctx context.Context, file File) (*UploadResult, error) {
	const op = "resume upload"

	form := newFormBuilder()
	if file.MediaType == "" {
		file.MediaType = "application/pdf"
	}
	if err := form.file("file", file); err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	body, contentType, err := form.finish()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
	}

	resp, err := c.do(ctx, op, http.MethodPost, PathResumeUpload, body, contentType)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, apiError(op, resp)
	}

	var payload struct {
		Filename  string `json:"filename"`
		Message   string `json:"message"`
		UpdatedAt string `json:"updated_at"`
	}
	if err := decodeJSON(op, resp.Body, &payload); err != nil {
		return nil, err
	}

	result := &UploadResult{Filename: payload.Filename, Message: payload.Message}
	if payload.UpdatedAt != "" {
		if ts, err := types.ParseTimestamp(payload.UpdatedAt); err == nil {
			result.UpdatedAt = &ts
		}
	}
	return result, nil
}
