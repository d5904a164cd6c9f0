package backend

import (
	"context"
	"net/http"
)

// Health calls the backend liveness endpoint and returns its reported status.
func (c *Client) Health(ctx context.Context) (string, error) {
	const op = "health"

	resp, err := c.do(ctx, op, http.MethodGet, PathHealth, nil, "")
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", apiError(op, resp)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(op, resp.Body, &payload); err != nil {
		return "", err
	}
	return payload.Status, nil
}
