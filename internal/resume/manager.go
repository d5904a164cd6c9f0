// Package resume manages the lifecycle of the single stored résumé: status
// queries, validated upload/replace and the collapsed/expanded detail toggle.
package resume

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonathan/jd-assistant/internal/backend"
	"github.com/jonathan/jd-assistant/internal/types"
)

// MaxFileSize is the largest accepted résumé (1 MiB).
const MaxFileSize = 1 << 20

// Extension is the only accepted document extension.
const Extension = ".pdf"

// Validation messages shown to the user.
const (
	MsgNoFile   = "Please select a PDF file"
	MsgNotPDF   = "File must be a PDF"
	MsgTooLarge = "Resume file size must be less than 1 MB."
	MsgFailed   = "Upload failed"
)

// Backend is the subset of the backend client used by the manager.
type Backend interface {
	ResumeStatus(ctx context.Context) (types.ResumeStatus, error)
	UploadResume(ctx context.Context, file backend.File) (*backend.UploadResult, error)
}

// File is a résumé chosen by the user. Open is only called after validation.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FileFromPath describes the file at path without reading it.
func FileFromPath(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &File{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// Validate checks the local preconditions of an upload.
func Validate(file *File) error {
	if file == nil {
		return &types.ValidationError{Field: "file", Message: MsgNoFile}
	}
	if !strings.HasSuffix(strings.ToLower(file.Name), Extension) {
		return &types.ValidationError{Field: "file", Message: MsgNotPDF}
	}
	if file.Size > MaxFileSize {
		return &types.ValidationError{Field: "file", Message: MsgTooLarge}
	}
	return nil
}

// Manager tracks the last known résumé status and the detail toggle.
type Manager struct {
	backend Backend
	logger  *slog.Logger

	mu       sync.Mutex
	status   types.ResumeStatus
	expanded bool
}

// NewManager creates a Manager using b for network calls.
func NewManager(b Backend, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{backend: b, logger: logger.With("component", "resume")}
}

// CheckStatus queries the backend. Any failure is treated as "no résumé" and
// only logged, so a backend hiccup never blocks the session.
func (m *Manager) CheckStatus(ctx context.Context) types.ResumeStatus {
	status, err := m.backend.ResumeStatus(ctx)
	if err != nil {
		m.logger.Debug("resume status unavailable, assuming none", "error", err)
		status = types.ResumeStatus{}
	}

	m.mu.Lock()
	m.status = status
	if status.Exists {
		m.expanded = false
	}
	m.mu.Unlock()
	return status
}

// Upload validates file, sends it and refreshes the status from the backend.
// Validation failures return a *types.ValidationError without any network call.
func (m *Manager) Upload(ctx context.Context, file *File) (string, error) {
	if err := Validate(file); err != nil {
		return "", err
	}

	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer func() { _ = rc.Close() }()

	result, err := m.backend.UploadResume(ctx, backend.File{
		Name:      file.Name,
		MediaType: "application/pdf",
		Content:   rc,
	})
	if err != nil {
		return "", err
	}

	m.logger.Info("resume uploaded", "filename", result.Filename)

	// The backend is the source of truth for filename and timestamp.
	m.CheckStatus(ctx)
	m.Collapse()
	return result.Filename, nil
}

// Status returns the last fetched status.
func (m *Manager) Status() types.ResumeStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Expanded reports whether the detail view is expanded.
func (m *Manager) Expanded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expanded
}

// ToggleDetails flips between collapsed and expanded.
func (m *Manager) ToggleDetails() {
	m.mu.Lock()
	m.expanded = !m.expanded
	m.mu.Unlock()
}

// Collapse resets the detail view to collapsed.
func (m *Manager) Collapse() {
	m.mu.Lock()
	m.expanded = false
	m.mu.Unlock()
}
