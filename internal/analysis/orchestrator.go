// Package analysis runs job-description analyses against the backend, allowing
// at most one request in flight.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/types"
)

// ErrInFlight is returned when a submission is attempted while another is pending.
var ErrInFlight = errors.New("an analysis is already in progress")

// State is the orchestrator's lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// Analyzer is the backend call used to analyze a payload.
type Analyzer interface {
	Analyze(ctx context.Context, payload types.JDPayload) (*types.AnalysisResult, error)
}

// Orchestrator submits analyses and publishes successful results to the cache
// and renderer.
type Orchestrator struct {
	analyzer Analyzer
	cache    *results.Cache
	renderer *results.Renderer
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// NewOrchestrator wires an Orchestrator.
func NewOrchestrator(a Analyzer, cache *results.Cache, renderer *results.Renderer, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		analyzer: a,
		cache:    cache,
		renderer: renderer,
		logger:   logger.With("component", "analysis"),
		state:    StateIdle,
	}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Busy reports whether a submission is in flight. Input controls are disabled
// while it is true.
func (o *Orchestrator) Busy() bool {
	return o.State() == StateSubmitting
}

func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSubmitting {
		return false
	}
	o.state = StateSubmitting
	return true
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	o.state = StateIdle
	o.mu.Unlock()
}

// Submit sends payload for analysis. On success the result is cached and
// rendered. On failure any rendered result is hidden and the view stays in its
// current mode. The orchestrator always returns to StateIdle, even if the
// analyzer panics.
func (o *Orchestrator) Submit(ctx context.Context, payload types.JDPayload) (*types.AnalysisResult, error) {
	if !o.begin() {
		return nil, ErrInFlight
	}
	defer o.end()

	o.logger.Info("submitting analysis", "kind", payload.Kind)

	result, err := o.analyzer.Analyze(ctx, payload)
	if err != nil {
		o.renderer.Hide()
		o.logger.Warn("analysis failed", "error", err)
		return nil, err
	}

	if err := o.cache.Save(ctx, result); err != nil {
		// The analysis itself succeeded; show it even if it cannot be cached.
		o.logger.Error("failed to cache analysis result", "error", err)
		o.renderer.Render(result)
		return result, fmt.Errorf("analysis complete but not cached: %w", err)
	}
	o.renderer.Render(result)

	o.logger.Info("analysis complete", "match_score", result.MatchScore, "contact_mode", result.Contact.Mode)
	return result, nil
}
