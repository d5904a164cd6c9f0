// Package session is the client's state machine. User and lifecycle actions are
// dispatched as events; View projects the resulting state for a surface to draw.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jd-assistant/internal/analysis"
	"github.com/jonathan/jd-assistant/internal/backend"
	"github.com/jonathan/jd-assistant/internal/config"
	"github.com/jonathan/jd-assistant/internal/jdinput"
	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/resume"
	"github.com/jonathan/jd-assistant/internal/store"
	"github.com/jonathan/jd-assistant/internal/types"
)

// Status texts.
const (
	MsgAnalysisComplete = "Analysis complete"
	MsgAnalysisFailed   = "Analysis failed"
	MsgResumeUploaded   = "Resume uploaded: %s"
)

// ErrUnknownControl is returned when copying from a control that does not exist.
var ErrUnknownControl = errors.New("unknown control")

// Options configures a Session.
type Options struct {
	// Backend configures the HTTP client. Nil uses backend.DefaultOptions.
	Backend *backend.Options
	// Clipboard receives copied text. Nil uses the system clipboard.
	Clipboard results.Clipboard
	Logger    *slog.Logger
	// Now is the clock used for cache timestamps and copy feedback.
	Now func() time.Time
}

// Session holds all client state for one popup lifetime.
type Session struct {
	logger   *slog.Logger
	settings *config.BackendStore
	client   *backend.Client

	resume       *resume.Manager
	orchestrator *analysis.Orchestrator
	cache        *results.Cache
	renderer     *results.Renderer
	copier       *results.Copier

	mu            sync.Mutex
	input         *jdinput.Collector
	resumeStatus  types.StatusMessage
	analyzeStatus types.StatusMessage
	uploading     bool
}

// New wires a Session on top of kv. The backend address is read from kv on
// every request, so SetBackendURL takes effect immediately.
func New(kv store.Store, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	backendOpts := opts.Backend
	if backendOpts == nil {
		backendOpts = backend.DefaultOptions()
	}
	if backendOpts.Logger == nil {
		backendOpts.Logger = logger
	}

	settings := config.NewBackendStore(kv)
	client := backend.New(settings, backendOpts)
	cache := results.NewCacheWithClock(kv, now)
	renderer := results.NewRenderer()

	return &Session{
		logger:       logger.With("component", "session"),
		settings:     settings,
		client:       client,
		resume:       resume.NewManager(client, logger),
		orchestrator: analysis.NewOrchestrator(client, cache, renderer, logger),
		cache:        cache,
		renderer:     renderer,
		copier:       results.NewCopier(opts.Clipboard, now),
		input:        jdinput.NewCollector(),
	}
}

// Client returns the backend client used by the session.
func (s *Session) Client() *backend.Client {
	return s.client
}

// BackendURL returns the configured backend address.
func (s *Session) BackendURL(ctx context.Context) (string, error) {
	return s.settings.Get(ctx)
}

// Dispatch applies ev. Network calls made on behalf of ev run without holding
// the session lock, so View can be called concurrently.
func (s *Session) Dispatch(ctx context.Context, ev Event) (Outcome, error) {
	s.logger.Debug("dispatch", "event", ev.eventName())

	switch e := ev.(type) {
	case Activate:
		return Outcome{}, s.activate(ctx)
	case SwitchInputMode:
		return Outcome{}, s.withInput(func() error {
			if err := s.input.SwitchMode(e.Mode); err != nil {
				return err
			}
			s.analyzeStatus = types.StatusMessage{}
			return nil
		})
	case SetText:
		return Outcome{}, s.withInput(func() error { return s.input.SetText(e.Text) })
	case SelectImage:
		return Outcome{}, s.withInput(func() error {
			err := s.input.SelectImage(e.Image)
			var verr *types.ValidationError
			if errors.As(err, &verr) {
				s.analyzeStatus = errorStatus(verr.Message)
			}
			return err
		})
	case Paste:
		var handled bool
		err := s.withInput(func() error {
			handled = s.input.Paste(e.Items)
			return nil
		})
		return Outcome{Handled: handled}, err
	case ClearImage:
		return Outcome{}, s.withInput(func() error {
			s.input.ClearImage()
			return nil
		})
	case SubmitAnalysis:
		result, err := s.submit(ctx)
		return Outcome{Result: result}, err
	case UploadResume:
		filename, err := s.upload(ctx, e.File)
		return Outcome{Filename: filename}, err
	case ToggleResumeDetails:
		s.resume.ToggleDetails()
		return Outcome{}, nil
	case ClearResults:
		return Outcome{}, s.clear(ctx)
	case Copy:
		outcome, err := s.copy(e.Control)
		return Outcome{Copy: outcome}, err
	case SetBackendURL:
		return Outcome{}, s.settings.Set(ctx, e.URL)
	default:
		return Outcome{}, fmt.Errorf("unsupported event %T", ev)
	}
}

// activate runs the résumé status check and the cache lookup concurrently.
// Neither can fail the activation: the status check fails open and an
// unreadable cache is treated as empty.
func (s *Session) activate(ctx context.Context) error {
	var cached *types.AnalysisResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.resume.CheckStatus(gctx)
		return nil
	})
	g.Go(func() error {
		result, err := s.cache.Load(gctx)
		if err != nil {
			s.logger.Warn("ignoring unreadable cached result", "error", err)
			return nil
		}
		cached = result
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if cached != nil {
		s.renderer.Render(cached)
	} else {
		s.renderer.Clear()
	}
	return nil
}

// withInput runs fn under the session lock unless an analysis is in flight,
// in which case the input controls are disabled and fn is not run.
func (s *Session) withInput(fn func() error) error {
	if s.orchestrator.Busy() {
		return analysis.ErrInFlight
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Session) submit(ctx context.Context) (*types.AnalysisResult, error) {
	var payload types.JDPayload
	err := s.withInput(func() error {
		p, err := s.input.BuildPayload()
		if err != nil {
			s.analyzeStatus = errorStatus(err.Error())
			return err
		}
		payload = p
		s.analyzeStatus = types.StatusMessage{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := s.orchestrator.Submit(ctx, payload)
	if errors.Is(err, analysis.ErrInFlight) {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if result == nil {
		s.analyzeStatus = failureStatus(err, MsgAnalysisFailed)
		return nil, err
	}
	s.input.Submitted()
	s.analyzeStatus = types.StatusMessage{Text: MsgAnalysisComplete, Kind: types.StatusSuccess}
	if err != nil {
		// Shown but not cached; the next activation will not restore it.
		s.logger.Warn("analysis result not cached", "error", err)
	}
	return result, nil
}

func (s *Session) upload(ctx context.Context, file *resume.File) (string, error) {
	s.mu.Lock()
	s.uploading = true
	s.mu.Unlock()

	filename, err := s.resume.Upload(ctx, file)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploading = false
	if err != nil {
		s.resumeStatus = failureStatus(err, resume.MsgFailed)
		return "", err
	}
	s.resumeStatus = types.StatusMessage{Text: fmt.Sprintf(MsgResumeUploaded, filename), Kind: types.StatusSuccess}
	return filename, nil
}

func (s *Session) clear(ctx context.Context) error {
	err := s.cache.Clear(ctx)
	s.renderer.Clear()

	s.mu.Lock()
	s.analyzeStatus = types.StatusMessage{}
	s.mu.Unlock()
	return err
}

func (s *Session) copy(control string) (results.CopyOutcome, error) {
	text, ok := s.renderer.View().FieldText(control)
	if !ok {
		return results.CopySkipped, fmt.Errorf("%w: %s", ErrUnknownControl, control)
	}
	outcome := s.copier.Copy(control, text)
	if outcome == results.CopyFailed {
		s.logger.Warn("copy to clipboard failed", "control", control)
	}
	return outcome, nil
}

func errorStatus(text string) types.StatusMessage {
	return types.StatusMessage{Text: text, Kind: types.StatusError}
}

// failureStatus maps an action error to its status message: local validation
// messages and backend details are shown verbatim, a non-2xx response without
// a detail falls back to fallback, and anything else is reported as an error.
func failureStatus(err error, fallback string) types.StatusMessage {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		return errorStatus(verr.Message)
	}
	if backend.IsAPIError(err) {
		if detail, ok := backend.Detail(err); ok {
			return errorStatus(detail)
		}
		return errorStatus(fallback)
	}
	return errorStatus("Error: " + err.Error())
}
