package analysis

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/store"
	"github.com/jonathan/jd-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	result  *types.AnalysisResult
	err     error
	panics  bool
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, _ types.JDPayload) (*types.AnalysisResult, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.panics {
		panic("boom")
	}
	return f.result, f.err
}

func newOrchestrator(a Analyzer) (*Orchestrator, *results.Cache, *results.Renderer) {
	cache := results.NewCache(store.NewMemoryStore())
	renderer := results.NewRenderer()
	return NewOrchestrator(a, cache, renderer, nil), cache, renderer
}

var textPayload = types.JDPayload{Kind: types.InputText, Text: "Senior Go engineer"}

func TestSubmit_SuccessCachesAndRenders(t *testing.T) {
	a := &fakeAnalyzer{result: &types.AnalysisResult{
		MatchScore: 82,
		Contact:    types.NewContact(types.ContactEmail, &types.EmailDraft{To: "hr@x.com"}, nil),
	}}
	o, cache, renderer := newOrchestrator(a)

	result, err := o.Submit(context.Background(), textPayload)
	require.NoError(t, err)
	assert.Equal(t, 82, result.MatchScore)
	assert.False(t, result.Timestamp.IsZero())

	cached, err := cache.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 82, cached.MatchScore)

	assert.Equal(t, results.ModeResult, renderer.Mode())
	assert.Equal(t, StateIdle, o.State())
}

func TestSubmit_FailureHidesResultsAndUnlocks(t *testing.T) {
	a := &fakeAnalyzer{err: errors.New("connection reset")}
	o, cache, renderer := newOrchestrator(a)

	_, err := o.Submit(context.Background(), textPayload)
	require.Error(t, err)

	assert.Equal(t, results.ModeInput, renderer.Mode())
	assert.Equal(t, results.View{}, renderer.View())
	cached, _ := cache.Load(context.Background())
	assert.Nil(t, cached)
	assert.False(t, o.Busy())
}

func TestSubmit_PanicStillUnlocks(t *testing.T) {
	o, _, _ := newOrchestrator(&fakeAnalyzer{panics: true})

	assert.Panics(t, func() { _, _ = o.Submit(context.Background(), textPayload) })
	assert.Equal(t, StateIdle, o.State())
}

func TestSubmit_AtMostOneInFlight(t *testing.T) {
	a := &fakeAnalyzer{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		result:  &types.AnalysisResult{MatchScore: 90, Contact: types.NewContact(types.ContactEmail, nil, nil)},
	}
	o, _, _ := newOrchestrator(a)

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), textPayload)
		done <- err
	}()

	select {
	case <-a.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never reached the analyzer")
	}
	assert.True(t, o.Busy())

	_, err := o.Submit(context.Background(), textPayload)
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, int32(1), a.calls.Load(), "second submission made no call")

	close(a.release)
	require.NoError(t, <-done)
	assert.False(t, o.Busy())

	_, err = o.Submit(context.Background(), textPayload)
	require.NoError(t, err)
	assert.Equal(t, int32(2), a.calls.Load())
}

func TestSubmit_CacheFailureStillRenders(t *testing.T) {
	kv := store.NewMemoryStore()
	cache := results.NewCache(kv)
	renderer := results.NewRenderer()
	o := NewOrchestrator(&fakeAnalyzer{result: &types.AnalysisResult{
		MatchScore: 75,
		Contact:    types.NewContact(types.ContactEmail, nil, nil),
	}}, cache, renderer, nil)
	require.NoError(t, kv.Close())

	result, err := o.Submit(context.Background(), textPayload)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrClosed)
	require.NotNil(t, result)
	assert.Equal(t, results.ModeResult, renderer.Mode())
}
