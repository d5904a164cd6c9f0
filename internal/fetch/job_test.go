package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestJobText_PlainFetch(t *testing.T) {
	server := serveHTML(t, `<html><body><nav>Jobs</nav><div class="job-description"><p>Senior Go engineer</p></div></body></html>`)

	posting, err := JobText(context.Background(), server.URL, JobOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Senior Go engineer", posting.Text)
	assert.Equal(t, PlatformUnknown, posting.Platform)
	assert.False(t, posting.Rendered)
}

func TestJobText_BrowserFallback(t *testing.T) {
	server := serveHTML(t, `<html><body><div id="root"></div></body></html>`)
	long := strings.Repeat("Build distributed systems in Go. ", 30)

	var calls int
	posting, err := JobText(context.Background(), server.URL, JobOptions{
		UseBrowser: true,
		Render: func(_ context.Context, url string, timeout time.Duration) (string, error) {
			calls++
			assert.Equal(t, server.URL, url)
			assert.Equal(t, DefaultBrowserTimeout, timeout)
			return `<html><body><main><p>` + long + `</p></main></body></html>`, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, posting.Rendered)
	assert.Equal(t, strings.TrimSpace(long), posting.Text)
}

func TestJobText_BrowserFailureKeepsFetchedText(t *testing.T) {
	server := serveHTML(t, `<html><body><main>Short posting</main></body></html>`)

	posting, err := JobText(context.Background(), server.URL, JobOptions{
		UseBrowser: true,
		Render: func(context.Context, string, time.Duration) (string, error) {
			return "", errors.New("chrome not installed")
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Short posting", posting.Text)
	assert.False(t, posting.Rendered)
}

func TestJobText_NoBrowserWhenDisabled(t *testing.T) {
	server := serveHTML(t, `<html><body><main>Short posting</main></body></html>`)

	posting, err := JobText(context.Background(), server.URL, JobOptions{
		Render: func(context.Context, string, time.Duration) (string, error) {
			t.Fatal("renderer must not be called")
			return "", nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Short posting", posting.Text)
}

func TestJobText_Empty(t *testing.T) {
	server := serveHTML(t, `<html><body><script>app()</script></body></html>`)

	_, err := JobText(context.Background(), server.URL, JobOptions{})
	assert.ErrorIs(t, err, ErrNoContent)
}
