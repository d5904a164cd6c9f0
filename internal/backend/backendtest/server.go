// Package backendtest provides an in-process fake of the analysis backend.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Reply is a canned response.
type Reply struct {
	Status int
	Body   any    // encoded as JSON unless Raw is set
	Raw    string // sent verbatim
}

// Request records what the fake received.
type Request struct {
	Method    string
	Path      string
	RequestID string
	Fields    map[string]string
	Files     map[string]UploadedFile
}

// UploadedFile is a received multipart file part.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Server is a configurable fake backend.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[string]Reply
	requests []Request
	gate     map[string]chan struct{}
}

// NewServer starts a fake backend with a healthy default for every endpoint:
// no résumé stored, upload and analysis succeed.
func NewServer() *Server {
	s := &Server{
		replies: map[string]Reply{
			"GET /health":         {Status: http.StatusOK, Body: map[string]string{"status": "ok"}},
			"GET /resume/status":  {Status: http.StatusOK, Body: map[string]any{"exists": false}},
			"POST /resume/upload": {Status: http.StatusOK, Body: map[string]any{"filename": "resume.pdf"}},
			"POST /analyze-jd":    {Status: http.StatusOK, Body: map[string]any{"match_score": 50}},
		},
		gate: make(map[string]chan struct{}),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Reply sets the response for "METHOD /path".
func (s *Server) Reply(route string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[route] = reply
}

// Hold blocks responses on route until the returned release func is called.
func (s *Server) Hold(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gate[route] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests hit route.
func (s *Server) Count(route string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method+" "+r.Path == route {
			n++
		}
	}
	return n
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	rec := Request{
		Method:    r.Method,
		Path:      r.URL.Path,
		RequestID: r.Header.Get("X-Request-ID"),
		Fields:    map[string]string{},
		Files:     map[string]UploadedFile{},
	}
	if err := r.ParseMultipartForm(8 << 20); err == nil && r.MultipartForm != nil {
		for name, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				rec.Fields[name] = values[0]
			}
		}
		for name, headers := range r.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			f, err := headers[0].Open()
			if err != nil {
				continue
			}
			data, _ := io.ReadAll(f)
			_ = f.Close()
			rec.Files[name] = UploadedFile{
				Filename:    headers[0].Filename,
				ContentType: headers[0].Header.Get("Content-Type"),
				Data:        data,
			}
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	reply, ok := s.replies[route]
	gate := s.gate[route]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	if !ok {
		http.NotFound(w, r)
		return
	}
	if reply.Raw != "" {
		w.WriteHeader(reply.Status)
		_, _ = io.WriteString(w, reply.Raw)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	_ = json.NewEncoder(w).Encode(reply.Body)
}
