// Package procuretest provides a fake webhook backend for resource client tests.
package procuretest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
)

// Request is what the fake backend saw.
type Request struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Body        []byte
	Form        map[string]string
	FileName    string
}

// Backend records requests and answers each path with a canned response.
type Backend struct {
	mu        sync.Mutex
	requests  []Request
	responses map[string]response
	server    *httptest.Server
}

type response struct {
	status int
	body   string
}

// New starts a backend and returns it with a caller bound to it.
func New(t *testing.T, group string) (*Backend, *webhook.Client) {
	t.Helper()
	b := &Backend{responses: make(map[string]response)}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	caller, err := webhook.New(webhook.Options{BaseURL: b.server.URL + "/webhook", Group: group, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("webhook client: %v", err)
	}
	return b, caller
}

// Respond registers a JSON body for path (without the /webhook prefix).
func (b *Backend) Respond(path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[path] = response{status: status, body: body}
}

// RespondJSON marshals v as the response for path.
func (b *Backend) RespondJSON(path string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	b.Respond(path, http.StatusOK, string(data))
}

// Requests returns a copy of every request seen so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Last returns the most recent request.
func (b *Backend) Last(t *testing.T) Request {
	t.Helper()
	reqs := b.Requests()
	if len(reqs) == 0 {
		t.Fatal("backend received no request")
	}
	return reqs[len(reqs)-1]
}

// DecodeBody unmarshals the last JSON body into v.
func (r Request) DecodeBody(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/webhook")
	rec := Request{
		Method:      r.Method,
		Path:        path,
		RawQuery:    r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
	}
	if err := r.ParseMultipartForm(8 << 20); err == nil {
		rec.Form = make(map[string]string)
		for key, values := range r.MultipartForm.Value {
			rec.Form[key] = values[0]
		}
		if files := r.MultipartForm.File["file"]; len(files) > 0 {
			rec.FileName = files[0].Filename
		}
	} else {
		rec.Body, _ = io.ReadAll(r.Body)
	}

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	resp, ok := b.responses[path]
	b.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}
