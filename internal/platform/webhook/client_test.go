package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	group, operation, outcome string
}

type stubObserver struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (s *stubObserver) ObserveWebhook(group, operation, outcome string, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, recordedCall{group: group, operation: operation, outcome: outcome})
}

func (s *stubObserver) last() recordedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (*Client, *stubObserver) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	observer := &stubObserver{}
	client, err := New(Options{BaseURL: srv.URL + "/webhook/", Group: "invoice", Timeout: timeout, Observer: observer})
	require.NoError(t, err)
	return client, observer
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "ftp://host/x", "/relative"} {
		_, err := New(Options{BaseURL: raw})
		require.Error(t, err, raw)
	}
}

func TestGetWithoutFiltersOmitsQueryString(t *testing.T) {
	var gotURI string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		_, _ = w.Write([]byte(`[]`))
	}, time.Second)

	var out []map[string]any
	err := client.Get(context.Background(), "list_invoices", "/invoice-api/invoices", Query{"status": "", "department": "  "}, &out)
	require.NoError(t, err)
	require.Equal(t, "/webhook/invoice-api/invoices", gotURI)
	require.NotContains(t, gotURI, "?")
	require.Empty(t, out)
}

func TestGetEncodesOnlyNonEmptyFilters(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}, time.Second)

	var out []map[string]any
	err := client.Get(context.Background(), "list_invoices", "invoice-api/invoices", Query{"status": "APPROVED", "department": "", "vendorId": Int(0)}, &out)
	require.NoError(t, err)
	require.Equal(t, "status=APPROVED", gotQuery)
	require.Len(t, out, 1)
}

func TestPostSendsJSONBody(t *testing.T) {
	var got map[string]string
	var contentType string
	client, observer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"VendorID":7,"VendorName":"Acme"}`))
	}, time.Second)

	var out struct {
		VendorID   int64
		VendorName string
	}
	err := client.Post(context.Background(), "create_vendor", "/invoice-api/vendor", map[string]string{"VendorName": "Acme"}, &out)
	require.NoError(t, err)
	require.Equal(t, "application/json", contentType)
	require.Equal(t, "Acme", got["VendorName"])
	require.Equal(t, int64(7), out.VendorID)
	require.Equal(t, recordedCall{group: "invoice", operation: "create_vendor", outcome: OutcomeOK}, observer.last())
}

func TestNonSuccessStatusSurfacesHTTPError(t *testing.T) {
	client, observer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such invoice", http.StatusNotFound)
	}, time.Second)

	err := client.Get(context.Background(), "get_invoice", "/invoice-api/invoice", Query{"uuid": "x"}, &struct{}{})
	require.Error(t, err)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	require.Equal(t, "Not Found", httpErr.Status)
	require.Equal(t, "no such invoice", httpErr.Body)
	require.Equal(t, http.MethodGet, httpErr.Method)
	code, ok := StatusCode(err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, OutcomeHTTPError, observer.last().outcome)
}

func TestApplicationFailureIsNotAnError(t *testing.T) {
	client, observer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"X"}`))
	}, time.Second)

	var out Result
	err := client.Post(context.Background(), "put_to_use", "/asset-api/put-to-use", map[string]string{}, &out)
	require.NoError(t, err)
	require.False(t, out.Success)
	require.True(t, out.Failed())
	require.Equal(t, "X", out.Error)
	var actionErr *ActionError
	require.ErrorAs(t, out.Err(), &actionErr)
	require.Equal(t, "X", actionErr.Message)
	require.Equal(t, OutcomeOK, observer.last().outcome)
}

func TestTimeoutAbortsInFlightRequest(t *testing.T) {
	released := make(chan struct{})
	client, observer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		close(released)
	}, 50*time.Millisecond)

	started := time.Now()
	err := client.Get(context.Background(), "list_pending_assets", "/asset-api/pending", nil, &[]any{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTimeout)
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	require.Equal(t, 50*time.Millisecond, timeoutErr.After)
	require.Less(t, time.Since(started), 2*time.Second)
	require.Equal(t, OutcomeTimeout, observer.last().outcome)

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("upstream request still active after timeout")
	}
}

func TestCallerCancellationIsNotReportedAsTimeout(t *testing.T) {
	client, observer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := client.Get(ctx, "list_invoices", "/invoice-api/invoices", nil, &[]any{})
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrTimeout)
	require.Equal(t, OutcomeCanceled, observer.last().outcome)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	client, err := New(Options{BaseURL: base, Timeout: time.Second})
	require.NoError(t, err)
	err = client.Get(context.Background(), "list_vendors", "/invoice-api/vendors", nil, &[]any{})
	require.ErrorIs(t, err, ErrTransport)
	require.NotErrorIs(t, err, ErrTimeout)
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	client, observer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}, time.Second)

	err := client.Get(context.Background(), "list_vendors", "/invoice-api/vendors", nil, &[]any{})
	require.ErrorIs(t, err, ErrDecode)
	require.Equal(t, OutcomeDecodeError, observer.last().outcome)
}

func TestEmptySuccessBodyLeavesOutUntouched(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, time.Second)

	out := Result{Success: true}
	require.NoError(t, client.Put(context.Background(), "update_invoice", "/invoice-api/invoice", map[string]string{}, &out))
	require.True(t, out.Success)
}

func TestUploadHasNoOwnDeadline(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(80 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true}`))
	}, 20*time.Millisecond)

	var out Result
	err := client.Upload(context.Background(), "upload_invoice", "/invoice-api/upload",
		File{Name: "inv.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF")}, nil, &out)
	require.NoError(t, err)
	require.True(t, out.Success)
}

func TestUploadSendsMultipartOnce(t *testing.T) {
	var calls atomic.Int32
	var gotName, gotContent, gotField string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotContent = string(data)
		gotField = r.FormValue("department")
		http.Error(w, "extraction failed", http.StatusBadGateway)
	}, 10*time.Millisecond)

	err := client.Upload(context.Background(), "upload_quotation", "/quotation-api/upload",
		File{Name: "quote.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF")},
		Query{"department": "IT", "title": ""}, &Result{})
	require.Error(t, err)
	code, ok := StatusCode(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, code)
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, "quote.pdf", gotName)
	require.Equal(t, "%PDF", gotContent)
	require.Equal(t, "IT", gotField)
}

func TestUploadRequiresFile(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}, time.Second)

	err := client.Upload(context.Background(), "upload_invoice", "/invoice-api/upload", File{Name: "x.pdf"}, nil, nil)
	require.True(t, errors.Is(err, ErrValidation))
}

func TestConcurrentCallsCompleteIndependently(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("slow") == "1" {
			time.Sleep(50 * time.Millisecond)
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"` + r.URL.Query().Get("id") + `"}`))
	}, time.Second)

	var wg sync.WaitGroup
	results := make([]Result, 2)
	errs := make([]error, 2)
	for i, q := range []Query{{"id": "a", "slow": "1"}, {"id": "b"}} {
		wg.Add(1)
		go func(i int, q Query) {
			defer wg.Done()
			errs[i] = client.Get(context.Background(), "probe", "/probe", q, &results[i])
		}(i, q)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.Equal(t, "a", results[0].Message)
	require.Equal(t, "b", results[1].Message)
}
