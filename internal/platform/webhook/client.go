// Package webhook issues the single HTTP round trip behind every remote
// procurement operation and maps the outcome onto typed results and errors.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Call outcomes reported to an Observer.
const (
	OutcomeOK             = "ok"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
	OutcomeTimeout        = "timeout"
	OutcomeCanceled       = "canceled"
	OutcomeDecodeError    = "decode_error"
)

const errorBodyLimit = 4 << 10

// Observer receives one notification per completed call.
type Observer interface {
	ObserveWebhook(group, operation, outcome string, elapsed time.Duration)
}

// Caller is the surface resource clients depend on; *Client implements it.
type Caller interface {
	Get(ctx context.Context, operation, path string, query Query, out any) error
	Post(ctx context.Context, operation, path string, body, out any) error
	Put(ctx context.Context, operation, path string, body, out any) error
	Upload(ctx context.Context, operation, path string, file File, fields Query, out any) error
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Group      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Observer   Observer
}

// Client talks to one webhook resource group. It holds no per-call state and
// is safe for concurrent use.
type Client struct {
	baseURL    string
	group      string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	observer   Observer
}

// File is a document to upload.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type request struct {
	operation   string
	method      string
	path        string
	query       Query
	body        []byte
	contentType string
}

// New constructs a Client for opts.BaseURL.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || base == "" || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("webhook: invalid base url %q", opts.BaseURL)
	}
	if opts.Timeout < 0 {
		return nil, errors.New("webhook: timeout must not be negative")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	group := opts.Group
	if group == "" {
		group = u.Host
	}
	return &Client{
		baseURL:    base,
		group:      group,
		timeout:    opts.Timeout,
		httpClient: httpClient,
		logger:     logger,
		observer:   opts.Observer,
	}, nil
}

// Get fetches path with the given filters and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, operation, path string, query Query, out any) error {
	return c.roundTrip(ctx, request{operation: operation, method: http.MethodGet, path: path, query: query}, c.timeout, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, operation, path string, body, out any) error {
	req, err := jsonRequest(operation, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.roundTrip(ctx, req, c.timeout, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, operation, path string, body, out any) error {
	req, err := jsonRequest(operation, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	return c.roundTrip(ctx, req, c.timeout, out)
}

// Upload posts file as multipart/form-data together with the non-empty
// fields. Uploads are attempted exactly once and are not deadline-wrapped.
func (c *Client) Upload(ctx context.Context, operation, path string, file File, fields Query, out any) error {
	if strings.TrimSpace(file.Name) == "" || file.Content == nil {
		return fmt.Errorf("%w: file name and content required", ErrValidation)
	}
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, values := range fields.Values() {
		if err := writer.WriteField(key, values[0]); err != nil {
			return err
		}
	}
	part, err := createFilePart(writer, file)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return fmt.Errorf("webhook: read upload %s: %w", file.Name, err)
	}
	if err := writer.Close(); err != nil {
		return err
	}
	req := request{
		operation:   operation,
		method:      http.MethodPost,
		path:        path,
		body:        body.Bytes(),
		contentType: writer.FormDataContentType(),
	}
	return c.roundTrip(ctx, req, 0, out)
}

func (c *Client) roundTrip(ctx context.Context, req request, timeout time.Duration, out any) error {
	start := time.Now()
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err := c.exchange(callCtx, req, out)
	outcome := OutcomeOK
	if err != nil {
		err, outcome = classify(ctx, callCtx, req.operation, timeout, err)
		attrs := []any{
			slog.String("group", c.group),
			slog.String("operation", req.operation),
			slog.String("method", req.method),
			slog.String("outcome", outcome),
			slog.Any("error", err),
		}
		if status, ok := StatusCode(err); ok {
			attrs = append(attrs, slog.Int("status", status))
		}
		c.logger.Warn("webhook call failed", attrs...)
	}
	if c.observer != nil {
		c.observer.ObserveWebhook(c.group, req.operation, outcome, time.Since(start))
	}
	return err
}

func (c *Client) exchange(ctx context.Context, req request, out any) error {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.endpoint(req.path, req.query), body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyLimit))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &HTTPError{
			Method:     req.method,
			URL:        httpReq.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       strings.TrimSpace(string(data)),
		}
	}
	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, req.operation, err)
	}
	return nil
}

func (c *Client) endpoint(path string, query Query) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target
}

func classify(parent, callCtx context.Context, operation string, timeout time.Duration, err error) (error, string) {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return err, OutcomeHTTPError
	case parent.Err() != nil:
		return fmt.Errorf("webhook: %s: %w", operation, parent.Err()), OutcomeCanceled
	case timeout > 0 && errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return &TimeoutError{Operation: operation, After: timeout}, OutcomeTimeout
	case errors.Is(err, ErrDecode):
		return err, OutcomeDecodeError
	default:
		return fmt.Errorf("%w: %s: %w", ErrTransport, operation, err), OutcomeTransportError
	}
}

func jsonRequest(operation, method, path string, body any) (request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return request{}, fmt.Errorf("webhook: encode %s: %w", operation, err)
	}
	return request{
		operation:   operation,
		method:      method,
		path:        path,
		body:        payload,
		contentType: "application/json",
	}, nil
}

func createFilePart(writer *multipart.Writer, file File) (io.Writer, error) {
	if file.ContentType == "" {
		return writer.CreateFormFile("file", file.Name)
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", file.ContentType)
	return writer.CreatePart(header)
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
