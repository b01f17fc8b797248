// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Configuration constants for the backend client.
const (
	// DefaultTimeout bounds a single backend call.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps response bodies.
	MaxResponseSize = 10 * 1024 * 1024

	// UserAgent identifies painel to the backend.
	UserAgent = "painel-tui/1.0"

	// RequestIDHeader carries a per-call UUID for log correlation.
	RequestIDHeader = "X-Request-ID"

	tracerName = "github.com/jeranaias/painel-tui/internal/backend"
)

// sharedHTTPClient pools connections across all clients. Timeouts are
// applied per call through the request context.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// Preflight runs before every call except the connectivity probe itself.
// Returning an error aborts the call as a transport failure.
type Preflight func(ctx context.Context) error

// Client talks to the PHP backend.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	timeout   time.Duration
	limiter   *rate.Limiter
	tracer    trace.Tracer
	preflight Preflight
	schemas   map[string]*jsonschema.Schema
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the shared pooled HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit limits outgoing calls to rps per second with the given
// burst. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTracer sets the tracer used for per-call spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithPreflight installs a check that runs before each call.
func WithPreflight(p Preflight) Option {
	return func(c *Client) { c.preflight = p }
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		http:    sharedHTTPClient,
		timeout: DefaultTimeout,
		tracer:  otel.Tracer(tracerName),
		schemas: schemas,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetPreflight installs p after construction, for probes that need the
// client themselves. Call it before the client is shared.
func (c *Client) SetPreflight(p Preflight) {
	c.preflight = p
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// URL returns the absolute URL of an endpoint file.
func (c *Client) URL(endpoint string) string {
	return c.baseURL.ResolveReference(&url.URL{Path: endpoint}).String()
}

// =============================================================================
// REQUESTS
// =============================================================================

// Post sends form as an x-www-form-urlencoded POST and decodes the JSON
// response into out.
func (c *Client) Post(ctx context.Context, endpoint string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, form, out)
}

// Get performs a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, form url.Values, out any) (err error) {
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "backend."+strings.TrimSuffix(endpoint, ".php"),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("backend.endpoint", endpoint),
			attribute.String("http.request.method", method),
			attribute.String("backend.request_id", requestID),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.preflight != nil && endpoint != EndpointDatabaseConnection {
		if err := c.preflight(ctx); err != nil {
			return transportErr(endpoint, 0, err)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return transportErr(endpoint, 0, err)
		}
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.URL(endpoint), body)
	if err != nil {
		return transportErr(endpoint, 0, err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(RequestIDHeader, requestID)

	logRequest(req, requestID)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return transportErr(endpoint, 0, err)
	}
	defer resp.Body.Close()
	logResponse(endpoint, requestID, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	data, err := readResponse(resp)
	if err != nil {
		return transportErr(endpoint, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transportErr(endpoint, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	return c.decode(endpoint, data, out)
}

// decode validates data against the endpoint schema and unmarshals it.
func (c *Client) decode(endpoint string, data []byte, out any) error {
	if schema, ok := c.schemas[endpoint]; ok {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return malformedErr(endpoint, err)
		}
		if err := schema.Validate(doc); err != nil {
			return malformedErr(endpoint, err)
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return malformedErr(endpoint, err)
	}
	return nil
}

func readResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(data) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return data, nil
}

// logRequest logs method and endpoint only. Form bodies carry passwords and
// tokens and are never logged.
func logRequest(req *http.Request, requestID string) {
	log.Printf("BACKEND | request %s %s id=%s", req.Method, req.URL.Path, requestID)
}

func logResponse(endpoint, requestID string, status int, d time.Duration) {
	log.Printf("BACKEND | response %s %d id=%s (%v)", endpoint, status, requestID, d.Round(time.Millisecond))
}
