// Package httpclient is the adapter between the web client and the REST
// backend. It resolves paths against the backend base URL, encodes JSON
// bodies, applies headers, and classifies failures into *Error values.
// Connection pooling and timeouts belong to the underlying net/http
// transport.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fai-lds/lds-client/internal/api/metrics"
	"github.com/fai-lds/lds-client/internal/core/ports"
)

// Request describes a single backend call.
type Request struct {
	Method string
	// Path is joined to the base URL unless it is already absolute.
	Path    string
	Headers map[string]string
	// Body is JSON-encoded unless it is nil, []byte or io.Reader.
	Body any
}

// Response is a fully read backend reply.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client issues requests against the backend.
type Client struct {
	httpClient *http.Client
	config     Config
}

// New creates a Client. The default transport is cloned so the client owns
// its own connection pool.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		config:     cfg,
	}, nil
}

// Do sends req. A non-2xx reply returns both the response and a classified
// *Error; a transport failure returns a nil response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start).Seconds()
	metrics.BackendRequestDuration.WithLabelValues(req.Method).Observe(elapsed)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		if ctx.Err() != nil || isTimeout(err) {
			return nil, newTimeoutError(err)
		}
		return nil, newConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.BackendRequestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newConnectionError(fmt.Errorf("read response body: %w", err))
	}

	result := &Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: body}
	if classErr := classifyStatus(resp.StatusCode, body); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// Exchange satisfies ports.Exchanger: any reply the backend produced is a
// response, whatever its status.
func (c *Client) Exchange(ctx context.Context, req ports.Request) (*ports.Response, error) {
	resp, err := c.Do(ctx, Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: req.Headers,
		Body:    req.Body,
	})
	if resp == nil {
		return nil, err
	}
	return &ports.Response{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := req.Path
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: encode body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	return httpReq, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	t, ok := err.(timeout)
	return ok && t.Timeout()
}
