package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBreakerMaxRequests = 3
	defaultBreakerInterval    = 60 * time.Second
	defaultBreakerTimeout     = 30 * time.Second
	defaultBreakerThreshold   = 10
	defaultBreakerFailureRate = 0.5
)

// Client sends JSON requests to the backend API. Each method and host pair
// runs behind its own circuit breaker.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    http.Header
	maxBody    int64
	breakers   sync.Map // map[string]*gobreaker.CircuitBreaker[*response]
	settings   func(name string) gobreaker.Settings
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport replaces the base transport. The otel wrapper is kept.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = otelhttp.NewTransport(rt)
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithBreakerSettings overrides the breaker settings for every host.
func WithBreakerSettings(settings func(name string) gobreaker.Settings) Option {
	return func(c *Client) {
		c.settings = settings
	}
}

type response struct {
	status int
	body   []byte
}

// NewClient builds a client for cfg.BaseURL.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		headers:  http.Header{},
		maxBody:  cfg.MaxResponseBytes,
		settings: defaultBreakerSettings,
	}
	c.headers.Set("Accept", "application/json")
	if token := strings.TrimSpace(cfg.Token); token != "" {
		c.headers.Set("Authorization", "Bearer "+token)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func defaultBreakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: defaultBreakerMaxRequests,
		Interval:    defaultBreakerInterval,
		Timeout:     defaultBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < defaultBreakerThreshold {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= defaultBreakerFailureRate
		},
		// Client errors say nothing about backend health.
		IsSuccessful: func(err error) bool {
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
	}
}

func (c *Client) breakerFor(key string) *gobreaker.CircuitBreaker[*response] {
	if cb, ok := c.breakers.Load(key); ok {
		return cb.(*gobreaker.CircuitBreaker[*response])
	}
	cb := gobreaker.NewCircuitBreaker[*response](c.settings("api:" + key))
	actual, _ := c.breakers.LoadOrStore(key, cb)
	return actual.(*gobreaker.CircuitBreaker[*response])
}

// Get decodes the JSON response of GET path into out.
func (c *Client) Get(ctx context.Context, path string, headers http.Header, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, headers, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body any, headers http.Header, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, headers, out)
}

// Do sends one request. Non-2xx responses return *StatusError. A nil out
// discards the response body.
func (c *Client) Do(ctx context.Context, method, path string, body any, headers http.Header, out any) error {
	target, err := c.resolve(path)
	if err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
	}

	cb := c.breakerFor(method + " " + target.Host)
	resp, err := cb.Execute(func() (*response, error) {
		return c.send(ctx, method, target, path, payload, headers)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s %s: %w", method, path, ErrCircuitOpen)
	}
	if err != nil {
		return err
	}
	if out == nil || len(resp.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method string, target *url.URL, path string, payload []byte, headers http.Header) (*response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	for key, values := range c.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	for key, values := range headers {
		req.Header[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: res.StatusCode,
			Message:    errorMessage(data),
		}
	}
	return &response{status: res.StatusCode, body: data}, nil
}

func (c *Client) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse request path %q: %w", path, err)
	}
	target := c.baseURL.JoinPath(ref.Path)
	target.RawQuery = ref.RawQuery
	return target, nil
}

// LanguageHeader returns headers asking the backend for locale content.
func LanguageHeader(locale string) http.Header {
	headers := http.Header{}
	if locale = strings.TrimSpace(locale); locale != "" {
		headers.Set("Accept-Language", locale)
	}
	return headers
}
