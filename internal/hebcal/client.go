package hebcal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/hebcal/internal/instrumentation"
	"github.com/teemow/hebcal/internal/logging"
)

const bodyPreviewLen = 200

// MetricsRecorder records one hebcal API round trip. It is satisfied by
// *instrumentation.Metrics.
type MetricsRecorder interface {
	RecordHebcalRequest(ctx context.Context, endpoint, outcome string, duration time.Duration)
}

// Client talks to the hebcal.com REST API. It is immutable after
// construction and safe for concurrent use; the builders it hands out are not.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	metrics    MetricsRecorder
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the transport. Timeouts and connection pooling
// are configured there.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records every round trip on m
func WithMetrics(m MetricsRecorder) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client for the service at cfg.BaseURL
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, &TransportError{Op: "parse base url", Err: err}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &TransportError{Op: "parse base url", Err: errors.New("base url must be absolute, e.g. https://www.hebcal.com")}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  userAgent,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.WithService(c.logger, instrumentation.ServiceHebcal)

	return c, nil
}

// Default returns a client for the public service.
func Default() *Client {
	c, err := NewClient(DefaultConfig())
	if err != nil {
		// DefaultBaseURL is a constant absolute URL
		panic(err)
	}
	return c
}

// BaseURL returns the service root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Shabbat returns a new handler for the Shabbat times API
func (c *Client) Shabbat() *ShabbatHandler {
	return NewShabbatHandler(c)
}

// geoRecorder is implemented by recorders that also count location methods.
type geoRecorder interface {
	RecordGeoMethod(ctx context.Context, endpoint, geo string)
}

// get performs one GET and classifies the outcome. On a 2xx status the body
// is decoded into out; on 4xx/5xx it is decoded as a ServiceError.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any, attrs ...attribute.KeyValue) (err error) {
	endpoint := strings.TrimPrefix(path, "/")
	start := time.Now()

	ctx, span := instrumentation.StartHebcalSpan(ctx, endpoint, attrs...)
	defer func() {
		outcome := instrumentation.StatusSuccess
		if err != nil {
			outcome = string(Kind(err))
			instrumentation.SetSpanError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}
		span.End()

		if c.metrics != nil {
			c.metrics.RecordHebcalRequest(ctx, endpoint, outcome, time.Since(start))
		}
	}()

	u := c.baseURL.JoinPath(path)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &TransportError{Op: "build request", URL: u.String(), Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "do", URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: "read body", URL: u.String(), Err: err}
	}

	c.logger.Debug("hebcal response",
		logging.Endpoint(endpoint),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration(logging.KeyDuration, time.Since(start)),
		slog.String("body_preview", truncate(string(body), bodyPreviewLen)))

	return classify(resp.StatusCode, body, out)
}

// classify maps a status and body to the result or to a typed error.
func classify(status int, body []byte, out any) error {
	switch {
	case status >= 200 && status < 300:
		if err := json.Unmarshal(body, out); err != nil {
			return &DecodeError{StatusCode: status, Body: truncate(string(body), bodyPreviewLen), Err: err}
		}
		return nil

	case status >= 400 && status < 600:
		var payload struct {
			Error *string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return &DecodeError{StatusCode: status, Body: truncate(string(body), bodyPreviewLen), Err: err}
		}
		if payload.Error == nil {
			return &DecodeError{
				StatusCode: status,
				Body:       truncate(string(body), bodyPreviewLen),
				Err:        &missingFieldError{Object: "error response", Field: "error"},
			}
		}
		return &ServiceError{StatusCode: status, Message: *payload.Error}

	default:
		return &UnknownError{StatusCode: status}
	}
}

// truncate shortens s to at most maxLen bytes
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
