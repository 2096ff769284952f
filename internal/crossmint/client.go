package crossmint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/danmuck/megactl/internal/megaverse"
	"github.com/danmuck/megactl/internal/observability"
)

const DefaultBaseURL = "https://challenge.crossmint.io/api"

// Client connection and retry configuration.
type Config struct {
	BaseURL        string
	CandidateID    string
	RequestTimeout time.Duration

	// RequestsPerSecond paces outgoing calls; the remote enforces roughly
	// one request per second regardless of caller behavior.
	RequestsPerSecond float64

	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client configuration defaults tuned to the hosted challenge API.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		RequestTimeout:    30 * time.Second,
		RequestsPerSecond: 1,
		RetryMax:          8,
		RetryWaitMin:      time.Second,
		RetryWaitMax:      30 * time.Second,
	}
}

// WithDefaults fills unset fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = def.BaseURL
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = def.RequestsPerSecond
	}
	if c.RetryMax <= 0 {
		c.RetryMax = def.RetryMax
	}
	if c.RetryWaitMin <= 0 {
		c.RetryWaitMin = def.RetryWaitMin
	}
	if c.RetryWaitMax <= 0 {
		c.RetryWaitMax = def.RetryWaitMax
	}
	return c
}

// Client is the megaverse API client bound to one candidate id. Rate-limit
// responses are retried internally with backoff; errors it returns are
// terminal for that call.
type Client struct {
	candidateID string
	baseURL     *url.URL
	http        *retryablehttp.Client
	limiter     *rate.Limiter
	logger      zerolog.Logger
}

type Option func(*Client)

// WithLogger routes client and retry logging through the given logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.http.Logger = retryableLogger{inner: logger}
	}
}

// WithHTTPClient swaps the underlying transport, primarily for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http.HTTPClient = hc
	}
}

// New constructs a client for one candidate id.
func New(cfg Config, opts ...Option) (*Client, error) {
	candidate := strings.TrimSpace(cfg.CandidateID)
	if candidate == "" {
		return nil, ErrCandidateRequired
	}
	cfg = cfg.WithDefaults()

	baseURL, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("crossmint: parse base url: %w", err)
	}
	if baseURL.Scheme == "" {
		baseURL.Scheme = "https"
	}

	rc := &retryablehttp.Client{
		HTTPClient:   &http.Client{Timeout: cfg.RequestTimeout},
		RetryMax:     cfg.RetryMax,
		RetryWaitMin: cfg.RetryWaitMin,
		RetryWaitMax: cfg.RetryWaitMax,
		// DefaultRetryPolicy retries 429 and transient 5xx/transport
		// failures; DefaultBackoff honors Retry-After on 429.
		CheckRetry: retryablehttp.DefaultRetryPolicy,
		Backoff:    retryablehttp.DefaultBackoff,
		// Passthrough keeps the final response visible so do() can map
		// exhausted retries onto the error taxonomy.
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}

	client := &Client{
		candidateID: candidate,
		baseURL:     baseURL,
		http:        rc,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:      zerolog.Nop(),
	}
	client.http.Logger = retryableLogger{inner: client.logger}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// CurrentMap fetches the live grid for the bound candidate.
func (c *Client) CurrentMap(ctx context.Context) (megaverse.Grid, error) {
	data, err := c.do(ctx, http.MethodGet, "/map", []string{"map", c.candidateID}, nil)
	if err != nil {
		return nil, err
	}
	var resp mapResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return decodeCurrentGrid(resp.Map.Content)
}

// GoalMap fetches the published target grid for the bound candidate.
func (c *Client) GoalMap(ctx context.Context) (megaverse.Grid, error) {
	data, err := c.do(ctx, http.MethodGet, "/map/goal", []string{"map", c.candidateID, "goal"}, nil)
	if err != nil {
		return nil, err
	}
	var resp goalResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return decodeGoalGrid(resp.Goal)
}

func (c *Client) CreatePolyanet(ctx context.Context, pos megaverse.Position) error {
	return c.mutate(ctx, http.MethodPost, "polyanets", objectRequest{Row: pos.Row, Column: pos.Column})
}

func (c *Client) DeletePolyanet(ctx context.Context, pos megaverse.Position) error {
	return c.mutate(ctx, http.MethodDelete, "polyanets", objectRequest{Row: pos.Row, Column: pos.Column})
}

func (c *Client) CreateSoloon(ctx context.Context, pos megaverse.Position, color megaverse.Color) error {
	return c.mutate(ctx, http.MethodPost, "soloons", objectRequest{Row: pos.Row, Column: pos.Column, Color: color})
}

func (c *Client) DeleteSoloon(ctx context.Context, pos megaverse.Position) error {
	return c.mutate(ctx, http.MethodDelete, "soloons", objectRequest{Row: pos.Row, Column: pos.Column})
}

func (c *Client) CreateCometh(ctx context.Context, pos megaverse.Position, direction megaverse.Direction) error {
	return c.mutate(ctx, http.MethodPost, "comeths", objectRequest{Row: pos.Row, Column: pos.Column, Direction: direction})
}

func (c *Client) DeleteCometh(ctx context.Context, pos megaverse.Position) error {
	return c.mutate(ctx, http.MethodDelete, "comeths", objectRequest{Row: pos.Row, Column: pos.Column})
}

func (c *Client) mutate(ctx context.Context, method, resource string, req objectRequest) error {
	req.CandidateID = c.candidateID
	_, err := c.do(ctx, method, "/"+resource, []string{resource}, req)
	return err
}

// do issues one paced, retrying request. endpoint is the metrics/log label;
// segments form the request path under the base URL.
func (c *Client) do(ctx context.Context, method, endpoint string, segments []string, body any) ([]byte, error) {
	var payload any
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("crossmint: marshal request body: %w", err)
		}
		payload = raw
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(segments...).String(), payload)
	if err != nil {
		return nil, fmt.Errorf("crossmint: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.RecordAPIRequest(method, endpoint, 0, time.Since(start))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()
	observability.RecordAPIRequest(method, endpoint, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: retries exhausted: %s", ErrRateLimited, excerpt(data))
	default:
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("body", excerpt(data)).
			Msg("request rejected")
		return nil, &RemoteError{StatusCode: resp.StatusCode, Body: excerpt(data)}
	}
}

func excerpt(data []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(data))
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

// retryableLogger adapts zerolog to the retryablehttp.LeveledLogger interface.
type retryableLogger struct {
	inner zerolog.Logger
}

func (l retryableLogger) Error(msg string, keysAndValues ...any) {
	l.inner.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryableLogger) Warn(msg string, keysAndValues ...any) {
	l.inner.Warn().Fields(keysAndValues).Msg(msg)
}

func (l retryableLogger) Info(msg string, keysAndValues ...any) {
	l.inner.Info().Fields(keysAndValues).Msg(msg)
}

func (l retryableLogger) Debug(msg string, keysAndValues ...any) {
	l.inner.Debug().Fields(keysAndValues).Msg(msg)
}
