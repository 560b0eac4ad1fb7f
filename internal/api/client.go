package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"store-frontend/internal/logger"
	"store-frontend/internal/metrics"
	"store-frontend/internal/session"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultTimeout = 15 * time.Second

// Client issues JSON requests against the store backend on behalf of the
// current session. A 401 from any endpoint ends the session.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          session.Store
	limiter        *rate.Limiter
	onUnauthorized func()
	stats          *metrics.ClientStats
	now            func() time.Time
}

type Option func(*Client)

// WithTransport sets the round-tripper underneath the request id and logging
// layers.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = logger.RequestIDTransport(logger.LoggingTransport(rt))
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithUnauthorizedHandler registers fn to run after a 401 has cleared the session.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

func WithStats(stats *metrics.ClientStats) Option {
	return func(c *Client) {
		c.stats = stats
	}
}

func NewClient(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: logger.RequestIDTransport(logger.LoggingTransport(http.DefaultTransport)),
		},
		store: store,
		stats: &metrics.ClientStats{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Stats() metrics.Snapshot {
	return c.stats.Snapshot()
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, in, out)
}

// Do sends in (if not nil) as JSON and decodes a 2xx body into out (if not nil).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	ctx, _ = logger.EnsureRequestID(ctx)
	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
	)

	timer := metrics.StartTimer()
	c.stats.Requests.Inc()
	defer func() { c.stats.Observe(timer.Duration()) }()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			log.Error("failed to marshal request body", zap.Error(err))
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.authorize(req, log)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.stats.Failures.Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.stats.Failures.Inc()
		log.Error("failed to read response body", zap.Error(err))
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.endSession(log)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.stats.Failures.Inc()
		apiErr := newError(method, path, resp.StatusCode, data)
		log.Info("backend returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Error("failed decoding response", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request, log *zap.Logger) {
	s, err := c.store.Get()
	if err != nil {
		log.Warn("could not read session, sending request without credentials", zap.Error(err))
		return
	}
	if s.Token == "" {
		log.Info("no session token found, request may fail if authentication is required")
		return
	}

	req.Header.Set("Authorization", "Bearer "+s.Token)
	log.Debug("session token added to request header")

	if claims, err := s.Claims(); err == nil && claims.Expired(c.now()) {
		log.Info("session token appears expired", zap.Time("expired_at", claims.Expiry()))
	}
}

func (c *Client) endSession(log *zap.Logger) {
	c.stats.Unauthorized.Inc()
	if err := c.store.Clear(); err != nil {
		log.Error("failed to clear session after 401", zap.Error(err))
	}
	log.Warn("backend rejected credentials, session cleared")

	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
