// Package query is the REST client of the explorer. Every endpoint has one method
// returning the parsed response.
package query

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "query").Logger()
}

// SetLogger allows setting a custom logger
func SetLogger(l zerolog.Logger) {
	log = l.With().Str("component", "query").Logger()
}

const healthPath = "/blocks/latest"

var tracer = otel.Tracer("github.com/Cogwheel-Validator/spectra-explorer/explorer/query")

// HTTPError is returned for responses with a status code >= 400
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == 404
}

// Config controls endpoints, retries and failover
type Config struct {
	// URLs of the REST API, the first one is the primary
	URLs []string
	// MaxRetries is the number of times a failed request is retried on the current endpoint
	MaxRetries int
	// RetryDelay is the initial delay between retries
	RetryDelay time.Duration
	// HealthCheckInterval is how often a failed over client checks the primary again
	HealthCheckInterval time.Duration
	Timeout             time.Duration
}

// DefaultConfig returns the defaults for a single endpoint
func DefaultConfig(apiURL string) Config {
	return Config{
		URLs:                []string{apiURL},
		MaxRetries:          2,
		RetryDelay:          500 * time.Millisecond,
		HealthCheckInterval: 30 * time.Second,
		Timeout:             10 * time.Second,
	}
}

// Client queries the chain REST API with failover to backup endpoints
type Client struct {
	http          *resty.Client
	primaryURL    string
	backupURLs    []string
	currentURL    string
	mu            sync.RWMutex
	healthChecker *healthChecker
	config        Config
}

type healthChecker struct {
	client    *Client
	stopCh    chan struct{}
	stoppedCh chan struct{}
	once      sync.Once
}

// NewClient validates the endpoints and returns a ready client. Close stops the
// background health checker started when backups are configured.
func NewClient(config Config) (*Client, error) {
	if len(config.URLs) == 0 {
		return nil, errors.New("at least one API URL is required")
	}

	urls := make([]string, 0, len(config.URLs))
	for i, u := range config.URLs {
		parsed, err := url.Parse(u)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			if i == 0 {
				return nil, fmt.Errorf("invalid primary API URL %q", u)
			}
			log.Warn().Str("url", u).Msg("Invalid backup URL, skipping")
			continue
		}
		urls = append(urls, strings.TrimSuffix(u, "/"))
	}

	httpClient := resty.New().
		SetTimeout(config.Timeout).
		SetRetryCount(config.MaxRetries).
		SetRetryWaitTime(config.RetryDelay).
		SetRetryMaxWaitTime(8*config.RetryDelay).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	c := &Client{
		http:       httpClient,
		primaryURL: urls[0],
		backupURLs: urls[1:],
		currentURL: urls[0],
		config:     config,
	}
	if len(c.backupURLs) > 0 && config.HealthCheckInterval > 0 {
		c.startHealthChecker()
	}

	log.Info().
		Str("primary", c.primaryURL).
		Int("backups", len(c.backupURLs)).
		Msg("API client initialized")
	return c, nil
}

func (c *Client) startHealthChecker() {
	h := &healthChecker{
		client:    c,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
	c.healthChecker = h

	go func() {
		defer close(h.stoppedCh)
		ticker := time.NewTicker(c.config.HealthCheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-h.stopCh:
				return
			case <-ticker.C:
				h.checkAndRestore()
			}
		}
	}()
}

func (h *healthChecker) stop() {
	h.once.Do(func() {
		close(h.stopCh)
		<-h.stoppedCh
	})
}

// checkAndRestore switches back to the primary endpoint once it answers again
func (h *healthChecker) checkAndRestore() {
	current := h.client.CurrentURL()
	if current == h.client.primaryURL {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), h.client.config.Timeout)
	defer cancel()
	if h.client.isEndpointHealthy(ctx, h.client.primaryURL) {
		h.client.mu.Lock()
		h.client.currentURL = h.client.primaryURL
		h.client.mu.Unlock()
		log.Info().Str("url", h.client.primaryURL).Msg("Restored primary endpoint")
	}
}

func (c *Client) isEndpointHealthy(ctx context.Context, endpoint string) bool {
	resp, err := c.http.R().SetContext(ctx).Get(endpoint + healthPath)
	if err != nil {
		log.Debug().Err(err).Str("url", endpoint).Msg("Health check failed")
		return false
	}
	log.Debug().Str("url", endpoint).Int("status", resp.StatusCode()).Msg("Health check response")
	return resp.StatusCode() == 200
}

// CurrentURL returns the endpoint requests are sent to
func (c *Client) CurrentURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentURL
}

// failover moves to the next healthy endpoint, in configured order
func (c *Client) failover(ctx context.Context) bool {
	c.mu.RLock()
	current := c.currentURL
	c.mu.RUnlock()

	all := append([]string{c.primaryURL}, c.backupURLs...)
	currentIdx := 0
	for i, u := range all {
		if u == current {
			currentIdx = i
			break
		}
	}

	for i := 1; i < len(all); i++ {
		next := all[(currentIdx+i)%len(all)]
		if c.isEndpointHealthy(ctx, next) {
			c.mu.Lock()
			c.currentURL = next
			c.mu.Unlock()
			log.Info().Str("url", next).Msg("Failover to endpoint")
			return true
		}
	}

	log.Warn().Str("url", current).Msg("All endpoints unhealthy, staying on current")
	return false
}

// Close stops the health checker
func (c *Client) Close() {
	if c.healthChecker != nil {
		c.healthChecker.stop()
	}
}

func (c *Client) request(ctx context.Context, base, path string, params map[string]string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(base + path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 400 {
		return nil, &HTTPError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}
	return resp.Body(), nil
}

// doRequestWithFailover sends the request to the current endpoint, resty retries it,
// and when it still fails with a server side error the next healthy endpoint gets one try.
// Client errors (4xx) are returned right away.
func (c *Client) doRequestWithFailover(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	body, err := c.request(ctx, c.CurrentURL(), path, params)
	if err == nil {
		return body, nil
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode < 500 {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, err
	}

	if len(c.backupURLs) > 0 && c.failover(ctx) {
		body, ferr := c.request(ctx, c.CurrentURL(), path, params)
		if ferr != nil {
			return nil, fmt.Errorf("failover request failed: %w (original: %w)", ferr, err)
		}
		return body, nil
	}
	return nil, fmt.Errorf("request failed after %d retries: %w", c.config.MaxRetries+1, err)
}

// get performs the request inside a span and decodes the response into out
func (c *Client) get(ctx context.Context, endpoint, path string, params map[string]string, out any) error {
	ctx, span := tracer.Start(ctx, "query."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.path", path)),
	)
	defer span.End()

	start := time.Now()
	body, err := c.doRequestWithFailover(ctx, path, params)
	recordRequest(ctx, endpoint, err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Debug().Err(err).Str("endpoint", endpoint).Msg("API request failed")
		return fmt.Errorf("%s: %w", endpoint, err)
	}

	if err := decodeBody(body, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")
		return fmt.Errorf("%s: failed to parse response: %w", endpoint, err)
	}
	return nil
}

// decodeBody parses a JSON body. Some gateways send the body as a JSON encoded
// string, it is unwrapped and parsed again.
func decodeBody(body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return err
		}
		trimmed = []byte(inner)
	}
	return json.Unmarshal(trimmed, out)
}
