package aegis

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultBaseURL = "https://api.aegisai.com"
	defaultTimeout = 30 * time.Second
)

// Response headers the executor consumes on every attempt.
const (
	headerRequestID        = "x-request-id"
	headerMonthlyLimit     = "x-monthly-limit"
	headerMonthlyUsed      = "x-monthly-used"
	headerMonthlyRemaining = "x-monthly-remaining"
)

// RetryConfig configures retry behavior for transient request failures
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts (0 means no retry)
	MaxRetries uint64
	// InitialInterval is the initial backoff interval
	InitialInterval time.Duration
	// MaxInterval is the maximum backoff interval between retries.
	MaxInterval time.Duration
	// Multiplier is the backoff multiplier (e.g., 2.0 for exponential backoff)
	Multiplier float64
	// RandomizationFactor adds jitter to prevent thundering herd. Set to 0
	// for fully deterministic delays.
	RandomizationFactor float64
}

// DefaultRetryConfig returns our recommended retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      5,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
		// A high randomization factor is recommended to prevent thundering herd.
		RandomizationFactor: 0.65,
	}
}

// UsageSnapshot is the service's self-reported quota state as of the most
// recent response that carried it.
type UsageSnapshot struct {
	// Limit is the monthly request allowance.
	Limit int64
	// Used is how much of the allowance has been consumed.
	Used int64
	// Remaining is what is left this month.
	Remaining int64
}

// option is a function that configures the client
type option func(*cfg)

// WithAPIKey sets the API key for the client. If you do not have an API key,
// please reach out to support@aegisai.com to request one.
func WithAPIKey(apiKey string) option {
	return func(c *cfg) {
		c.apiKey = apiKey
	}
}

// WithBaseURL sets the base URL for the client. Unless you have been told to
// use a different endpoint, there's no need to set this.
func WithBaseURL(baseURL string) option {
	return func(c *cfg) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the default timeout for requests. If not set, the default
// timeout is 30 seconds. Ignored when a custom Transport is supplied.
func WithTimeout(timeout time.Duration) option {
	return func(c *cfg) {
		c.timeout = timeout
	}
}

// WithRetryConfig sets custom retry configuration for the client
func WithRetryConfig(retryConfig RetryConfig) option {
	return func(c *cfg) {
		c.retryConfig = retryConfig
	}
}

// WithDisableRetry disables automatic retry of transient failures
func WithDisableRetry() option {
	return func(c *cfg) {
		c.retryConfig.MaxRetries = 0
	}
}

// WithTransport replaces the built-in net/http transport with a
// host-supplied one.
func WithTransport(transport Transport) option {
	return func(c *cfg) {
		c.transport = transport
	}
}

// WithRetryNotify registers a callback invoked before each backoff sleep
// with the error that triggered the retry and the upcoming delay. Useful for
// host-side logging of retry churn.
func WithRetryNotify(notify func(err error, next time.Duration)) option {
	return func(c *cfg) {
		c.retryNotify = notify
	}
}

// cfg holds configuration for the Aegis client
type cfg struct {
	// apiKey is your Aegis API key
	apiKey string
	// baseURL is the Aegis API endpoint (default: "https://api.aegisai.com")
	baseURL string
	// timeout is the default timeout for requests
	timeout time.Duration
	// retryConfig configures retry behavior for transient failures
	retryConfig RetryConfig
	// transport overrides the built-in net/http transport
	transport Transport
	// retryNotify observes scheduled backoff delays
	retryNotify func(err error, next time.Duration)
}

// Client is the main Aegis SDK client. A single Client is safe for
// concurrent use; the quota snapshot and last-request-id it tracks are
// guarded by a mutex and read back as copies.
type Client struct {
	config    *cfg
	transport Transport

	mu            sync.RWMutex
	usage         *UsageSnapshot
	lastRequestID string
}

// New creates a new Aegis client
func New(options ...option) (*Client, error) {
	config := &cfg{
		baseURL:     defaultBaseURL,
		timeout:     defaultTimeout,
		retryConfig: DefaultRetryConfig(),
	}

	for _, option := range options {
		option(config)
	}

	if config.apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	transport := config.transport
	if transport == nil {
		transport = newHTTPTransport(config.timeout)
	}

	return &Client{
		config:    config,
		transport: transport,
	}, nil
}

// Usage returns a copy of the most recent quota snapshot and whether one has
// been observed yet. The snapshot is replaced wholesale after any response
// that carries all three x-monthly-* headers, success or failure.
func (c *Client) Usage() (UsageSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.usage == nil {
		return UsageSnapshot{}, false
	}
	return *c.usage, true
}

// LastRequestID returns the x-request-id of the most recent response, or ""
// if none has been seen.
func (c *Client) LastRequestID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRequestID
}

// createBackoff creates a configured exponential backoff
func createBackoff(config RetryConfig) backoff.BackOff {
	if config.MaxRetries == 0 {
		return &backoff.StopBackOff{}
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = config.InitialInterval
	expBackoff.MaxInterval = config.MaxInterval
	expBackoff.Multiplier = config.Multiplier
	expBackoff.RandomizationFactor = config.RandomizationFactor
	expBackoff.MaxElapsedTime = 0 // We control retries with WithMaxRetries

	return backoff.WithMaxRetries(expBackoff, config.MaxRetries)
}

// Do sends one request through the resilient executor and returns the parsed
// response body. It is the escape hatch for endpoints the typed methods do
// not cover; pass a null body for bodyless methods.
//
// Transient failures (rate limits, 5xx responses, connection errors) are
// retried with exponential backoff up to the configured attempt limit; fatal
// failures (authentication, validation, not-found, quota, plan access)
// propagate immediately. Cancelling ctx aborts both the in-flight call and
// any backoff sleep.
func (c *Client) Do(ctx context.Context, method, path string, body Value) (Value, error) {
	var payload []byte
	if !body.IsNull() {
		payload = []byte(Serialize(body))
	}

	header := make(http.Header)
	header.Set("Authorization", "Bearer "+c.config.apiKey)
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")

	req := &Request{
		Method: method,
		URL:    c.config.baseURL + path,
		Header: header,
		Body:   payload,
	}

	var result Value
	operation := func() error {
		resp, err := c.transport.RoundTrip(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				// The caller gave up; don't dress this up as a network fault.
				return backoff.Permanent(ctx.Err())
			}
			return classifyTransportError(err)
		}

		c.recordResponseMeta(resp.Header)

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			result = Parse(string(resp.Body))
			return nil
		}

		apiErr := classifyResponse(resp.StatusCode, string(resp.Body), resp.Header.Get(headerRequestID))
		if apiErr.Kind.Fatal() {
			return backoff.Permanent(apiErr)
		}
		return apiErr
	}

	b := backoff.WithContext(createBackoff(c.config.retryConfig), ctx)
	if err := backoff.RetryNotify(operation, b, c.config.retryNotify); err != nil {
		return Value{}, err
	}
	return result, nil
}

// recordResponseMeta captures the request-id and quota headers from a
// response. The request-id is always overwritten when present. The usage
// snapshot is only replaced when all three quota headers parse as integers;
// a partial set leaves the previous snapshot untouched.
func (c *Client) recordResponseMeta(header http.Header) {
	requestID := header.Get(headerRequestID)

	var usage *UsageSnapshot
	limit, errLimit := strconv.ParseInt(header.Get(headerMonthlyLimit), 10, 64)
	used, errUsed := strconv.ParseInt(header.Get(headerMonthlyUsed), 10, 64)
	remaining, errRemaining := strconv.ParseInt(header.Get(headerMonthlyRemaining), 10, 64)
	if errLimit == nil && errUsed == nil && errRemaining == nil {
		usage = &UsageSnapshot{Limit: limit, Used: used, Remaining: remaining}
	}

	if requestID == "" && usage == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if requestID != "" {
		c.lastRequestID = requestID
	}
	if usage != nil {
		c.usage = usage
	}
}
