package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/treemap/pkg/buildinfo"
	errs "github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/observability"
)

const (
	// DefaultTimeout bounds a single request, including reading the body.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes caps the accepted response size (32 MiB).
	DefaultMaxBytes = 32 << 20

	// DefaultRetryDelay is the first backoff delay when retries are enabled.
	DefaultRetryDelay = time.Second
)

// Client performs GET requests against a data source.
// It applies default headers and maps HTTP status codes to coded errors.
// By default each Fetch is a single GET; [WithRetry] enables retrying
// transient failures with exponential backoff.
type Client struct {
	http     *http.Client
	headers  map[string]string
	attempts int
	delay    time.Duration
	maxBytes int64
}

// Option configures a [Client].
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.http.Timeout = d } }

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option { return func(c *Client) { c.headers[key] = value } }

// WithRetry sets the number of attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) { c.attempts, c.delay = attempts, delay }
}

// WithMaxBytes caps the response body size.
func WithMaxBytes(n int64) Option { return func(c *Client) { c.maxBytes = n } }

// NewClient creates a Client with a 10s timeout, a single attempt and a
// treemap User-Agent.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		headers:  map[string]string{"User-Agent": buildinfo.UserAgent(), "Accept": "application/json"},
		attempts: 1,
		delay:    DefaultRetryDelay,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch GETs rawURL and returns the response body. Transient failures are
// retried only when the client was built with [WithRetry]; the returned
// error is an *errors.Error.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errs.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	var body []byte
	err := Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		body, err = c.do(ctx, rawURL)
		return err
	})
	if err != nil {
		var re *RetryableError
		if errors.As(err, &re) {
			err = re.Err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if errs.GetCode(err) == "" {
				return nil, errs.Wrap(errs.ErrCodeTimeout, err, "fetch %s", rawURL)
			}
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := hostPath(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "GET %s", rawURL))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &errs.StatusError{URL: rawURL, StatusCode: resp.StatusCode}
		err := errs.Wrap(se.Code(), se, "fetch %s", rawURL)
		if se.Transient() {
			return nil, Retryable(err)
		}
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "read body of %s", rawURL))
	}
	if int64(len(data)) > c.maxBytes {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "response from %s exceeds %d bytes", rawURL, c.maxBytes)
	}
	return data, nil
}

func hostPath(u *url.URL) (string, string) {
	if u == nil {
		return "", ""
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return u.Host, path
}
