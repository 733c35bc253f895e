package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/manav03panchal/tasksync/internal/errors"
)

// DefaultRetryDelays is the wait before each retry.
var DefaultRetryDelays = []time.Duration{5 * time.Second, 30 * time.Second}

// maxRetryAfter caps how long a Retry-After header can stall a check.
const maxRetryAfter = time.Minute

// StatusError is a non-2xx webhook response.
type StatusError struct {
	Code       int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Code == http.StatusTooManyRequests {
		return "rate limited (HTTP 429)"
	}
	if e.Body == "" {
		return fmt.Sprintf("webhook returned HTTP %d", e.Code)
	}
	return fmt.Sprintf("webhook returned HTTP %d: %s", e.Code, e.Body)
}

// Temporary reports whether resending the same payload may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// HTTPClient posts webhook payloads, retrying rate limits, server errors
// and network failures.
type HTTPClient struct {
	client     *http.Client
	maxRetries int
	retryDelay []time.Duration
}

// NewHTTPClient creates a client with a per-request timeout (30s when not
// positive) and a retry count.
func NewHTTPClient(timeout time.Duration, maxRetries int) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		client:     &http.Client{Timeout: timeout},
		maxRetries: max(maxRetries, 0),
		retryDelay: DefaultRetryDelays,
	}
}

// WithRetryDelays replaces the retry delays. The last one repeats.
func (c *HTTPClient) WithRetryDelays(delays ...time.Duration) *HTTPClient {
	c.retryDelay = delays
	return c
}

func (c *HTTPClient) delay(attempt int) time.Duration {
	switch n := len(c.retryDelay); {
	case n == 0:
		return 0
	case attempt > n:
		return c.retryDelay[n-1]
	default:
		return c.retryDelay[attempt-1]
	}
}

// SendResult describes one delivery, including its retries.
type SendResult struct {
	StatusCode int
	Duration   time.Duration
	Attempts   int
	Error      error
}

// Send POSTs body to url until it is accepted, a permanent failure occurs,
// retries run out or ctx is done.
func (c *HTTPClient) Send(ctx context.Context, url, contentType string, body []byte) *SendResult {
	start := time.Now()
	res := &SendResult{}
	defer func() { res.Duration = time.Since(start) }()

	var wait time.Duration
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait = max(wait, c.delay(attempt))
			select {
			case <-ctx.Done():
				res.Error = ctx.Err()
				return res
			case <-time.After(wait):
			}
		}
		res.Attempts = attempt + 1

		code, err := c.post(ctx, url, contentType, body)
		res.StatusCode, res.Error = code, err
		if err == nil {
			return res
		}
		if ctx.Err() != nil {
			return res
		}

		var se *StatusError
		if errors.As(err, &se) {
			if !se.Temporary() {
				return res
			}
			wait = se.RetryAfter
		} else {
			wait = 0
		}
	}
	return res
}

func (c *HTTPClient) post(ctx context.Context, url, contentType string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, errors.NewUserErrorWithField("url", url, "invalid webhook URL", "Use a full http(s) URL.")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", Brand+"/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, &StatusError{
		Code:       resp.StatusCode,
		Body:       strings.TrimSpace(string(snippet)),
		RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
	}
}

// retryAfter parses a Retry-After value given in seconds.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}
