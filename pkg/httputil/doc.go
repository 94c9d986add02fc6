// Package httputil provides the HTTP plumbing used to fetch treemap data.
//
// # Overview
//
//   - [Client]: GET requests with a timeout, User-Agent, status mapping
//     and observability hooks
//   - [Retry]: Automatic retry with exponential backoff
//
// # Retry
//
// A [Client] makes a single attempt unless built with [WithRetry].
// [Retry] only retries errors wrapped in [RetryableError]. [Client] wraps
// connection failures, 5xx and 429 responses; everything else (404, 400,
// a body that fails to read) is returned immediately.
//
//	c := httputil.NewClient()
//	body, err := c.Fetch(ctx, "https://example.com/movie-data.json")
//
// Errors returned by [Client.Fetch] are *errors.Error values carrying a
// NETWORK_ERROR, NOT_FOUND, TIMEOUT or RATE_LIMITED code.
package httputil
