package fetch

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Backoff tuning for retryable fetch failures.
// The initial interval is short because most transient failures on a busy
// site clear within a second; the cap keeps the worst case bounded.
const (
	initialBackoffInterval = 500 * time.Millisecond
	maxBackoffInterval     = 5 * time.Second
)

// FetchWithRetry performs Fetch with exponential backoff on retryable
// failures. Permanent failures (4xx other than 429, context cancellation)
// are returned immediately without burning the retry budget.
//
// maxRetries is the number of additional attempts after the first;
// zero makes this equivalent to Fetch.
func (c *Client) FetchWithRetry(ctx context.Context, url string, maxRetries int) ([]byte, error) {
	if maxRetries <= 0 {
		return c.Fetch(ctx, url)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialBackoffInterval
	b.MaxInterval = maxBackoffInterval

	bo := backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx)

	return backoff.RetryWithData(func() ([]byte, error) {
		body, err := c.Fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		if IsRetryable(err) {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}, bo)
}
