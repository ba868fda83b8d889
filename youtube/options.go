package youtube

import (
	"context"
	"net/http"
	"time"
)

const (
	defaultBaseURL     = "https://www.googleapis.com/youtube/v3"
	defaultTimeout     = 20 * time.Second
	defaultMaxAttempts = 5
	defaultBackoffUnit = time.Second
	defaultUserAgent   = "ytchannel"
)

// SleepFunc blocks for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL         string
	httpClient      *http.Client
	timeout         time.Duration
	maxAttempts     int
	backoffUnit     time.Duration
	sleep           SleepFunc
	userAgent       string
	maxCommentPages int
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:     defaultBaseURL,
		timeout:     defaultTimeout,
		maxAttempts: defaultMaxAttempts,
		backoffUnit: defaultBackoffUnit,
		sleep:       sleepContext,
		userAgent:   defaultUserAgent,
	}
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets a custom HTTP client. The client is copied and the
// copy's Timeout is set to the per-attempt timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithMaxAttempts sets how many times a request is tried on network failure.
func WithMaxAttempts(attempts int) Option {
	return func(o *clientOptions) {
		if attempts > 0 {
			o.maxAttempts = attempts
		}
	}
}

// WithBackoffUnit sets the base delay; attempt n waits unit * 2^n.
func WithBackoffUnit(unit time.Duration) Option {
	return func(o *clientOptions) {
		if unit > 0 {
			o.backoffUnit = unit
		}
	}
}

// WithSleepFunc replaces the function used to wait between attempts.
func WithSleepFunc(sleep SleepFunc) Option {
	return func(o *clientOptions) {
		if sleep != nil {
			o.sleep = sleep
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithMaxCommentPages caps GetAllComments. Zero means no cap.
func WithMaxCommentPages(pages int) Option {
	return func(o *clientOptions) {
		if pages >= 0 {
			o.maxCommentPages = pages
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
