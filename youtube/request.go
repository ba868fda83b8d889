package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/googleapi"
)

// Request describes a single GET against the API. Params are never
// modified; the active key is injected into a copy.
type Request struct {
	Endpoint string
	Params   url.Values
	// MaxAttempts bounds retries on network failure. Zero uses the client default.
	MaxAttempts int
}

// transportError marks a failure that happened before a complete response
// was read and is therefore worth retrying.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }

func (e *transportError) Unwrap() error { return e.err }

// Do performs the request, retrying network failures with exponential
// backoff and rotating keys when the API answers 403 or 429. Quota
// rotation does not consume an attempt and never sleeps.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = c.opts.maxAttempts
	}
	endpoint := c.endpointURL(req.Endpoint)
	schedule := c.newBackOff()

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := c.doWithRotation(ctx, endpoint, req.Params)
		if err == nil {
			return body, nil
		}

		var tErr *transportError
		if !errors.As(err, &tErr) {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		lastErr = tErr.err

		if attempt == maxAttempts-1 {
			break
		}

		delay := schedule.NextBackOff()
		c.logger.Warn().
			Err(lastErr).
			Str("endpoint", req.Endpoint).
			Int("attempt", attempt+1).
			Int("max_attempts", maxAttempts).
			Dur("backoff", delay).
			Msg("Request failed, retrying")

		if err := c.opts.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, &NetworkError{URL: endpoint, Attempts: maxAttempts, Err: lastErr}
}

// doWithRotation sends the request once per key until a non-quota answer
// arrives or the pool runs out. It terminates because rotation only moves
// forward.
func (c *Client) doWithRotation(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	for {
		keyIndex := c.keys.Index()
		resp, body, err := c.send(ctx, endpoint, params, c.keys.Current())
		if err != nil {
			return nil, &transportError{err: err}
		}

		c.logger.Debug().
			Str("url", endpoint).
			Int("status", resp.StatusCode).
			Int("key_index", keyIndex).
			Msg("YouTube API response")

		if !isQuotaStatus(resp.StatusCode) {
			if !json.Valid(body) {
				return nil, fmt.Errorf("failed to parse response (status %d): invalid JSON", resp.StatusCode)
			}
			return json.RawMessage(body), nil
		}

		reason := quotaReason(resp, body)
		if !c.keys.Rotate() {
			return nil, &QuotaExhaustedError{
				StatusCode: resp.StatusCode,
				Keys:       c.keys.Len(),
				Reason:     reason,
			}
		}

		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("reason", reason).
			Int("key_index", c.keys.Index()).
			Int("keys", c.keys.Len()).
			Msg("API key rejected, rotating to next key")
	}
}

// send performs a single GET with key injected into a copy of params
func (c *Client) send(ctx context.Context, endpoint string, params url.Values, key string) (*http.Response, []byte, error) {
	query := make(url.Values, len(params)+1)
	for name, values := range params {
		query[name] = append([]string(nil), values...)
	}
	query.Set("key", key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.opts.userAgent != "" {
		req.Header.Set("User-Agent", c.opts.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp, body, nil
}

// getJSON performs a request and decodes the body into out
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	body, err := c.Do(ctx, Request{Endpoint: endpoint, Params: params})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}
	return nil
}

// newBackOff returns a jitter-free schedule of unit, 2*unit, 4*unit, ...
func (c *Client) newBackOff() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     c.opts.backoffUnit,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         time.Duration(math.MaxInt64),
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}

func isQuotaStatus(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests
}

// quotaReason extracts the error reason from a Google API error body
func quotaReason(resp *http.Response, body []byte) string {
	err := googleapi.CheckResponse(&http.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       io.NopCloser(bytes.NewReader(body)),
	})

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return ""
	}
	if len(apiErr.Errors) > 0 && apiErr.Errors[0].Reason != "" {
		return apiErr.Errors[0].Reason
	}
	return apiErr.Message
}
