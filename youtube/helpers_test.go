package youtube

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://youtube.test/youtube/v3"

// step is one scripted transport outcome: either an error or a response
type step struct {
	status int
	body   string
	err    error
}

func ok(body string) step { return step{status: http.StatusOK, body: body} }
func reply(code int, body string) step { return step{status: code, body: body} }
func netErr(msg string) step { return step{err: errors.New(msg)} }

// scriptedTransport replays steps in order and records every request
type scriptedTransport struct {
	mu       sync.Mutex
	steps    []step
	requests []*http.Request
}

func (s *scriptedTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, r)
	if len(s.steps) == 0 {
		return nil, errors.New("unexpected request: " + r.URL.String())
	}
	next := s.steps[0]
	s.steps = s.steps[1:]

	if next.err != nil {
		return nil, next.err
	}
	return &http.Response{
		StatusCode: next.status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(next.body)),
		Request:    r,
	}, nil
}

func (s *scriptedTransport) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *scriptedTransport) query(i int) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[i].URL.Query()
}

func (s *scriptedTransport) path(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[i].URL.Path
}

// sleepRecorder stands in for time.Sleep and remembers every delay
type sleepRecorder struct {
	delays []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func newScriptedClient(t *testing.T, keys string, steps ...step) (*Client, *scriptedTransport, *sleepRecorder) {
	t.Helper()

	transport := &scriptedTransport{steps: steps}
	sleeper := &sleepRecorder{}
	client, err := NewClient(keys, zerolog.Nop(),
		WithBaseURL(testBaseURL),
		WithHTTPClient(&http.Client{Transport: transport}),
		WithSleepFunc(sleeper.sleep),
	)
	require.NoError(t, err)
	return client, transport, sleeper
}
