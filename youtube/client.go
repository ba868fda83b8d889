package youtube

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Client is a YouTube Data API v3 client authenticated with API keys
type Client struct {
	baseURL    string
	keys       *KeyPool
	httpClient *http.Client
	opts       clientOptions
	logger     zerolog.Logger
}

// NewClient creates a new YouTube client from a single key or a
// comma-separated list of keys
func NewClient(apiKeys string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	keys, err := NewKeyPool(apiKeys)
	if err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := &http.Client{}
	if options.httpClient != nil {
		copied := *options.httpClient
		httpClient = &copied
	}
	httpClient.Timeout = options.timeout

	return &Client{
		baseURL:    strings.TrimRight(options.baseURL, "/"),
		keys:       keys,
		httpClient: httpClient,
		opts:       options,
		logger:     logger.With().Str("component", "youtube").Logger(),
	}, nil
}

// Keys exposes the key pool, mainly for diagnostics
func (c *Client) Keys() *KeyPool {
	return c.keys
}

func (c *Client) endpointURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}
