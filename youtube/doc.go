// Package youtube provides a client for the YouTube Data API v3 that is
// authenticated with one or more API keys.
//
// # Keys and quota
//
// The client is built from a single key or a comma-separated list. When the
// API answers 403 or 429 the next key is tried immediately. Rotation moves
// forward only; once the last key is rejected the call fails with a
// *QuotaExhaustedError.
//
// # Retries
//
// Network failures (connection errors, timeouts, truncated bodies) are
// retried with the same key after waiting unit * 2^attempt. After the last
// attempt the call fails with a *NetworkError.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := youtube.NewClient("key1,key2", logger,
//		youtube.WithTimeout(20*time.Second),
//		youtube.WithMaxAttempts(5),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := client.GetChannelProfile(ctx, "@YouTube", youtube.ProfileOptions{
//		IncludeRecentVideos: true,
//		MaxVideos:           5,
//	})
//
// # Unknown values
//
// Counters and snippet strings that are missing or unparseable are nil
// pointers and encode as JSON null. They are never reported as zero.
//
// # Error Handling
//
//	switch {
//	case errors.Is(err, youtube.ErrQuotaExhausted):
//	case errors.Is(err, youtube.ErrNotFound):
//	case errors.Is(err, youtube.ErrUnresolvableIdentifier):
//	case errors.Is(err, youtube.ErrNetwork):
//	}
package youtube
