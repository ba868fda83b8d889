package youtube

import (
	"context"
	"encoding/json"
)

// API defines the interface for YouTube operations
type API interface {
	// ResolveChannelID turns an ID or @handle into a channel ID
	ResolveChannelID(ctx context.Context, input string) (string, error)

	// GetChannelProfile retrieves a channel's snippet and statistics
	GetChannelProfile(ctx context.Context, input string, opts ProfileOptions) (*ChannelProfile, error)

	// ListRecentVideos retrieves a channel's newest uploads
	ListRecentVideos(ctx context.Context, channelID string, maxVideos int) ([]RecentVideo, error)

	// GetVideoStatistics retrieves counters for a single video
	GetVideoStatistics(ctx context.Context, videoID string) (*VideoStatistics, error)
}

// CommentFetcher provides methods for fetching comment threads with pagination
type CommentFetcher interface {
	// ListComments fetches a single page
	ListComments(ctx context.Context, videoID string, pageSize int, pageToken string) (*CommentPage, error)

	// GetAllComments fetches every page
	GetAllComments(ctx context.Context, videoID string, pageSize int) ([]json.RawMessage, error)
}

var (
	_ API            = (*Client)(nil)
	_ CommentFetcher = (*Client)(nil)
)
