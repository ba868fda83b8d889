package youtube

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	ytapi "google.golang.org/api/youtube/v3"
)

// ChannelProfile is the aggregate view of a channel. Nil fields are unknown:
// they were missing from the response or could not be parsed.
type ChannelProfile struct {
	ID              string                  `json:"id"`
	Title           *string                 `json:"title"`
	Description     *string                 `json:"description"`
	CustomURL       *string                 `json:"custom_url"`
	Thumbnails      *ytapi.ThumbnailDetails `json:"thumbnails"`
	ViewCount       *int64                  `json:"view_count"`
	SubscriberCount *int64                  `json:"subscriber_count"`
	VideoCount      *int64                  `json:"video_count"`
	RecentVideos    []RecentVideo           `json:"recent_videos,omitempty"`
}

// RecentVideo is a video summary attached to a channel profile
type RecentVideo struct {
	ID           string     `json:"id"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	ViewCount    *int64     `json:"view_count"`
	LikeCount    *int64     `json:"like_count"`
	CommentCount *int64     `json:"comment_count"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

// VideoStatistics holds the public counters of a single video
type VideoStatistics struct {
	ViewCount    *int64 `json:"view_count"`
	LikeCount    *int64 `json:"like_count"`
	CommentCount *int64 `json:"comment_count"`
}

// CommentPage is one page of comment threads. Items are passed through
// exactly as the API returned them.
type CommentPage struct {
	Items         []json.RawMessage `json:"items"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

// ProfileOptions controls what GetChannelProfile attaches to the profile
type ProfileOptions struct {
	IncludeRecentVideos bool
	MaxVideos           int
}

// API response types

type listResponse[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

type channelItem struct {
	ID         string            `json:"id"`
	Snippet    channelSnippet    `json:"snippet"`
	Statistics channelStatistics `json:"statistics"`
}

type channelSnippet struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	CustomURL   *string                 `json:"customUrl"`
	Thumbnails  *ytapi.ThumbnailDetails `json:"thumbnails"`
}

type channelStatistics struct {
	ViewCount       count `json:"viewCount"`
	SubscriberCount count `json:"subscriberCount"`
	VideoCount      count `json:"videoCount"`
}

type videoItem struct {
	ID         string          `json:"id"`
	Snippet    videoSnippet    `json:"snippet"`
	Statistics videoStatistics `json:"statistics"`
}

type videoSnippet struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PublishedAt *string `json:"publishedAt"`
}

type videoStatistics struct {
	ViewCount    count `json:"viewCount"`
	LikeCount    count `json:"likeCount"`
	CommentCount count `json:"commentCount"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
}

type idItem struct {
	ID string `json:"id"`
}

// count is a statistics field. YouTube sends counters as quoted integers;
// plain numbers are accepted too and anything else decodes as unknown
// instead of failing the whole response.
type count struct {
	value *int64
}

func (c *count) UnmarshalJSON(data []byte) error {
	c.value = parseCount(strings.Trim(string(data), `"`))
	return nil
}

func parseCount(s string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func newChannelProfile(item channelItem) *ChannelProfile {
	return &ChannelProfile{
		ID:              item.ID,
		Title:           item.Snippet.Title,
		Description:     item.Snippet.Description,
		CustomURL:       item.Snippet.CustomURL,
		Thumbnails:      item.Snippet.Thumbnails,
		ViewCount:       item.Statistics.ViewCount.value,
		SubscriberCount: item.Statistics.SubscriberCount.value,
		VideoCount:      item.Statistics.VideoCount.value,
	}
}

func newRecentVideo(item videoItem) RecentVideo {
	video := RecentVideo{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ViewCount:    item.Statistics.ViewCount.value,
		LikeCount:    item.Statistics.LikeCount.value,
		CommentCount: item.Statistics.CommentCount.value,
	}
	if item.Snippet.PublishedAt != nil {
		if t, err := dateparse.ParseAny(*item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = &t
		}
	}
	return video
}
