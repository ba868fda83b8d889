package youtube

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// maxSearchResults is the largest maxResults the search endpoint accepts
const maxSearchResults = 50

// ListRecentVideos returns up to maxVideos of the channel's newest uploads
// with their statistics. Videos come back in the order of the batched
// lookup response.
func (c *Client) ListRecentVideos(ctx context.Context, channelID string, maxVideos int) ([]RecentVideo, error) {
	if maxVideos <= 0 {
		return []RecentVideo{}, nil
	}
	if maxVideos > maxSearchResults {
		maxVideos = maxSearchResults
	}

	params := url.Values{}
	params.Set("part", "id")
	params.Set("channelId", channelID)
	params.Set("maxResults", strconv.Itoa(maxVideos))
	params.Set("order", "date")
	params.Set("type", "video")

	var search listResponse[searchItem]
	if err := c.getJSON(ctx, "search", params, &search); err != nil {
		return nil, err
	}

	videoIDs := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.ID.VideoID != "" {
			videoIDs = append(videoIDs, item.ID.VideoID)
		}
	}
	if len(videoIDs) == 0 {
		return []RecentVideo{}, nil
	}

	params = url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", strings.Join(videoIDs, ","))

	var lookup listResponse[videoItem]
	if err := c.getJSON(ctx, "videos", params, &lookup); err != nil {
		return nil, err
	}

	videos := make([]RecentVideo, 0, len(lookup.Items))
	for _, item := range lookup.Items {
		videos = append(videos, newRecentVideo(item))
	}

	c.logger.Debug().
		Str("channel_id", channelID).
		Int("searched", len(videoIDs)).
		Int("count", len(videos)).
		Msg("Retrieved recent videos")

	return videos, nil
}

// GetVideoStatistics fetches view, like and comment counters for one video
func (c *Client) GetVideoStatistics(ctx context.Context, videoID string) (*VideoStatistics, error) {
	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", videoID)

	var response listResponse[videoItem]
	if err := c.getJSON(ctx, "videos", params, &response); err != nil {
		return nil, err
	}
	if len(response.Items) == 0 {
		return nil, &NotFoundError{Resource: "video", Input: videoID}
	}

	stats := response.Items[0].Statistics
	return &VideoStatistics{
		ViewCount:    stats.ViewCount.value,
		LikeCount:    stats.LikeCount.value,
		CommentCount: stats.CommentCount.value,
	}, nil
}
