package youtube

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// DefaultCommentPageSize is the page size used when none is given
const DefaultCommentPageSize = 100

// ListComments fetches a single page of top-level comment threads.
// An empty NextPageToken marks the last page.
func (c *Client) ListComments(ctx context.Context, videoID string, pageSize int, pageToken string) (*CommentPage, error) {
	if pageSize <= 0 {
		pageSize = DefaultCommentPageSize
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("maxResults", strconv.Itoa(pageSize))
	params.Set("textFormat", "plainText")
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var response listResponse[json.RawMessage]
	if err := c.getJSON(ctx, "commentThreads", params, &response); err != nil {
		return nil, err
	}

	items := response.Items
	if items == nil {
		items = []json.RawMessage{}
	}

	return &CommentPage{
		Items:         items,
		NextPageToken: response.NextPageToken,
	}, nil
}

// GetAllComments walks every page of comment threads and returns them in
// page order.
func (c *Client) GetAllComments(ctx context.Context, videoID string, pageSize int) ([]json.RawMessage, error) {
	all := []json.RawMessage{}
	pageToken := ""

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := c.ListComments(ctx, videoID, pageSize, pageToken)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)

		c.logger.Debug().
			Str("video_id", videoID).
			Int("page", page).
			Int("count", len(result.Items)).
			Int("total", len(all)).
			Msg("Retrieved comment page")

		if result.NextPageToken == "" {
			break
		}
		if c.opts.maxCommentPages > 0 && page >= c.opts.maxCommentPages {
			c.logger.Warn().
				Str("video_id", videoID).
				Int("max_pages", c.opts.maxCommentPages).
				Int("total", len(all)).
				Msg("Comment page limit reached, stopping early")
			break
		}
		pageToken = result.NextPageToken
	}

	return all, nil
}
