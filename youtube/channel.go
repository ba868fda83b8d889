package youtube

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

var channelIDPattern = regexp.MustCompile(`^UC[0-9A-Za-z_-]+$`)

// IsChannelID reports whether input already has the canonical channel ID shape
func IsChannelID(input string) bool {
	return channelIDPattern.MatchString(input)
}

// ResolveChannelID turns a channel ID or an @handle into a channel ID.
// Channel IDs are returned unchanged without a request.
func (c *Client) ResolveChannelID(ctx context.Context, input string) (string, error) {
	if IsChannelID(input) {
		return input, nil
	}
	if !strings.HasPrefix(input, "@") || len(input) == 1 {
		return "", &UnresolvableIdentifierError{Input: input}
	}

	params := url.Values{}
	params.Set("part", "id")
	params.Set("forHandle", input)

	var response listResponse[idItem]
	if err := c.getJSON(ctx, "channels", params, &response); err != nil {
		return "", err
	}
	if len(response.Items) == 0 || response.Items[0].ID == "" {
		return "", &NotFoundError{Resource: "channel", Input: input}
	}

	c.logger.Debug().
		Str("handle", input).
		Str("channel_id", response.Items[0].ID).
		Msg("Resolved channel handle")

	return response.Items[0].ID, nil
}

// GetChannelProfile fetches snippet and statistics for a channel given by
// ID or handle, optionally with its most recent uploads.
func (c *Client) GetChannelProfile(ctx context.Context, input string, opts ProfileOptions) (*ChannelProfile, error) {
	channelID, err := c.ResolveChannelID(ctx, input)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", channelID)

	var response listResponse[channelItem]
	if err := c.getJSON(ctx, "channels", params, &response); err != nil {
		return nil, err
	}
	if len(response.Items) == 0 {
		return nil, &NotFoundError{Resource: "channel", Input: input}
	}

	profile := newChannelProfile(response.Items[0])
	if profile.ID == "" {
		profile.ID = channelID
	}

	if opts.IncludeRecentVideos {
		videos, err := c.ListRecentVideos(ctx, channelID, opts.MaxVideos)
		if err != nil {
			return nil, err
		}
		profile.RecentVideos = videos
	}

	return profile, nil
}
