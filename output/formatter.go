package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/s0up4200/ytchannel/youtube"
)

const (
	branch   = "\u251c"
	lastLeaf = "\u2570"
	pipe     = "\u2502"
	notKnown = "N/A"
)

// ConsoleFormatter renders results as box-drawing trees for a terminal
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatChannel formats a channel profile and its recent videos
func (f *ConsoleFormatter) FormatChannel(profile *youtube.ChannelProfile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s (%s)\n", text(profile.Title), profile.ID)
	if profile.CustomURL != nil {
		fmt.Fprintf(&sb, "%s   URL: %s\n", pipe, *profile.CustomURL)
	}
	fmt.Fprintf(&sb, "%s   Subscribers: %s | Views: %s | Videos: %s\n", pipe,
		Count(profile.SubscriberCount), Count(profile.ViewCount), Count(profile.VideoCount))
	if profile.Description != nil && *profile.Description != "" {
		fmt.Fprintf(&sb, "%s   %s\n", pipe, firstLine(*profile.Description))
	}

	if len(profile.RecentVideos) == 0 {
		sb.WriteString("\n")
		return sb.String()
	}

	video := "Video"
	if len(profile.RecentVideos) != 1 {
		video += "s"
	}
	fmt.Fprintf(&sb, "%s\n%s Recent %s (%d):\n", pipe, pipe, video, len(profile.RecentVideos))

	for i, v := range profile.RecentVideos {
		isLast := i == len(profile.RecentVideos)-1
		f.formatVideo(&sb, v, isLast)
		if !isLast {
			sb.WriteString(pipe + "\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatStatistics formats the counters of one video
func (f *ConsoleFormatter) FormatStatistics(videoID string, stats *youtube.VideoStatistics) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nVideo %s\n", videoID)
	fmt.Fprintf(&sb, "%s\u2500\u2500 Views: %s\n", branch, Count(stats.ViewCount))
	fmt.Fprintf(&sb, "%s\u2500\u2500 Likes: %s\n", branch, Count(stats.LikeCount))
	fmt.Fprintf(&sb, "%s\u2500\u2500 Comments: %s\n\n", lastLeaf, Count(stats.CommentCount))
	return sb.String()
}

// FormatComments formats comment threads. Items that do not decode as a
// comment thread are listed by position only.
func (f *ConsoleFormatter) FormatComments(items []json.RawMessage, nextPageToken string) string {
	if len(items) == 0 {
		return "No comments found\n"
	}

	var sb strings.Builder
	sb.WriteString("\nComment")
	if len(items) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(items))

	for i, raw := range items {
		isLast := i == len(items)-1
		prefix := branch
		indent := pipe + "   "
		if isLast {
			prefix = lastLeaf
			indent = "    "
		}

		author, body, likes, replies := describeComment(raw)
		if author == "" {
			author = fmt.Sprintf("#%d", i+1)
		}
		fmt.Fprintf(&sb, "%s\u2500\u2500 %s\n", prefix, author)
		for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
			if line != "" {
				fmt.Fprintf(&sb, "%s%s\n", indent, line)
			}
		}
		fmt.Fprintf(&sb, "%sLikes: %s | Replies: %s\n", indent, humanize.Comma(likes), humanize.Comma(replies))

		if !isLast {
			sb.WriteString(pipe + "\n")
		}
	}

	if nextPageToken != "" {
		fmt.Fprintf(&sb, "\nNext page: %s\n", nextPageToken)
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatResolved formats a resolved channel identifier
func (f *ConsoleFormatter) FormatResolved(input, channelID string) string {
	if input == channelID {
		return fmt.Sprintf("%s\n", channelID)
	}
	return fmt.Sprintf("%s \u2192 %s\n", input, channelID)
}

func (f *ConsoleFormatter) formatVideo(sb *strings.Builder, v youtube.RecentVideo, isLast bool) {
	prefix := branch
	indent := pipe + "   "
	if isLast {
		prefix = lastLeaf
		indent = "    "
	}

	fmt.Fprintf(sb, "%s\u2500\u2500 %s (%s)\n", prefix, text(v.Title), v.ID)

	if v.PublishedAt != nil {
		fmt.Fprintf(sb, "%sPublished: %s\n", indent, v.PublishedAt.Format("2006-01-02"))
	}
	fmt.Fprintf(sb, "%sViews: %s | Likes: %s | Comments: %s\n", indent,
		Count(v.ViewCount), Count(v.LikeCount), Count(v.CommentCount))
}

// Count renders an optional counter with thousands separators, or N/A
func Count(n *int64) string {
	if n == nil {
		return notKnown
	}
	return humanize.Comma(*n)
}

func text(s *string) string {
	if s == nil || *s == "" {
		return notKnown
	}
	return *s
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func describeComment(raw json.RawMessage) (author, body string, likes, replies int64) {
	var thread ytapi.CommentThread
	if err := json.Unmarshal(raw, &thread); err != nil || thread.Snippet == nil {
		return "", "", 0, 0
	}
	replies = thread.Snippet.TotalReplyCount
	top := thread.Snippet.TopLevelComment
	if top == nil || top.Snippet == nil {
		return "", "", 0, replies
	}
	return top.Snippet.AuthorDisplayName, top.Snippet.TextDisplay, top.Snippet.LikeCount, replies
}
