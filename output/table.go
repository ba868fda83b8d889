package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/s0up4200/ytchannel/youtube"
)

// TableFormatter writes tab-aligned tables
type TableFormatter struct {
	w io.Writer
}

// NewTableFormatter creates a table formatter writing to w
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

func (t *TableFormatter) table(header string, rows [][]string) error {
	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// WriteChannel writes the profile as one row, followed by a video table
// when recent videos are attached
func (t *TableFormatter) WriteChannel(profile *youtube.ChannelProfile) error {
	err := t.table("ID\tTITLE\tSUBSCRIBERS\tVIEWS\tVIDEOS", [][]string{{
		profile.ID,
		text(profile.Title),
		Count(profile.SubscriberCount),
		Count(profile.ViewCount),
		Count(profile.VideoCount),
	}})
	if err != nil || len(profile.RecentVideos) == 0 {
		return err
	}

	if _, err := fmt.Fprintln(t.w); err != nil {
		return err
	}
	return t.WriteVideos(profile.RecentVideos)
}

// WriteVideos writes one row per video
func (t *TableFormatter) WriteVideos(videos []youtube.RecentVideo) error {
	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		published := notKnown
		if v.PublishedAt != nil {
			published = v.PublishedAt.Format("2006-01-02")
		}
		rows = append(rows, []string{
			v.ID,
			published,
			Count(v.ViewCount),
			Count(v.LikeCount),
			Count(v.CommentCount),
			text(v.Title),
		})
	}
	return t.table("VIDEO\tPUBLISHED\tVIEWS\tLIKES\tCOMMENTS\tTITLE", rows)
}

// WriteStatistics writes the counters of one video
func (t *TableFormatter) WriteStatistics(videoID string, stats *youtube.VideoStatistics) error {
	return t.table("VIDEO\tVIEWS\tLIKES\tCOMMENTS", [][]string{{
		videoID,
		Count(stats.ViewCount),
		Count(stats.LikeCount),
		Count(stats.CommentCount),
	}})
}

// WriteComments writes one row per comment thread, text cut to one line
func (t *TableFormatter) WriteComments(items []json.RawMessage) error {
	rows := make([][]string, 0, len(items))
	for i, raw := range items {
		author, body, likes, replies := describeComment(raw)
		if author == "" {
			author = fmt.Sprintf("#%d", i+1)
		}
		rows = append(rows, []string{
			author,
			fmt.Sprint(likes),
			fmt.Sprint(replies),
			truncate(firstLine(body), 80),
		})
	}
	return t.table("AUTHOR\tLIKES\tREPLIES\tTEXT", rows)
}

// WriteResolved writes an input and the channel ID it resolved to
func (t *TableFormatter) WriteResolved(input, channelID string) error {
	return t.table("INPUT\tCHANNEL ID", [][]string{{input, channelID}})
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
