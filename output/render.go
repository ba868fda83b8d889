// Package output renders client results as JSON, trees or tables
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/s0up4200/ytchannel/youtube"
)

// Format selects how results are rendered
type Format string

const (
	FormatJSON  Format = "json"
	FormatTree  Format = "tree"
	FormatTable Format = "table"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatJSON, FormatTree, FormatTable:
		return f, nil
	case "human":
		return FormatTree, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected json, tree or table)", name)
	}
}

// Renderer writes results to one destination in one format
type Renderer struct {
	w       io.Writer
	format  Format
	pretty  bool
	console *ConsoleFormatter
	table   *TableFormatter
}

// NewRenderer creates a renderer. Pretty only affects JSON.
func NewRenderer(w io.Writer, format Format, pretty bool) *Renderer {
	return &Renderer{
		w:       w,
		format:  format,
		pretty:  pretty,
		console: NewConsoleFormatter(),
		table:   NewTableFormatter(w),
	}
}

// Channel renders a channel profile
func (r *Renderer) Channel(profile *youtube.ChannelProfile) error {
	switch r.format {
	case FormatTree:
		return r.write(r.console.FormatChannel(profile))
	case FormatTable:
		return r.table.WriteChannel(profile)
	default:
		return WriteJSON(r.w, profile, r.pretty)
	}
}

// Statistics renders the counters of one video
func (r *Renderer) Statistics(videoID string, stats *youtube.VideoStatistics) error {
	switch r.format {
	case FormatTree:
		return r.write(r.console.FormatStatistics(videoID, stats))
	case FormatTable:
		return r.table.WriteStatistics(videoID, stats)
	default:
		return WriteJSON(r.w, stats, r.pretty)
	}
}

// CommentPage renders one page of comment threads
func (r *Renderer) CommentPage(page *youtube.CommentPage) error {
	switch r.format {
	case FormatTree:
		return r.write(r.console.FormatComments(page.Items, page.NextPageToken))
	case FormatTable:
		return r.table.WriteComments(page.Items)
	default:
		return WriteJSON(r.w, page, r.pretty)
	}
}

// Comments renders a flat list of comment threads
func (r *Renderer) Comments(items []json.RawMessage) error {
	switch r.format {
	case FormatTree:
		return r.write(r.console.FormatComments(items, ""))
	case FormatTable:
		return r.table.WriteComments(items)
	default:
		if items == nil {
			items = []json.RawMessage{}
		}
		return WriteJSON(r.w, items, r.pretty)
	}
}

// Resolved renders a resolved channel identifier
func (r *Renderer) Resolved(input, channelID string) error {
	switch r.format {
	case FormatTree:
		return r.write(r.console.FormatResolved(input, channelID))
	case FormatTable:
		return r.table.WriteResolved(input, channelID)
	default:
		return WriteJSON(r.w, struct {
			Input     string `json:"input"`
			ChannelID string `json:"channel_id"`
		}{input, channelID}, r.pretty)
	}
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.w, s)
	return err
}
