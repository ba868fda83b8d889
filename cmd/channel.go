package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/ytchannel/filter"
	"github.com/s0up4200/ytchannel/output"
	"github.com/s0up4200/ytchannel/youtube"
)

var (
	channelID     string
	channelHandle string
	channelURL    string
	includeVideos bool
	maxVideos     int
	videoFilter   string
)

// channelCmd represents the channel command
var channelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Show a channel profile",
	Long: `Fetch a channel's title, description, custom URL, thumbnails and statistics.

The channel can be given by ID, by @handle or by URL. With --include-videos the
newest uploads are attached, optionally narrowed with an expression:

  ytchannel channel --handle @YouTube --include-videos --video-filter 'Views > 10000'`,
	Args: cobra.NoArgs,
	RunE: runChannel,
}

func init() {
	rootCmd.AddCommand(channelCmd)

	channelCmd.Flags().StringVar(&channelID, "id", "", "channel ID (UC...)")
	channelCmd.Flags().StringVar(&channelHandle, "handle", "", "channel handle (@name)")
	channelCmd.Flags().StringVar(&channelURL, "url", "", "channel URL")
	channelCmd.Flags().BoolVar(&includeVideos, "include-videos", false, "attach recent videos")
	channelCmd.Flags().IntVar(&maxVideos, "max-videos", 5, "number of recent videos (1-50)")
	channelCmd.Flags().StringVar(&videoFilter, "video-filter", "", "expression selecting recent videos")

	channelCmd.MarkFlagsMutuallyExclusive("id", "handle", "url")
	channelCmd.MarkFlagsOneRequired("id", "handle", "url")
}

func runChannel(cmd *cobra.Command, args []string) error {
	input, err := channelInput()
	if err != nil {
		return err
	}

	var vf *filter.VideoFilter
	if videoFilter != "" {
		if !includeVideos {
			return fmt.Errorf("--video-filter requires --include-videos")
		}
		vf, err = filter.Compile(videoFilter)
		if err != nil {
			return fmt.Errorf("invalid video filter: %w", err)
		}
	}

	logger.Info().Str("input", input).Bool("include_videos", includeVideos).Msg("Fetching channel")

	profile, err := client.GetChannelProfile(cmd.Context(), input, youtube.ProfileOptions{
		IncludeRecentVideos: includeVideos,
		MaxVideos:           maxVideos,
	})
	if err != nil {
		return err
	}

	if vf != nil {
		selected, err := vf.Apply(profile.RecentVideos)
		if err != nil {
			return err
		}
		logger.Debug().
			Str("filter", vf.String()).
			Int("matched", len(selected)).
			Int("total", len(profile.RecentVideos)).
			Msg("Applied video filter")
		profile.RecentVideos = selected
	}

	return render(cmd, func(r *output.Renderer) error {
		return r.Channel(profile)
	})
}

// channelInput returns the identifier selected by --id, --handle or --url
func channelInput() (string, error) {
	switch {
	case channelID != "":
		return strings.TrimSpace(channelID), nil
	case channelHandle != "":
		handle := strings.TrimSpace(channelHandle)
		if !strings.HasPrefix(handle, "@") {
			handle = "@" + handle
		}
		return handle, nil
	case channelURL != "":
		return parseChannelURL(channelURL)
	default:
		return "", fmt.Errorf("one of --id, --handle or --url is required")
	}
}

// parseChannelURL extracts a channel ID or @handle from a channel URL such as
// https://www.youtube.com/channel/UC... or https://youtube.com/@name/videos
func parseChannelURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "@") || youtube.IsChannelID(raw) {
		return raw, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid channel URL %q: %w", raw, err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(segments) >= 1 && strings.HasPrefix(segments[0], "@") && len(segments[0]) > 1:
		handle, err := url.PathUnescape(segments[0])
		if err != nil {
			return "", fmt.Errorf("invalid channel URL %q: %w", raw, err)
		}
		return handle, nil
	case len(segments) >= 2 && segments[0] == "channel" && youtube.IsChannelID(segments[1]):
		return segments[1], nil
	default:
		return "", &youtube.UnresolvableIdentifierError{Input: raw}
	}
}
