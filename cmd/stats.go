package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/ytchannel/output"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats VIDEO_ID",
	Short: "Show view, like and comment counts of a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	videoID := args[0]

	stats, err := client.GetVideoStatistics(cmd.Context(), videoID)
	if err != nil {
		return err
	}
	return render(cmd, func(r *output.Renderer) error {
		return r.Statistics(videoID, stats)
	})
}
