package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/ytchannel/output"
	"github.com/s0up4200/ytchannel/youtube"
)

var (
	allComments bool
	pageSize    int
	pageToken   string
)

// commentsCmd represents the comments command
var commentsCmd = &cobra.Command{
	Use:   "comments VIDEO_ID",
	Short: "List comment threads of a video",
	Long: `List top-level comment threads of a video, one page at a time or, with
--all, every page. Threads are printed as the API returned them.`,
	Args: cobra.ExactArgs(1),
	RunE: runComments,
}

func init() {
	rootCmd.AddCommand(commentsCmd)

	commentsCmd.Flags().BoolVar(&allComments, "all", false, "fetch every page")
	commentsCmd.Flags().IntVar(&pageSize, "page-size", youtube.DefaultCommentPageSize, "threads per page (1-100)")
	commentsCmd.Flags().StringVar(&pageToken, "page-token", "", "continue from this page token")

	commentsCmd.MarkFlagsMutuallyExclusive("all", "page-token")
}

func runComments(cmd *cobra.Command, args []string) error {
	videoID := args[0]
	if pageSize < 1 || pageSize > youtube.DefaultCommentPageSize {
		return fmt.Errorf("--page-size must be between 1 and %d", youtube.DefaultCommentPageSize)
	}

	if allComments {
		logger.Info().Str("video_id", videoID).Msg("Fetching all comments")

		items, err := client.GetAllComments(cmd.Context(), videoID, pageSize)
		if err != nil {
			return err
		}
		return render(cmd, func(r *output.Renderer) error {
			return r.Comments(items)
		})
	}

	page, err := client.ListComments(cmd.Context(), videoID, pageSize, pageToken)
	if err != nil {
		return err
	}
	return render(cmd, func(r *output.Renderer) error {
		return r.CommentPage(page)
	})
}
