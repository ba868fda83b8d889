package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/ytchannel/output"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve INPUT",
	Short: "Resolve a channel ID, @handle or channel URL to a channel ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	input, err := parseChannelURL(args[0])
	if err != nil {
		return err
	}

	id, err := client.ResolveChannelID(cmd.Context(), input)
	if err != nil {
		return err
	}
	return render(cmd, func(r *output.Renderer) error {
		return r.Resolved(args[0], id)
	})
}
