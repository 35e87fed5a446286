package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:     "play",
	Aliases: []string{"run"},
	Short:   "Start the terminal quiz UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("skip-welcome")
		return runApp(cmd, skip)
	},
}

func init() {
	playCmd.Flags().Bool("skip-welcome", false, "Start on the home screen")
}
