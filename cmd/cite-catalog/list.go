package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every citation, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := newController(cfg, &printNotifier{w: cmd.ErrOrStderr()}, logger)
		if err := ctrl.LoadAll(cmd.Context()); err != nil {
			return err
		}
		return renderList(cmd, ctrl)
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "output citations as JSON")

	rootCmd.AddCommand(listCmd)
}
