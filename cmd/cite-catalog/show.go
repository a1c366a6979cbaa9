package main

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the full record of one citation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := newController(cfg, &printNotifier{w: cmd.ErrOrStderr()}, logger)
		if err := ctrl.View(cmd.Context(), args[0]); err != nil {
			return err
		}
		detail := ctrl.Screen().View.Detail

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), detail.Citation)
		}
		printDetail(cmd.OutOrStdout(), detail, ctrl.Localizer())
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "output the citation as JSON")

	rootCmd.AddCommand(showCmd)
}
