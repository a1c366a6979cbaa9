package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a citation",
	Long: `Edit fetches the citation, replaces the fields given as flags, and saves
the whole record. Fields without a flag keep their current value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := newController(cfg, &printNotifier{w: cmd.ErrOrStderr()}, logger)
		if err := ctrl.View(cmd.Context(), args[0]); err != nil {
			return err
		}
		if !ctrl.EditFromView() {
			return fmt.Errorf("citation %s could not be opened for editing", args[0])
		}

		form := ctrl.Screen().Edit.Form
		applyFieldFlags(cmd.Flags(), &form)

		if _, err := ctrl.Save(cmd.Context(), form); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	addFieldFlags(editCmd.Flags())

	rootCmd.AddCommand(editCmd)
}
