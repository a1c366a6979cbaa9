package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cite-catalog/internal/controller"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search citations by title, authors, journal, abstract or keywords",
	Long: `Search sends the query to the backend's search endpoint and prints the
matches. A blank query lists every citation, exactly like list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := newController(cfg, &printNotifier{w: cmd.ErrOrStderr()}, logger)
		if err := ctrl.Search(cmd.Context(), strings.Join(args, " ")); err != nil {
			return err
		}
		return renderList(cmd, ctrl)
	},
}

func init() {
	searchCmd.Flags().Bool("json", false, "output citations as JSON")

	rootCmd.AddCommand(searchCmd)
}

// renderList prints the controller's current list as text or JSON.
func renderList(cmd *cobra.Command, ctrl *controller.Controller) error {
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(out, ctrl.Snapshot())
	}
	printList(out, ctrl.Screen().List, ctrl.Localizer())
	return nil
}
