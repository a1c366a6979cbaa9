package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cite-catalog/internal/controller"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a citation",
	Long: `Delete asks for confirmation on stdin before removing the citation.
Deletion cannot be undone. --yes skips the prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := newController(cfg, &printNotifier{w: cmd.ErrOrStderr()}, logger)

		confirm := promptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
		if yes, _ := cmd.Flags().GetBool("yes"); yes {
			confirm = controller.Confirmed
		}

		err := ctrl.Delete(cmd.Context(), args[0], confirm)
		if errors.Is(err, controller.ErrNotConfirmed) {
			return nil
		}
		return err
	},
}

// promptConfirmer asks on out and reads a y/N answer from in.
func promptConfirmer(in io.Reader, out io.Writer) controller.Confirmer {
	return controller.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes", "д", "да":
			return true
		}
		return false
	})
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "delete without asking")

	rootCmd.AddCommand(deleteCmd)
}
