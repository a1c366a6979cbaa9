package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cite-catalog/internal/notify"
	"github.com/pdiddy/cite-catalog/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the catalog interactively",
	Long: `Tui opens a full-screen terminal interface: a search bar, statistics, the
citation list, add/edit and detail dialogs, and short-lived notifications.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The alternate screen owns the terminal, so logs go to a file or nowhere.
		var w io.Writer = io.Discard
		if path, _ := cmd.Flags().GetString("log-file"); path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()
			w = f
		}
		level, _ := cmd.Flags().GetString("log-level")
		log, err := newLogger(w, level)
		if err != nil {
			return err
		}
		slog.SetDefault(log)

		center := notify.NewCenter(cfg.UI.NotificationTTL, log)
		ctrl := newController(cfg, center, log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return tui.Run(ctx, ctrl, center)
	},
}

func init() {
	tuiCmd.Flags().String("log-file", "", "append logs to this file")

	rootCmd.AddCommand(tuiCmd)
}
