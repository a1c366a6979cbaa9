package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cite-catalog/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the catalog export",
	Long: `Export downloads the backend's export in the chosen format and saves it as
citations.<format> in the download directory (client.download_dir, or --dir).
The file is written exactly as the backend sends it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, _ := cmd.Flags().GetString("format")
		format := types.ExportFormat(f)
		if !format.Valid() {
			return fmt.Errorf("unsupported format %q: use json, bibtex, csv or csl", f)
		}

		c := cfg
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			c.Client.DownloadDir = dir
		}

		ctrl := newController(c, &printNotifier{w: cmd.ErrOrStderr()}, logger)
		path, err := ctrl.Export(cmd.Context(), format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", string(types.ExportJSON), "export format: json, bibtex, csv, csl")
	exportCmd.Flags().String("dir", "", "directory to save the export in")

	rootCmd.AddCommand(exportCmd)
}
