package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cite-catalog/internal/server"
	"github.com/pdiddy/cite-catalog/internal/store"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference catalog backend",
	Long: `Serve runs the catalog REST API (/api/citations, /api/search, /api/export)
over a SQLite database. With --require-token every request must carry the
configured catalog API token as a bearer token.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if debug, _ := cmd.Flags().GetBool("debug"); !debug {
			gin.SetMode(gin.ReleaseMode)
		}

		st, err := store.Open(cfg.Server.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := []server.Option{server.WithLogger(logger)}
		if require, _ := cmd.Flags().GetBool("require-token"); require {
			if cfg.Client.APIToken == "" {
				return fmt.Errorf("--require-token set but no catalog API token is configured")
			}
			opts = append(opts, server.WithToken(cfg.Client.APIToken))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on %s\n", cfg.Server.DBPath, cfg.Server.Addr)
		return server.New(st, opts...).ListenAndServe(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default "+types.DefaultAddr+")")
	serveCmd.Flags().String("db", "", "SQLite database path (default "+types.DefaultDBPath+")")
	serveCmd.Flags().Bool("require-token", false, "require the catalog API token on every request")
	serveCmd.Flags().Bool("debug", false, "run gin in debug mode")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.db_path", serveCmd.Flags().Lookup("db"))

	rootCmd.AddCommand(serveCmd)
}
