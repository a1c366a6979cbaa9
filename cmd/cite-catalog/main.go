// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cite-catalog CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cite-catalog/internal/secrets"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the resolved configuration, populated before any subcommand runs.
	cfg types.Config

	// logger writes diagnostics to stderr at the --log-level threshold.
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// rootCmd is the base command for the cite-catalog CLI.
var rootCmd = &cobra.Command{
	Use:   "cite-catalog",
	Short: "Browse and manage a bibliographic citation catalog",
	Long: `cite-catalog is a client for a citation catalog REST backend. It lists,
searches, shows, adds, edits, deletes and exports citation records, either
one command at a time or through an interactive terminal UI (cite-catalog tui).

A reference backend backed by SQLite is available as cite-catalog serve.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		l, err := newLogger(os.Stderr, level)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(logger)

		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		s.Apply(&c.Client)
		if len(s) > 0 {
			logger.Debug("loaded secrets", "count", len(s))
		}

		cfg = c
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./cite-catalog.yaml or ~/.config/cite-catalog/cite-catalog.yaml)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("base-url", "", "catalog backend origin (default "+types.DefaultBaseURL+")")
	pf.String("locale", "", "message language, e.g. en or ru")

	viper.BindPFlag("client.base_url", pf.Lookup("base-url"))
	viper.BindPFlag("ui.locale", pf.Lookup("locale"))
}

func initConfig() {
	// .env values become ordinary environment variables; existing ones win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cite-catalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cite-catalog"))
		}
	}

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables such as
// CITE_CATALOG_CLIENT_BASE_URL are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("client.base_url", types.DefaultBaseURL)
	v.SetDefault("client.timeout", types.DefaultTimeout)
	v.SetDefault("client.user_agent", types.DefaultUserAgent)
	v.SetDefault("client.api_token", "")
	v.SetDefault("client.download_dir", ".")
	v.SetDefault("ui.locale", types.DefaultLocale)
	v.SetDefault("ui.notification_ttl", types.DefaultNotificationTTL)
	v.SetDefault("server.addr", types.DefaultAddr)
	v.SetDefault("server.db_path", types.DefaultDBPath)

	v.SetEnvPrefix("CITE_CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadConfig decodes v into a Config with defaults applied.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c.WithDefaults(), nil
}

// newLogger returns a text logger at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
