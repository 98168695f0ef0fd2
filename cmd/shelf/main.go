package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shelfhttp/shelf/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "shelf",
	Short:   "Static file server with precompressed variant support",
	Long: `Shelf serves a directory of static files over HTTP with
precompressed variant negotiation (brotli, zstd, gzip), byte-range
requests and directory index fallback.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}
		setupLogging(cfg)

		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "directory to serve (default: ./public, env: SHELF_STATIC_ROOT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
