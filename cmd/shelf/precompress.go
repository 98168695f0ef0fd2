package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shelfhttp/shelf/config"
	"github.com/shelfhttp/shelf/precompress"
)

var precompressCmd = &cobra.Command{
	Use:   "precompress [dir]",
	Short: "Generate precompressed variants",
	Long: `Walk a directory and write .br, .zst and .gz siblings for every
compressible file, ready to be served with 'shelf serve --precompressed'.

Without an argument, the configured static root is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrecompress,
}

var (
	precompressEncodings []string
	precompressForce     bool
)

func init() {
	precompressCmd.Flags().StringSliceVar(&precompressEncodings, "encodings", nil, "encodings to generate: br, zstd, gzip (default: all)")
	precompressCmd.Flags().BoolVar(&precompressForce, "force", false, "re-encode variants even when they are up to date")

	rootCmd.AddCommand(precompressCmd)
}

func runPrecompress(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	dir := cfg.Static.Root
	if len(args) > 0 {
		dir = args[0]
	}

	res, err := precompress.Run(cmd.Context(), dir, precompress.Options{
		Encodings: precompressEncodings,
		Force:     precompressForce,
	})
	if err != nil {
		return fmt.Errorf("precompress %q: %w", dir, err)
	}

	slog.Info("precompression complete",
		"dir", dir,
		"files", res.Files,
		"variants", res.Variants,
		"skipped", res.Skipped,
	)
	return nil
}
