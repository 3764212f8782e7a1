// Package main provides the rebuild-cache maintenance command. It forces a
// fresh fetch of the kiosk aggregate into the cache, bypassing the TTL.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"birdcams-tv/internal/app"
	"birdcams-tv/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the rebuild-cache command.
func newRootCmd() *cobra.Command {
	var (
		configPath string
		timeout    time.Duration
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "rebuild-cache",
		Short:         "Rebuild the bird cam data cache",
		Long:          "Fetch live streams and playlists from YouTube and overwrite the cache file.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return reportFailure(cmd, err)
			}

			// Keep stdout for the summary line
			cfg.Logger.Output = "stderr"
			if !verbose {
				cfg.Logger.Level = "warn"
			}

			log, err := app.NewLogger(cfg)
			if err != nil {
				return reportFailure(cmd, err)
			}
			defer func() { _ = log.Close() }()

			components, err := app.New(cfg, log.Logger)
			if err != nil {
				return reportFailure(cmd, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			report, err := components.Aggregates.Rebuild(ctx)
			if err != nil {
				return reportFailure(cmd, err)
			}
			if !report.CacheWritten {
				return reportFailure(cmd, fmt.Errorf("cache file could not be written"))
			}

			log.Debug("rebuild finished", zap.Duration("duration", report.Duration))

			fmt.Fprintf(cmd.OutOrStdout(), "Cache rebuilt. Live: %d, Playlists: %d\n",
				report.LiveStreams, report.Playlists)

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./config/config.yaml)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 2*time.Minute, "Maximum time for the rebuild")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	return cmd
}

func reportFailure(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Failed to rebuild cache: %v\n", err)
	return err
}
