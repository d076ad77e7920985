package main

import (
	"github.com/spf13/cobra"

	"github.com/RiverChu0/TikTokDownloader/internal/api"
	"github.com/RiverChu0/TikTokDownloader/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "tiktokdl",
	Short: "Normalize nested platform records into flat, schema-stable exports",
	Long: `tiktokdl turns raw, deeply nested content-platform API responses into
flat records with a stable field set, suitable for persistence or export.

The extraction engine:
  - Classifies each item (video, image gallery variants)
  - Resolves nested paths with default-on-miss semantics
  - Applies inclusive date-range filtering
  - Writes records through CSV or SQLite recorders`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.tiktokdl/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "tiktokdl home directory (default: ~/.tiktokdl)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
