package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"tailscan/internal/platform/config"
	"tailscan/internal/platform/logger"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "tailscanctl",
		Short:        "Aircraft tail-number forensic reports",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Human-readable debug logging")

	root.AddCommand(
		newScanCmd(&verbose),
		newNormalizeCmd(),
		newMigrateCmd(&verbose),
		newEntitlementCmd(),
	)
	return root
}

// setup reads the environment the same way the server does.
func setup(verbose bool) (config.Server, *slog.Logger) {
	cfg := config.FromEnv()
	return cfg, logger.New(verbose || cfg.Development())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
