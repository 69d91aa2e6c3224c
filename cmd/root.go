package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felipegalvaoz/zemdocs-admin/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "zemdocs-admin",
	Short: "Admin gateway and CLI for the zemdocs empresa registry",
	Long:  "Serves the company-management dashboard API and provides terminal access to the same operations: listing, registry lookups, creation, and exports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is a development convenience; absence is not an error.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
