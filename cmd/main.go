package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobboard/infrastructure"
)

var (
	configPath string
	cfg        infrastructure.Config
	log        *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "jobboard",
	Short:         "Job listings API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env
		_ = godotenv.Load()

		var err error
		cfg, err = infrastructure.LoadConfig(configPath)
		if err != nil {
			return err
		}

		log, err = infrastructure.NewLogger(cfg.AppEnv, cfg.LogLevel)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to an optional YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
