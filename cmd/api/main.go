package main

import (
	"fmt"
	"os"

	"accounting/internal/config"
	"accounting/internal/logger"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Accounting API server and maintenance commands",
	Long: `Accounting backend for invoice issuance.

Running without a subcommand starts the HTTP server.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runServe,
}

// cfg is loaded once before any subcommand runs
var cfg *config.Config

func setupLogging(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	return logger.Setup(cfg.LoggerConfig())
}

// @title           Accounting API
// @version         1.0
// @description     Invoice issuance for a Thai small-business accounting backend.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
}
