package main

import (
	"fmt"
	"os"

	_ "github.com/projectblurimedia/Veggie-Tracker/api/swagger" // swagger docs
	"github.com/projectblurimedia/Veggie-Tracker/internal/config"
	"github.com/projectblurimedia/Veggie-Tracker/internal/database"
	"github.com/projectblurimedia/Veggie-Tracker/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "veggie-tracker",
	Short: "Order, payment and expense tracker for a vegetable vendor",
	Long: `veggie-tracker serves the REST API behind the vendor's mobile app:
customers, orders with running payment balances, owner expense records
and the produce catalog.

Running it without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// @title           Veggie Tracker API
// @version         1.0
// @description     Orders, payments, customer balances and owner records of a vegetable vendor.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "configs/.env", "dotenv file loaded before the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd, createUserCmd, seedItemsCmd)
}

// bootstrap loads configuration, configures logging and opens the database.
func bootstrap() (config.Config, *gorm.DB, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, nil, err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	if err := logger.Setup(logCfg); err != nil {
		return config.Config{}, nil, fmt.Errorf("configure logger: %w", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("database connection failed: %w", err)
	}
	return cfg, db, nil
}
