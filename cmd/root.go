package cmd

import (
	"context"
	"fmt"
	"log"

	"food-ordering/internal/data/repository"
	"food-ordering/internal/data/store"
	"food-ordering/internal/wire"
	"food-ordering/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	debug       bool
	storeDriver string
	storePath   string
)

var rootCmd = &cobra.Command{
	Use:   "food-ordering",
	Short: "Food ordering storefront backend",
	Long: `Food ordering storefront backend.

Serves the dish catalog, carts, orders and favorites over HTTP and keeps
them in a local SQLite file or a PostgreSQL database.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "driver", "", "record store engine: sqlite or postgres")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "sqlite database file")

	rootCmd.AddCommand(serveCmd, seedCmd, loginCmd, logoutCmd, whoamiCmd)
}

// app is everything a command needs, opened from configuration.
type app struct {
	config *utils.Config
	log    *zap.Logger
	store  *store.SQLStore
	*wire.App
}

func openApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("debug") {
		config.App.Debug = debug
	}
	if flags.Changed("driver") {
		config.Store.Driver = storeDriver
	}
	if flags.Changed("store") {
		config.Store.Path = storePath
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}

	s, err := store.Open(ctx, config, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open record store: %w", err)
	}
	logger.Info("Record store ready",
		zap.String("driver", config.Store.Driver),
		zap.Int("schema_version", s.Version()),
	)

	repo := repository.NewRepository(s, logger)
	return &app{
		config: config,
		log:    logger,
		store:  s,
		App:    wire.Wiring(repo, config, logger),
	}, nil
}

func (a *app) Close() {
	a.Service.Session.Close()
	if err := a.store.Close(); err != nil {
		a.log.Warn("Failed to close record store", zap.Error(err))
	}
	_ = a.log.Sync()
}
