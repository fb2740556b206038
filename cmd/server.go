package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"food-ordering/internal/data/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Opens the record store, seeds the catalog when SEED_ON_START is set and
serves the REST API on PORT until interrupted.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.config.Token.Validate(); err != nil {
		a.log.Error("Refusing to start with an insecure token secret", zap.Error(err))
		return err
	}

	a.log.Info("Starting application",
		zap.String("app", a.config.App.Name),
		zap.String("port", a.config.App.Port),
		zap.Bool("debug", a.config.App.Debug),
	)

	if a.config.App.SeedOnStart {
		cat, err := seed.Load()
		if err != nil {
			return err
		}
		if err := a.Service.Seed(ctx, cat); err != nil {
			return err
		}
		a.log.Info("Catalog seeded", zap.Int("dishes", len(cat.Dishes)))
	}

	return APIServer(ctx, a.Router, a.config.App.Port, a.log)
}

// APIServer serves handler on port until ctx is done, then drains in-flight
// requests.
func APIServer(ctx context.Context, handler http.Handler, port string, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server running", zap.String("addr", "http://localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
