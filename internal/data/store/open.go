package store

import (
	"context"
	"fmt"

	"food-ordering/pkg/database"
	"food-ordering/pkg/utils"

	"go.uber.org/zap"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects the engine selected by cfg.Store.Driver and brings the schema up
// to SchemaVersion.
func Open(ctx context.Context, cfg *utils.Config, log *zap.Logger) (*SQLStore, error) {
	switch cfg.Store.Driver {
	case "", DriverSQLite:
		return OpenSQLite(ctx, cfg.Store.Path, log)
	case DriverPostgres:
		pool, err := database.InitPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		return OpenPostgres(ctx, pool, log)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
