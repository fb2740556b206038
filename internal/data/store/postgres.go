package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

// OpenPostgres builds a store on an existing pool. Closing the store closes the pool.
func OpenPostgres(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) (*SQLStore, error) {
	db := stdlib.OpenDBFromPool(pool)
	return newSQLStore(ctx, db, postgresDialect{}, log, pool.Close)
}

type postgresDialect struct{}

func (postgresDialect) placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (postgresDialect) createTable(c Collection) string {
	pk := "pk TEXT PRIMARY KEY"
	if c.AutoKey {
		pk = "pk BIGSERIAL PRIMARY KEY"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s, doc JSONB NOT NULL)", quote(c.Name), pk)
}

func (d postgresDialect) createIndex(c Collection, idx Index) string {
	return createIndexSQL(d, c, idx)
}

func (postgresDialect) field(name string) string {
	return fmt.Sprintf("doc->>'%s'", name)
}

func (postgresDialect) isConstraint(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
