package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-ordering/pkg/database"

	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// OpenSQLite opens or creates the store file at path.
func OpenSQLite(ctx context.Context, path string, log *zap.Logger) (*SQLStore, error) {
	db, err := database.InitSQLite(path)
	if err != nil {
		return nil, err
	}
	return newSQLStore(ctx, db, sqliteDialect{}, log, nil)
}

type sqliteDialect struct{}

func (sqliteDialect) placeholder(int) string { return "?" }

func (sqliteDialect) createTable(c Collection) string {
	pk := "pk TEXT PRIMARY KEY"
	if c.AutoKey {
		pk = "pk INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s, doc TEXT NOT NULL)", quote(c.Name), pk)
}

func (d sqliteDialect) createIndex(c Collection, idx Index) string {
	return createIndexSQL(d, c, idx)
}

func (sqliteDialect) field(name string) string {
	return fmt.Sprintf("json_extract(doc, '$.%s')", name)
}

func (sqliteDialect) isConstraint(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func createIndexSQL(d dialect, c Collection, idx Index) string {
	exprs := make([]string, len(idx.Fields))
	for i, f := range idx.Fields {
		exprs[i] = "(" + d.field(f) + ")"
	}
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
		unique, indexName(c, idx), quote(c.Name), strings.Join(exprs, ", "))
}
