package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const metaName = "records"

// dialect isolates the engine specific SQL.
type dialect interface {
	placeholder(n int) string
	createTable(c Collection) string
	createIndex(c Collection, idx Index) string
	field(name string) string
	isConstraint(err error) bool
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlOps struct {
	q       querier
	dialect dialect
}

// SQLStore implements Store on top of database/sql. Each collection is a table
// with a primary key column and a JSON document column; secondary indexes are
// expression indexes over document fields.
type SQLStore struct {
	sqlOps
	db      *sql.DB
	log     *zap.Logger
	version int
	onClose func()
}

func newSQLStore(ctx context.Context, db *sql.DB, d dialect, log *zap.Logger, onClose func()) (*SQLStore, error) {
	s := &SQLStore{
		sqlOps:  sqlOps{q: db, dialect: d},
		db:      db,
		log:     log.With(zap.String("component", "store")),
		onClose: onClose,
	}
	if err := s.migrate(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate record store: %w", err)
	}
	return s, nil
}

func (s *SQLStore) Version() int {
	return s.version
}

func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.onClose != nil {
		s.onClose()
	}
	return err
}

func (s *SQLStore) Tx(ctx context.Context, fn func(Ops) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&sqlOps{q: tx, dialect: s.dialect}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Warn("Failed to roll back transaction", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// migrate creates absent collections and records the schema version. Opening a
// database already at SchemaVersion changes nothing.
func (s *SQLStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_meta (name TEXT PRIMARY KEY, version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_meta: %w", err)
	}

	var current int
	err := s.db.QueryRowContext(ctx,
		"SELECT version FROM schema_meta WHERE name = "+s.dialect.placeholder(1), metaName).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, SchemaVersion)
	}
	if current == SchemaVersion {
		s.version = current
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upgrade: %w", err)
	}
	for _, c := range Schema {
		if _, err := tx.ExecContext(ctx, s.dialect.createTable(c)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("create collection %s: %w", c.Name, err)
		}
		for _, idx := range c.Indexes {
			if _, err := tx.ExecContext(ctx, s.dialect.createIndex(c, idx)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("create index %s.%s: %w", c.Name, idx.Name, err)
			}
		}
	}
	upsert := fmt.Sprintf(
		"INSERT INTO schema_meta (name, version) VALUES (%s, %s) ON CONFLICT (name) DO UPDATE SET version = excluded.version",
		s.dialect.placeholder(1), s.dialect.placeholder(2))
	if _, err := tx.ExecContext(ctx, upsert, metaName, SchemaVersion); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upgrade: %w", err)
	}

	s.log.Info("Record store upgraded",
		zap.Int("from_version", current),
		zap.Int("to_version", SchemaVersion),
	)
	s.version = SchemaVersion
	return nil
}

func (o *sqlOps) Get(ctx context.Context, collection, key string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := lookupCollection(collection)
	if err != nil {
		return nil, err
	}
	arg, ok := keyArg(c, key)
	if !ok {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT pk, doc FROM %s WHERE pk = %s`, quote(c.Name), o.dialect.placeholder(1))
	var rec Record
	err = o.q.QueryRowContext(ctx, query, arg).Scan(&rec.Key, &rec.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, o.wrap(err, "get %s/%s", c.Name, key)
	}
	return &rec, nil
}

func (o *sqlOps) Put(ctx context.Context, collection, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c, err := lookupCollection(collection)
	if err != nil {
		return "", err
	}
	if !json.Valid(data) {
		return "", fmt.Errorf("put %s: document is not valid JSON", c.Name)
	}

	if key == "" {
		if !c.AutoKey {
			return "", fmt.Errorf("put %s: key is required", c.Name)
		}
		query := fmt.Sprintf(`INSERT INTO %s (doc) VALUES (%s) RETURNING pk`, quote(c.Name), o.dialect.placeholder(1))
		var assigned string
		if err := o.q.QueryRowContext(ctx, query, string(data)).Scan(&assigned); err != nil {
			return "", o.wrap(err, "insert %s", c.Name)
		}
		return assigned, nil
	}

	arg, ok := keyArg(c, key)
	if !ok {
		return "", fmt.Errorf("put %s: invalid key %q", c.Name, key)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (pk, doc) VALUES (%s, %s) ON CONFLICT (pk) DO UPDATE SET doc = excluded.doc`,
		quote(c.Name), o.dialect.placeholder(1), o.dialect.placeholder(2))
	if _, err := o.q.ExecContext(ctx, query, arg, string(data)); err != nil {
		return "", o.wrap(err, "put %s/%s", c.Name, key)
	}
	return key, nil
}

func (o *sqlOps) Delete(ctx context.Context, collection, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := lookupCollection(collection)
	if err != nil {
		return err
	}
	arg, ok := keyArg(c, key)
	if !ok {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE pk = %s`, quote(c.Name), o.dialect.placeholder(1))
	if _, err := o.q.ExecContext(ctx, query, arg); err != nil {
		return o.wrap(err, "delete %s/%s", c.Name, key)
	}
	return nil
}

func (o *sqlOps) Clear(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := lookupCollection(collection)
	if err != nil {
		return err
	}
	if _, err := o.q.ExecContext(ctx, "DELETE FROM "+quote(c.Name)); err != nil {
		return o.wrap(err, "clear %s", c.Name)
	}
	return nil
}

func (o *sqlOps) Scan(ctx context.Context, collection string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		c, err := lookupCollection(collection)
		if err != nil {
			yield(Record{}, err)
			return
		}
		query := fmt.Sprintf(`SELECT pk, doc FROM %s ORDER BY pk`, quote(c.Name))
		o.stream(ctx, yield, "scan "+c.Name, query)
	}
}

func (o *sqlOps) ScanByIndex(ctx context.Context, collection, index string, values ...string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		c, idx, err := lookupIndex(collection, index)
		if err != nil {
			yield(Record{}, err)
			return
		}
		if len(values) != len(idx.Fields) {
			yield(Record{}, fmt.Errorf("index %s.%s expects %d values, got %d",
				c.Name, idx.Name, len(idx.Fields), len(values)))
			return
		}

		conds := make([]string, len(idx.Fields))
		args := make([]any, len(values))
		for i, f := range idx.Fields {
			conds[i] = fmt.Sprintf("%s = %s", o.dialect.field(f), o.dialect.placeholder(i+1))
			args[i] = values[i]
		}
		query := fmt.Sprintf(`SELECT pk, doc FROM %s WHERE %s ORDER BY pk`,
			quote(c.Name), strings.Join(conds, " AND "))
		o.stream(ctx, yield, "scan "+c.Name+"."+idx.Name, query, args...)
	}
}

func (o *sqlOps) stream(ctx context.Context, yield func(Record, error) bool, op, query string, args ...any) {
	if err := ctx.Err(); err != nil {
		yield(Record{}, err)
		return
	}
	rows, err := o.q.QueryContext(ctx, query, args...)
	if err != nil {
		yield(Record{}, o.wrap(err, "%s", op))
		return
	}
	defer rows.Close()

	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Key, &rec.Data); err != nil {
			yield(Record{}, fmt.Errorf("%s: scan row: %w", op, err))
			return
		}
		if !yield(rec, nil) {
			return
		}
	}
	if err := rows.Err(); err != nil {
		yield(Record{}, o.wrap(err, "%s", op))
	}
}

func (o *sqlOps) wrap(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if o.dialect.isConstraint(err) {
		return fmt.Errorf("%s: %w: %w", msg, ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// keyArg converts a key to the column type. Auto-key collections use integer keys,
// so a non-numeric key can never match.
func keyArg(c Collection, key string) (any, bool) {
	if !c.AutoKey {
		return key, true
	}
	n, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return nil, false
	}
	return n, true
}

func quote(ident string) string {
	return `"` + ident + `"`
}

func indexName(c Collection, idx Index) string {
	return quote(c.Name + "_" + idx.Name)
}
