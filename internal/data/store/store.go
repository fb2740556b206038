// Package store is a small keyed record store with secondary indexes.
//
// Records are JSON documents grouped in named collections. Each collection has a
// primary key that is either supplied by the caller or assigned by the store, and
// zero or more secondary indexes over top-level document fields. Two engines back
// the same contract: embedded SQLite and PostgreSQL.
package store

import (
	"context"
	"errors"
	"iter"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnknownIndex      = errors.New("unknown index")
	ErrConstraint        = errors.New("constraint violation")
)

// Record is one stored document and its primary key.
type Record struct {
	Key  string
	Data []byte
}

// Ops are the primitives available both on the store and inside a transaction.
//
// Sequences returned by Scan and ScanByIndex are lazy: they hold an open cursor
// until iteration ends, so callers must not issue other operations on the same
// Ops from inside the loop. They are finite and cannot be restarted.
type Ops interface {
	// Get returns nil, nil when no record has the key.
	Get(ctx context.Context, collection, key string) (*Record, error)
	// Put upserts data under key. An empty key on an auto-key collection inserts a
	// new record; the effective key is returned.
	Put(ctx context.Context, collection, key string, data []byte) (string, error)
	// Delete is a no-op when the key is absent.
	Delete(ctx context.Context, collection, key string) error
	Scan(ctx context.Context, collection string) iter.Seq2[Record, error]
	// ScanByIndex yields records whose index fields equal values, in key order.
	ScanByIndex(ctx context.Context, collection, index string, values ...string) iter.Seq2[Record, error]
	Clear(ctx context.Context, collection string) error
}

// Store is a process-wide handle.
type Store interface {
	Ops
	// Tx runs fn inside one transaction spanning any collections. The transaction
	// commits when fn returns nil and rolls back otherwise.
	Tx(ctx context.Context, fn func(Ops) error) error
	Version() int
	Close() error
}
