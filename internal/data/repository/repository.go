package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"

	"food-ordering/internal/data/store"

	"go.uber.org/zap"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

type Repository struct {
	User        UserRepository
	Dish        DishRepository
	Cart        CartRepository
	Order       OrderRepository
	OrderDetail OrderDetailRepository
	Favorite    FavoriteRepository
	Preference  PreferenceRepository

	store store.Store
	log   *zap.Logger
}

func NewRepository(s store.Store, log *zap.Logger) *Repository {
	r := bind(s, log)
	r.store = s
	return r
}

func bind(ops store.Ops, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(ops, log),
		Dish:        NewDishRepository(ops, log),
		Cart:        NewCartRepository(ops, log),
		Order:       NewOrderRepository(ops, log),
		OrderDetail: NewOrderDetailRepository(ops, log),
		Favorite:    NewFavoriteRepository(ops, log),
		Preference:  NewPreferenceRepository(ops, log),
		log:         log,
	}
}

// Atomic runs fn with every repository bound to a single store transaction.
// Calling Atomic on the repositories passed to fn joins that transaction.
func (r *Repository) Atomic(ctx context.Context, fn func(tx *Repository) error) error {
	if r.store == nil {
		return fn(r)
	}
	return r.store.Tx(ctx, func(ops store.Ops) error {
		return fn(bind(ops, r.log))
	})
}

type keyed[T any] interface {
	*T
	SetID(string)
}

func decode[T any, PT keyed[T]](rec store.Record) (*T, error) {
	var v T
	if err := json.Unmarshal(rec.Data, &v); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", rec.Key, err)
	}
	PT(&v).SetID(rec.Key)
	return &v, nil
}

// collect drains seq before returning so callers can issue further store calls.
func collect[T any, PT keyed[T]](seq iter.Seq2[store.Record, error]) ([]*T, error) {
	var out []*T
	for rec, err := range seq {
		if err != nil {
			return nil, err
		}
		v, err := decode[T, PT](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func get[T any, PT keyed[T]](ctx context.Context, ops store.Ops, collection, key string) (*T, error) {
	rec, err := ops.Get(ctx, collection, key)
	if err != nil || rec == nil {
		return nil, err
	}
	return decode[T, PT](*rec)
}

func put(ctx context.Context, ops store.Ops, collection, key string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s record: %w", collection, err)
	}
	return ops.Put(ctx, collection, key, data)
}
