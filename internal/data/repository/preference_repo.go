package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/store"

	"go.uber.org/zap"
)

type PreferenceRepository interface {
	Get(ctx context.Context, key string) (*entity.Preference, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type preferenceRepository struct {
	db  store.Ops
	log *zap.Logger
}

func NewPreferenceRepository(db store.Ops, log *zap.Logger) PreferenceRepository {
	return &preferenceRepository{
		db:  db,
		log: log.With(zap.String("repository", "preference")),
	}
}

func (r *preferenceRepository) Get(ctx context.Context, key string) (*entity.Preference, error) {
	rec, err := r.db.Get(ctx, store.CollectionPreferences, key)
	if err != nil {
		r.log.Error("Failed to get preference", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("get preference %s: %w", key, err)
	}
	if rec == nil {
		return nil, nil
	}

	var pref entity.Preference
	if err := json.Unmarshal(rec.Data, &pref); err != nil {
		return nil, fmt.Errorf("decode preference %s: %w", key, err)
	}
	pref.Key = rec.Key
	return &pref, nil
}

func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	pref := entity.Preference{Key: key, Value: value}
	if _, err := put(ctx, r.db, store.CollectionPreferences, key, pref); err != nil {
		r.log.Error("Failed to set preference", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

func (r *preferenceRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.Delete(ctx, store.CollectionPreferences, key); err != nil {
		r.log.Error("Failed to delete preference", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}
