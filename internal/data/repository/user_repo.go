package repository

import (
	"context"
	"fmt"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/store"

	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type userRepository struct {
	db  store.Ops
	log *zap.Logger
}

func NewUserRepository(db store.Ops, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user record keyed by user.ID
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	if _, err := put(ctx, ur.db, store.CollectionUsers, user.ID, user); err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("user_id", user.ID),
			zap.String("phone", user.Phone),
		)
		return fmt.Errorf("create user %s: %w", user.Phone, err)
	}
	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := get[entity.User](ctx, ur.db, store.CollectionUsers, id)
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id, err)
	}
	return user, nil
}

// FindByPhone walks the whole users collection and returns the first match.
// There is no phone index, so this is O(n) in the number of users.
func (ur *userRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	for rec, err := range ur.db.Scan(ctx, store.CollectionUsers) {
		if err != nil {
			ur.log.Error("Failed to find user by phone",
				zap.Error(err),
				zap.String("phone", phone),
			)
			return nil, fmt.Errorf("find user by phone %s: %w", phone, err)
		}
		user, err := decode[entity.User](rec)
		if err != nil {
			return nil, fmt.Errorf("find user by phone %s: %w", phone, err)
		}
		if user.Phone == phone {
			return user, nil
		}
	}
	return nil, nil
}

func (ur *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	users, err := collect[entity.User](ur.db.Scan(ctx, store.CollectionUsers))
	if err != nil {
		ur.log.Error("Failed to find all users", zap.Error(err))
		return nil, fmt.Errorf("find all users: %w", err)
	}
	return users, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	if _, err := put(ctx, ur.db, store.CollectionUsers, user.ID, user); err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID),
		)
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	return nil
}
