package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/store"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) (*Repository, *store.SQLStore) {
	t.Helper()
	s, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "repo.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewRepository(s, zap.NewNop()), s
}

func seedDishes(t *testing.T, repo *Repository, ids ...string) {
	t.Helper()
	dishes := make([]*entity.Dish, 0, len(ids))
	for _, id := range ids {
		dishes = append(dishes, &entity.Dish{BaseSimple: entity.BaseSimple{ID: id}, Name: "Dish " + id, Price: 10})
	}
	require.NoError(t, repo.Dish.ReplaceAll(context.Background(), dishes))
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	john := &entity.User{Base: entity.Base{ID: "u1"}, FirstName: "John", LastName: "Doe", Phone: "123456789", Password: "hash"}
	jane := &entity.User{Base: entity.Base{ID: "u2"}, FirstName: "Jane", LastName: "Doe", Phone: "987654321", Password: "hash"}
	require.NoError(t, repo.User.Create(ctx, john))
	require.NoError(t, repo.User.Create(ctx, jane))

	got, err := repo.User.FindByID(ctx, "u1")
	require.NoError(t, err)
	if diff := cmp.Diff(john, got); diff != "" {
		t.Errorf("FindByID mismatch (-want +got):\n%s", diff)
	}

	got, err = repo.User.FindByPhone(ctx, "987654321")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u2", got.ID)

	got, err = repo.User.FindByPhone(ctx, "000")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.User.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	john.FirstName = "Johnny"
	require.NoError(t, repo.User.Update(ctx, john))
	got, err = repo.User.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Johnny", got.FirstName)

	all, err := repo.User.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDishReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	seedDishes(t, repo, "d1", "d2", "d3")
	seedDishes(t, repo, "d4")

	dishes, err := repo.Dish.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "d4", dishes[0].ID)

	dish, err := repo.Dish.FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, dish)
}

func TestCartAddMergesSameDish(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	seedDishes(t, repo, "d1", "d2")

	first := &entity.CartItem{UserID: "u1", DishID: "d1", Quantity: 2}
	require.NoError(t, repo.Cart.Add(ctx, first))
	second := &entity.CartItem{UserID: "u1", DishID: "d1", Quantity: 3}
	require.NoError(t, repo.Cart.Add(ctx, second))
	require.NoError(t, repo.Cart.Add(ctx, &entity.CartItem{UserID: "u2", DishID: "d1", Quantity: 1}))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	items, err := repo.Cart.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	assert.ErrorIs(t, repo.Cart.Add(ctx, &entity.CartItem{UserID: "u1", DishID: "d2", Quantity: 0}), ErrInvalidQuantity)
}

func TestCartUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	item := &entity.CartItem{UserID: "u1", DishID: "d1", Quantity: 1}
	require.NoError(t, repo.Cart.Add(ctx, item))

	require.NoError(t, repo.Cart.UpdateQuantity(ctx, item.ID, 4))
	got, err := repo.Cart.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)

	assert.ErrorIs(t, repo.Cart.UpdateQuantity(ctx, item.ID, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, repo.Cart.UpdateQuantity(ctx, item.ID, -1), ErrInvalidQuantity)
	assert.ErrorIs(t, repo.Cart.UpdateQuantity(ctx, "9999", 2), ErrNotFound)

	require.NoError(t, repo.Cart.Remove(ctx, item.ID))
	require.NoError(t, repo.Cart.Remove(ctx, item.ID))
	got, err = repo.Cart.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCartLinesDropMissingDish(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	seedDishes(t, repo, "d1")

	require.NoError(t, repo.Cart.Add(ctx, &entity.CartItem{UserID: "u1", DishID: "d1", Quantity: 2}))
	require.NoError(t, repo.Cart.Add(ctx, &entity.CartItem{UserID: "u1", DishID: "gone", Quantity: 1}))

	lines, err := repo.Cart.FindLines(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "d1", lines[0].Dish.ID)
	assert.Equal(t, "Dish d1", lines[0].Dish.Name)
	assert.Equal(t, 2, lines[0].Quantity)

	require.NoError(t, repo.Cart.Clear(ctx, "u1"))
	items, err := repo.Cart.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	order := &entity.Order{UserID: "u1"}
	require.NoError(t, repo.Order.Create(ctx, order))
	require.NotEmpty(t, order.ID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())

	got, err := repo.Order.FindByID(ctx, order.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(order, got); diff != "" {
		t.Errorf("FindByID mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusInProgress))
	assert.ErrorIs(t, repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusPending), ErrInvalidTransition)
	require.NoError(t, repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusDelivered))
	assert.ErrorIs(t, repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled), ErrInvalidTransition)
	assert.ErrorIs(t, repo.Order.UpdateStatus(ctx, "424242", entity.OrderStatusCancelled), ErrNotFound)

	assert.Error(t, repo.Order.Create(ctx, &entity.Order{UserID: "u1", Status: "shipped"}))

	require.NoError(t, repo.Order.Create(ctx, &entity.Order{UserID: "u2"}))
	orders, err := repo.Order.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, entity.OrderStatusDelivered, orders[0].Status)
}

func TestOrderDetails(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	require.NoError(t, repo.OrderDetail.Create(ctx, &entity.OrderDetail{OrderID: "1", DishID: "d1", Quantity: 2}))
	require.NoError(t, repo.OrderDetail.Create(ctx, &entity.OrderDetail{OrderID: "1", DishID: "d2", Quantity: 1}))
	require.NoError(t, repo.OrderDetail.Create(ctx, &entity.OrderDetail{OrderID: "2", DishID: "d1", Quantity: 7}))
	assert.ErrorIs(t, repo.OrderDetail.Create(ctx, &entity.OrderDetail{OrderID: "1", DishID: "d3"}), ErrInvalidQuantity)

	details, err := repo.OrderDetail.FindByOrderID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "d1", details[0].DishID)
	assert.Equal(t, 2, details[0].Quantity)
	assert.Equal(t, "d2", details[1].DishID)
}

func TestFavoriteUniqueness(t *testing.T) {
	ctx := context.Background()
	repo, s := newTestRepository(t)
	seedDishes(t, repo, "d1", "d2")

	added, err := repo.Favorite.Add(ctx, "u1", "d1")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = repo.Favorite.Add(ctx, "u1", "d1")
	require.NoError(t, err)
	assert.False(t, added)

	count := func(user, dish string) int {
		n := 0
		for _, err := range s.ScanByIndex(ctx, store.CollectionFavorites, store.IndexUserDish, user, dish) {
			require.NoError(t, err)
			n++
		}
		return n
	}
	assert.Equal(t, 1, count("u1", "d1"))

	exists, err := repo.Favorite.Exists(ctx, "u1", "d1")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Favorite.Add(ctx, "u1", "gone")
	require.NoError(t, err)
	dishes, err := repo.Favorite.FindDishes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "d1", dishes[0].ID)

	removed, err := repo.Favorite.Remove(ctx, "u1", "d1")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.Favorite.Remove(ctx, "u1", "d1")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, count("u1", "d1"))
}

func TestPreferenceRepository(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	pref, err := repo.Preference.Get(ctx, entity.PreferenceAuthToken)
	require.NoError(t, err)
	assert.Nil(t, pref)

	require.NoError(t, repo.Preference.Set(ctx, entity.PreferenceAuthToken, "abc"))
	pref, err = repo.Preference.Get(ctx, entity.PreferenceAuthToken)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, "abc", pref.Value)

	require.NoError(t, repo.Preference.Delete(ctx, entity.PreferenceAuthToken))
	pref, err = repo.Preference.Get(ctx, entity.PreferenceAuthToken)
	require.NoError(t, err)
	assert.Nil(t, pref)
}

func TestAtomicRollsBack(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Cart.Add(ctx, &entity.CartItem{UserID: "u1", DishID: "d1", Quantity: 1}))

	boom := errors.New("boom")
	err := repo.Atomic(ctx, func(tx *Repository) error {
		if err := tx.Order.Create(ctx, &entity.Order{UserID: "u1"}); err != nil {
			return err
		}
		if err := tx.Cart.Clear(ctx, "u1"); err != nil {
			return err
		}
		// Nested calls join the outer transaction.
		return tx.Atomic(ctx, func(*Repository) error { return boom })
	})
	assert.ErrorIs(t, err, boom)

	orders, err := repo.Order.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, orders)
	items, err := repo.Cart.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
