package store

import (
	"context"
	"errors"
	"iter"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestStore(t *testing.T) (*SQLStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	s, err := OpenSQLite(context.Background(), path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func collect(t *testing.T, seq iter.Seq2[Record, error]) []Record {
	t.Helper()
	var out []Record
	for rec, err := range seq {
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)
	assert.Equal(t, SchemaVersion, s.Version())

	_, err := s.Put(ctx, CollectionUsers, "u1", []byte(`{"phone":"123"}`))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(ctx, path, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, SchemaVersion, reopened.Version())
	rec, err := reopened.Get(ctx, CollectionUsers, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.JSONEq(t, `{"phone":"123"}`, string(rec.Data))
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)
	_, err := s.db.ExecContext(ctx, `UPDATE schema_meta SET version = ? WHERE name = ?`, SchemaVersion+1, metaName)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = OpenSQLite(ctx, path, zap.NewNop())
	assert.ErrorContains(t, err, "newer than supported")
}

func TestGetPutDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	rec, err := s.Get(ctx, CollectionDishes, "missing")
	require.NoError(t, err)
	assert.Nil(t, rec)

	key, err := s.Put(ctx, CollectionDishes, "d1", []byte(`{"name":"Thiebou Djeun"}`))
	require.NoError(t, err)
	assert.Equal(t, "d1", key)

	_, err = s.Put(ctx, CollectionDishes, "d1", []byte(`{"name":"Thiebou Guinar"}`))
	require.NoError(t, err)

	rec, err = s.Get(ctx, CollectionDishes, "d1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "d1", rec.Key)
	assert.JSONEq(t, `{"name":"Thiebou Guinar"}`, string(rec.Data))

	require.NoError(t, s.Delete(ctx, CollectionDishes, "d1"))
	require.NoError(t, s.Delete(ctx, CollectionDishes, "d1"))

	rec, err = s.Get(ctx, CollectionDishes, "d1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestPutValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	_, err := s.Put(ctx, CollectionUsers, "", []byte(`{}`))
	assert.ErrorContains(t, err, "key is required")

	_, err = s.Put(ctx, CollectionUsers, "u1", []byte(`not json`))
	assert.ErrorContains(t, err, "not valid JSON")

	_, err = s.Put(ctx, CollectionCartItems, "abc", []byte(`{}`))
	assert.ErrorContains(t, err, "invalid key")
}

func TestAutoKeys(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	first, err := s.Put(ctx, CollectionOrders, "", []byte(`{"user_id":"u1"}`))
	require.NoError(t, err)
	second, err := s.Put(ctx, CollectionOrders, "", []byte(`{"user_id":"u1"}`))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// Explicit key on an auto collection updates in place.
	_, err = s.Put(ctx, CollectionOrders, first, []byte(`{"user_id":"u2"}`))
	require.NoError(t, err)
	rec, err := s.Get(ctx, CollectionOrders, first)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"u2"}`, string(rec.Data))

	rec, err = s.Get(ctx, CollectionOrders, "not-a-number")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, s.Delete(ctx, CollectionOrders, "not-a-number"))
}

func TestScanByIndex(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	for _, doc := range []string{
		`{"user_id":"u1","dish_id":"d1","quantity":1}`,
		`{"user_id":"u2","dish_id":"d1","quantity":2}`,
		`{"user_id":"u1","dish_id":"d2","quantity":3}`,
	} {
		_, err := s.Put(ctx, CollectionCartItems, "", []byte(doc))
		require.NoError(t, err)
	}

	recs := collect(t, s.ScanByIndex(ctx, CollectionCartItems, IndexUserID, "u1"))
	require.Len(t, recs, 2)
	assert.JSONEq(t, `{"user_id":"u1","dish_id":"d1","quantity":1}`, string(recs[0].Data))
	assert.JSONEq(t, `{"user_id":"u1","dish_id":"d2","quantity":3}`, string(recs[1].Data))

	assert.Empty(t, collect(t, s.ScanByIndex(ctx, CollectionCartItems, IndexUserID, "nobody")))
	assert.Len(t, collect(t, s.Scan(ctx, CollectionCartItems)), 3)

	// Stopping early releases the cursor.
	for range s.Scan(ctx, CollectionCartItems) {
		break
	}
	require.NoError(t, s.Clear(ctx, CollectionCartItems))
	assert.Empty(t, collect(t, s.Scan(ctx, CollectionCartItems)))
}

func TestCompositeUniqueIndex(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	_, err := s.Put(ctx, CollectionFavorites, "", []byte(`{"user_id":"u1","dish_id":"d1"}`))
	require.NoError(t, err)
	_, err = s.Put(ctx, CollectionFavorites, "", []byte(`{"user_id":"u1","dish_id":"d2"}`))
	require.NoError(t, err)

	_, err = s.Put(ctx, CollectionFavorites, "", []byte(`{"user_id":"u1","dish_id":"d1"}`))
	assert.ErrorIs(t, err, ErrConstraint)

	recs := collect(t, s.ScanByIndex(ctx, CollectionFavorites, IndexUserDish, "u1", "d2"))
	require.Len(t, recs, 1)

	for _, err := range s.ScanByIndex(ctx, CollectionFavorites, IndexUserDish, "u1") {
		assert.ErrorContains(t, err, "expects 2 values")
	}
}

func TestUnknownNames(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	_, err := s.Get(ctx, "reviews", "1")
	assert.ErrorIs(t, err, ErrUnknownCollection)
	_, err = s.Put(ctx, "reviews", "1", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownCollection)
	assert.ErrorIs(t, s.Delete(ctx, "reviews", "1"), ErrUnknownCollection)

	for _, err := range s.ScanByIndex(ctx, CollectionCartItems, "dish_id", "d1") {
		assert.ErrorIs(t, err, ErrUnknownIndex)
	}
	for _, err := range s.Scan(ctx, "reviews") {
		assert.ErrorIs(t, err, ErrUnknownCollection)
	}
}

func TestTx(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	err := s.Tx(ctx, func(ops Ops) error {
		if _, err := ops.Put(ctx, CollectionOrders, "", []byte(`{"user_id":"u1"}`)); err != nil {
			return err
		}
		_, err := ops.Put(ctx, CollectionOrderDetails, "", []byte(`{"order_id":"1"}`))
		return err
	})
	require.NoError(t, err)
	assert.Len(t, collect(t, s.Scan(ctx, CollectionOrders)), 1)
	assert.Len(t, collect(t, s.Scan(ctx, CollectionOrderDetails)), 1)

	boom := errors.New("boom")
	err = s.Tx(ctx, func(ops Ops) error {
		if _, err := ops.Put(ctx, CollectionOrders, "", []byte(`{"user_id":"u2"}`)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, collect(t, s.Scan(ctx, CollectionOrders)), 1)
}

func TestCancelledContext(t *testing.T) {
	s, _ := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, CollectionUsers, "u1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Tx(ctx, func(Ops) error { return nil }), context.Canceled)
}
