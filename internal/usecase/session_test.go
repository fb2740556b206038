package usecase

import (
	"context"
	"testing"
	"time"

	"food-ordering/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	session := svc.Session

	assert.False(t, session.Syncing())
	assert.Empty(t, session.AuthHeaders().Get("Authorization"))

	require.NoError(t, session.SetToken(ctx, "tok-1"))
	assert.True(t, session.Syncing())
	assert.Equal(t, "Bearer tok-1", session.AuthHeaders().Get("Authorization"))
	assert.Equal(t, "application/json", session.AuthHeaders().Get("Content-Type"))

	pref, err := repo.Preference.Get(ctx, entity.PreferenceAuthToken)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, "tok-1", pref.Value)

	require.Eventually(t, func() bool { return session.SyncCount() > 0 }, time.Second, 5*time.Millisecond)

	// Replacing the token keeps a single sync loop.
	require.NoError(t, session.SetToken(ctx, "tok-2"))
	assert.Equal(t, "tok-2", session.Token())

	require.NoError(t, svc.Auth.Logout(ctx))
	assert.False(t, session.Syncing())
	assert.Empty(t, session.Token())

	pref, err = repo.Preference.Get(ctx, entity.PreferenceAuthToken)
	require.NoError(t, err)
	assert.Nil(t, pref)

	rounds := session.SyncCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, rounds, session.SyncCount())
}

func TestSessionRestore(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	found, err := svc.Session.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Preference.Set(ctx, entity.PreferenceAuthToken, "persisted"))
	found, err = svc.Session.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "persisted", svc.Session.Token())
	assert.True(t, svc.Session.Syncing())

	svc.Session.Close()
	assert.False(t, svc.Session.Syncing())

	pref, err := repo.Preference.Get(ctx, entity.PreferenceAuthToken)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, "persisted", pref.Value)
}
