package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/repository"
	"food-ordering/pkg/utils"

	"go.uber.org/zap"
)

// Session owns the client's auth token. While a token is set a background
// loop synchronizes with the remote API every SyncInterval.
type Session struct {
	prefs    repository.PreferenceRepository
	baseURL  string
	interval time.Duration
	log      *zap.Logger

	mu    sync.Mutex
	token string
	stop  chan struct{}
	done  chan struct{}

	syncs atomic.Int64
}

func NewSession(prefs repository.PreferenceRepository, remote utils.RemoteConfig, log *zap.Logger) *Session {
	return &Session{
		prefs:    prefs,
		baseURL:  remote.BaseURL,
		interval: remote.SyncInterval,
		log:      log.With(zap.String("component", "session")),
	}
}

// SetToken persists token and starts synchronization.
func (s *Session) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.prefs.Set(ctx, entity.PreferenceAuthToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.startSyncLocked()
	return nil
}

// Restore loads a previously persisted token. It reports whether one was found.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	pref, err := s.prefs.Get(ctx, entity.PreferenceAuthToken)
	if err != nil {
		return false, fmt.Errorf("load token: %w", err)
	}
	if pref == nil || pref.Value == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = pref.Value
	s.startSyncLocked()
	return true, nil
}

// Clear forgets the token, in memory and on disk, and stops synchronization.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.stopSyncLocked()
	s.mu.Unlock()

	if err := s.prefs.Delete(ctx, entity.PreferenceAuthToken); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Close stops synchronization and keeps the persisted token.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopSyncLocked()
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// AuthHeaders returns the headers an outgoing API request would carry.
func (s *Session) AuthHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if token := s.Token(); token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func (s *Session) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// SyncCount reports how many synchronization rounds have run.
func (s *Session) SyncCount() int64 {
	return s.syncs.Load()
}

func (s *Session) startSyncLocked() {
	if s.stop != nil || s.interval <= 0 {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.syncOnce()
			}
		}
	}()
}

func (s *Session) stopSyncLocked() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
}

// syncOnce is where a push/pull against the remote API would go. There is no
// remote API yet, so a round only records that it ran.
func (s *Session) syncOnce() {
	n := s.syncs.Add(1)
	s.log.Debug("Synchronizing with remote API",
		zap.String("base_url", s.baseURL),
		zap.Int64("round", n),
	)
}
