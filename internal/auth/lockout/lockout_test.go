package lockout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*md.Account
	err      error
}

func (s *fakeStore) IncrementFailedAttempts(_ context.Context, id uuid.UUID, threshold int, lockUntil time.Time) (int, *time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, nil, s.err
	}
	a := s.accounts[id]
	a.FailedAttempts++
	if a.FailedAttempts >= threshold {
		until := lockUntil
		a.LockUntil = &until
	}
	return a.FailedAttempts, a.LockUntil, nil
}

func (s *fakeStore) ResetFailedAttempts(_ context.Context, id uuid.UUID, loginAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	a := s.accounts[id]
	a.FailedAttempts = 0
	a.LockUntil = nil
	a.LastLoginAt = &loginAt
	return nil
}

func TestIsLocked(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)
	future := now.Add(time.Minute)

	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{name: "NoLock", state: State{}, expected: false},
		{name: "CounterWithoutLock", state: State{FailedAttempts: 3}, expected: false},
		{name: "LockInFuture", state: State{FailedAttempts: 5, LockUntil: &future}, expected: true},
		{name: "LockExpired", state: State{FailedAttempts: 5, LockUntil: &past}, expected: false},
		{name: "LockEndsNow", state: State{FailedAttempts: 5, LockUntil: &now}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLocked(tt.state, now))
		})
	}
}

func TestPolicy_ThresholdThenExpiry(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	store := &fakeStore{accounts: map[uuid.UUID]*md.Account{id: {ID: id}}}

	now := time.Now()
	p := New(
		config.LockoutConfig{Threshold: 3, Duration: time.Minute * 30}, store,
		WithClock(func() time.Time { return now }),
	)

	account := &md.Account{ID: id}
	for i := 1; i < 3; i++ {
		st, err := p.RecordFailure(ctx, account)
		require.NoError(t, err)
		assert.Equal(t, i, st.FailedAttempts)
		assert.False(t, p.IsLocked(account))
	}

	st, err := p.RecordFailure(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, 3, st.FailedAttempts)
	require.NotNil(t, st.LockUntil)
	assert.True(t, p.IsLocked(account))

	now = now.Add(time.Minute * 29)
	assert.True(t, p.IsLocked(account))

	now = now.Add(time.Minute * 2)
	assert.False(t, p.IsLocked(account))
	assert.Equal(t, 3, account.FailedAttempts)

	st, err = p.RecordFailure(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, 4, st.FailedAttempts)
	assert.True(t, p.IsLocked(account))

	st, err = p.RecordSuccess(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, State{}, st)
	assert.False(t, p.IsLocked(account))
	assert.NotNil(t, account.LastLoginAt)
	assert.Equal(t, 0, store.accounts[id].FailedAttempts)
}

func TestPolicy_StoreError(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	store := &fakeStore{accounts: map[uuid.UUID]*md.Account{id: {ID: id}}, err: errors.New("boom")}
	p := New(config.LockoutConfig{}, store)

	account := &md.Account{ID: id, FailedAttempts: 2}
	st, err := p.RecordFailure(ctx, account)
	assert.Error(t, err)
	assert.Equal(t, 2, st.FailedAttempts)
	assert.Equal(t, config.LockoutThreshold, p.Threshold())

	_, err = p.RecordSuccess(ctx, account)
	assert.Error(t, err)
	assert.Equal(t, 2, account.FailedAttempts)
}
