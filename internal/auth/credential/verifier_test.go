package credential

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	mu       sync.Mutex
	writes   map[uuid.UUID]string
	err      error
	deadline time.Time
}

func (s *recordingStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadline, _ = ctx.Deadline()
	if s.err != nil {
		return s.err
	}
	if s.writes == nil {
		s.writes = map[uuid.UUID]string{}
	}
	s.writes[id] = hashed
	return nil
}

func testHasher(alg string) *Hasher {
	return NewHasher(config.HashConfig{Algorithm: alg, BcryptCost: 4, Concurrency: 2})
}

func TestVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	h := testHasher(AlgBcrypt)

	hashed, err := h.Hash(ctx, "s3cret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		stored   string
		secret   string
		storeErr error
		expected Result
		written  bool
	}{
		{
			name:     "HashedMatch",
			stored:   hashed,
			secret:   "s3cret",
			expected: Result{Valid: true},
		},
		{
			name:     "HashedMismatch",
			stored:   hashed,
			secret:   "wrong",
			expected: Result{},
		},
		{
			name:     "HashedValueUsedAsSecret",
			stored:   hashed,
			secret:   hashed,
			expected: Result{},
		},
		{
			name:     "LegacyPlaintextMigrated",
			stored:   "plain-pass",
			secret:   "plain-pass",
			expected: Result{Valid: true, Migrated: true},
			written:  true,
		},
		{
			name:     "LegacyPlaintextMismatch",
			stored:   "plain-pass",
			secret:   "other-pass",
			expected: Result{},
		},
		{
			name:     "LegacyMigrationWriteFails",
			stored:   "plain-pass",
			secret:   "plain-pass",
			storeErr: errors.New("db down"),
			expected: Result{Valid: true, Migrated: false},
		},
		{
			name:     "EmptySecret",
			stored:   "",
			secret:   "",
			expected: Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{err: tt.storeErr}
			v := NewVerifier(h, store)
			account := &md.Account{ID: uuid.New(), Password: tt.stored}

			res, err := v.Verify(ctx, account, tt.secret)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res)

			written, ok := store.writes[account.ID]
			assert.Equal(t, tt.written, ok)
			if tt.written {
				assert.NotEqual(t, tt.secret, written)
				assert.True(t, IsHash(written))
				assert.Equal(t, written, account.Password)
			} else {
				assert.Equal(t, tt.stored, account.Password)
			}
		})
	}
}

func TestVerifier_MigratesOnce(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{}
	v := NewVerifier(testHasher(AlgBcrypt), store)
	account := &md.Account{ID: uuid.New(), Password: "legacy"}

	res, err := v.Verify(ctx, account, "legacy")
	require.NoError(t, err)
	assert.Equal(t, Result{Valid: true, Migrated: true}, res)

	delete(store.writes, account.ID)

	res, err = v.Verify(ctx, account, "legacy")
	require.NoError(t, err)
	assert.Equal(t, Result{Valid: true}, res)
	assert.Empty(t, store.writes)
}

func TestVerifier_MigrationWriteIsBounded(t *testing.T) {
	store := &recordingStore{}
	v := NewVerifier(testHasher(AlgBcrypt), store, WithStoreTimeout(time.Second))

	start := time.Now()
	res, err := v.Verify(context.Background(), &md.Account{ID: uuid.New(), Password: "legacy"}, "legacy")
	require.NoError(t, err)
	assert.True(t, res.Migrated)

	require.False(t, store.deadline.IsZero())
	assert.WithinDuration(t, start.Add(time.Second), store.deadline, time.Second)
}

func TestHasher_Argon2(t *testing.T) {
	ctx := context.Background()
	h := testHasher(AlgArgon2id)

	hashed, err := h.Hash(ctx, "pw")
	require.NoError(t, err)
	assert.True(t, IsHash(hashed))

	assert.NoError(t, h.Compare(ctx, hashed, "pw"))
	assert.ErrorIs(t, h.Compare(ctx, hashed, "nope"), ErrMismatch)
	assert.ErrorIs(t, h.Compare(ctx, "$argon2id$broken", "pw"), ErrMalformedHash)

	for _, params := range []string{"m=65536,t=1,p=0", "m=65536,t=0,p=2"} {
		parts := strings.Split(hashed, "$")
		parts[3] = params
		assert.ErrorIs(t, h.Compare(ctx, strings.Join(parts, "$"), "pw"), ErrMalformedHash, params)
	}

	v := NewVerifier(testHasher(AlgBcrypt), &recordingStore{})
	res, err := v.Verify(ctx, &md.Account{ID: uuid.New(), Password: hashed}, "pw")
	require.NoError(t, err)
	assert.Equal(t, Result{Valid: true}, res)
}

func TestHasher_RespectsContext(t *testing.T) {
	h := NewHasher(config.HashConfig{BcryptCost: 4, Concurrency: 1})
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, h.limit.Acquire(context.Background(), 1))
	defer h.limit.Release(1)

	cancel()
	_, err := h.Hash(ctx, "pw")
	assert.ErrorIs(t, err, context.Canceled)
}
