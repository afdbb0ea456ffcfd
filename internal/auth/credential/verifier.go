package credential

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// Outcome is what a single Comparator concluded about a presented secret.
type Outcome int

const (
	NoMatch Outcome = iota
	Match
	// MatchNeedsRehash means the secret matched a value that must be
	// replaced by a fresh hash.
	MatchNeedsRehash
)

// Comparator is one step of credential verification.
type Comparator interface {
	Compare(ctx context.Context, stored, secret string) (Outcome, error)
}

// CredentialStore persists a rehashed credential.
type CredentialStore interface {
	UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
}

type Result struct {
	Valid    bool
	Migrated bool
}

// HashedComparator checks the secret against a bcrypt or argon2id hash.
type HashedComparator struct {
	h *Hasher
}

func NewHashedComparator(h *Hasher) *HashedComparator {
	return &HashedComparator{h: h}
}

func (c *HashedComparator) Compare(ctx context.Context, stored, secret string) (Outcome, error) {
	if !IsHash(stored) {
		return NoMatch, nil
	}

	err := c.h.Compare(ctx, stored, secret)
	switch {
	case err == nil:
		return Match, nil
	case errors.Is(err, ErrMismatch), errors.Is(err, ErrMalformedHash):
		return NoMatch, nil
	default:
		return NoMatch, err
	}
}

// LegacyPlaintextComparator accepts accounts created before hashing was
// enforced, whose stored credential is the secret itself.
type LegacyPlaintextComparator struct{}

func (LegacyPlaintextComparator) Compare(_ context.Context, stored, secret string) (Outcome, error) {
	if stored == "" || IsHash(stored) {
		return NoMatch, nil
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(secret)) == 1 {
		return MatchNeedsRehash, nil
	}
	return NoMatch, nil
}

type Verifier struct {
	hasher       *Hasher
	store        CredentialStore
	storeTimeout time.Duration
	comparators  []Comparator
}

type Option func(*Verifier)

// WithStoreTimeout bounds the migration write.
func WithStoreTimeout(d time.Duration) Option {
	return func(v *Verifier) {
		if d > 0 {
			v.storeTimeout = d
		}
	}
}

func NewVerifier(h *Hasher, store CredentialStore, opts ...Option) *Verifier {
	v := &Verifier{
		hasher:       h,
		store:        store,
		storeTimeout: config.DefaultStoreTimeout,
		comparators: []Comparator{
			NewHashedComparator(h),
			LegacyPlaintextComparator{},
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify runs the comparators in order. A legacy match is migrated to a
// hashed credential; a failed migration write is logged and the login still
// succeeds with Migrated=false.
func (v *Verifier) Verify(ctx context.Context, account *md.Account, secret string) (Result, error) {
	const op = "credential.Verify.auth"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if secret == "" {
		return Result{}, nil
	}

	for _, cmp := range v.comparators {
		outcome, err := cmp.Compare(ctx, account.Password, secret)
		if err != nil {
			return Result{}, err
		}

		switch outcome {
		case Match:
			return Result{Valid: true}, nil
		case MatchNeedsRehash:
			return Result{Valid: true, Migrated: v.migrate(ctx, account, secret)}, nil
		}
	}

	return Result{}, nil
}

func (v *Verifier) migrate(ctx context.Context, account *md.Account, secret string) bool {
	const op = "credential.migrate.auth"

	hashed, err := v.hasher.Hash(ctx, secret)
	if err != nil {
		zap.L().Error(
			"failed to hash legacy credential",
			zap.String("op", op),
			zap.String("account", account.ID.String()),
			zap.Error(err),
		)
		return false
	}

	sctx, cancel := context.WithTimeout(ctx, v.storeTimeout)
	defer cancel()

	if err = v.store.UpdatePassword(sctx, account.ID, hashed); err != nil {
		zap.L().Error(
			"failed to persist migrated credential",
			zap.String("op", op),
			zap.String("account", account.ID.String()),
			zap.Error(err),
		)
		return false
	}

	account.Password = hashed
	zap.L().Info(
		"migrated legacy plaintext credential",
		zap.String("op", op),
		zap.String("account", account.ID.String()),
	)
	return true
}
