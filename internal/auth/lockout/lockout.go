package lockout

import (
	"context"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// State is the lockout-relevant part of an account.
type State struct {
	FailedAttempts int
	LockUntil      *time.Time
}

func StateOf(a *md.Account) State {
	return State{FailedAttempts: a.FailedAttempts, LockUntil: a.LockUntil}
}

// IsLocked is a pure function of the counter, the lock expiry and now.
func IsLocked(s State, now time.Time) bool {
	return s.LockUntil != nil && now.Before(*s.LockUntil)
}

// Store applies counter changes atomically.
type Store interface {
	// IncrementFailedAttempts adds one failure and sets lock_until to
	// lockUntil when the new count reaches threshold.
	IncrementFailedAttempts(ctx context.Context, id uuid.UUID, threshold int, lockUntil time.Time) (int, *time.Time, error)
	ResetFailedAttempts(ctx context.Context, id uuid.UUID, loginAt time.Time) error
}

type Policy struct {
	threshold int
	duration  time.Duration
	store     Store
	now       func() time.Time
}

type Option func(*Policy)

// WithClock makes lock expiry follow the given clock.
func WithClock(now func() time.Time) Option {
	return func(p *Policy) {
		p.now = now
	}
}

func New(conf config.LockoutConfig, store Store, opts ...Option) *Policy {
	p := &Policy{
		threshold: conf.Threshold,
		duration:  conf.Duration,
		store:     store,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.threshold <= 0 {
		p.threshold = config.LockoutThreshold
	}
	if p.duration <= 0 {
		p.duration = config.LockoutDuration
	}
	return p
}

func (p *Policy) Threshold() int {
	return p.threshold
}

func (p *Policy) IsLocked(a *md.Account) bool {
	return IsLocked(StateOf(a), p.now())
}

// RecordFailure counts one failed attempt. The counter keeps growing past
// the threshold and is only reset by RecordSuccess.
func (p *Policy) RecordFailure(ctx context.Context, a *md.Account) (State, error) {
	const op = "lockout.RecordFailure.auth"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	count, until, err := p.store.IncrementFailedAttempts(ctx, a.ID, p.threshold, p.now().Add(p.duration))
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return StateOf(a), err
	}

	a.FailedAttempts = count
	a.LockUntil = until
	if count >= p.threshold {
		zap.L().Info(
			"account locked",
			zap.String("op", op),
			zap.String("account", a.ID.String()),
			zap.Int("attempts", count),
		)
	}

	return StateOf(a), nil
}

func (p *Policy) RecordSuccess(ctx context.Context, a *md.Account) (State, error) {
	const op = "lockout.RecordSuccess.auth"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	now := p.now()
	if err := p.store.ResetFailedAttempts(ctx, a.ID, now); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return StateOf(a), err
	}

	a.FailedAttempts = 0
	a.LockUntil = nil
	a.LastLoginAt = &now
	return StateOf(a), nil
}
