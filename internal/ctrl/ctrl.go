package ctrl

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/JMURv/session-guard/internal/audit"
	"github.com/JMURv/session-guard/internal/auth/credential"
	"github.com/JMURv/session-guard/internal/auth/jwt"
	"github.com/JMURv/session-guard/internal/auth/lockout"
	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/JMURv/session-guard/internal/presence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppRepo interface {
	accountRepo
	sessionRepo
	auditRepo
}

type AppCtrl interface {
	authCtrl
	sessionCtrl
}

type CacheService interface {
	io.Closer
	GetToStruct(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, t time.Duration, key string, val any)
	Delete(ctx context.Context, key string)
	InvalidateKeysByPattern(ctx context.Context, pattern string)
}

type Mailer interface {
	NewDeviceLogin(ctx context.Context, toEmail string, d *md.DeviceSession) error
}

type auditRepo interface {
	CreateAuditEvent(ctx context.Context, e *md.AuditEvent) error
}

type Controller struct {
	au       jwt.Port
	repo     AppRepo
	cache    CacheService
	verifier *credential.Verifier
	lockout  *lockout.Policy
	audit    audit.Sink
	presence presence.Notifier
	mailer   Mailer
	conf     config.AuthConfig
	now      func() time.Time
}

type Option func(*Controller)

func WithAudit(s audit.Sink) Option {
	return func(c *Controller) {
		c.audit = s
	}
}

func WithPresence(n presence.Notifier) Option {
	return func(c *Controller) {
		c.presence = n
	}
}

func WithMailer(m Mailer) Option {
	return func(c *Controller) {
		c.mailer = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func New(au jwt.Port, repo AppRepo, cache CacheService, conf config.Config, opts ...Option) *Controller {
	c := &Controller{
		au:       au,
		repo:     repo,
		cache:    cache,
		audit:    audit.NoOp{},
		presence: presence.NoOp{},
		conf:     conf.Auth,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.conf.StoreTimeout <= 0 {
		c.conf.StoreTimeout = config.DefaultStoreTimeout
	}
	if c.conf.MaxDevices <= 0 {
		c.conf.MaxDevices = config.DefaultMaxDevices
	}
	if c.conf.JWT.RefreshTTL <= 0 {
		c.conf.JWT.RefreshTTL = config.RefreshTokenDuration
	}
	if c.conf.DeviceLockDuration <= 0 {
		c.conf.DeviceLockDuration = config.DeviceLockDuration
	}

	c.lockout = lockout.New(c.conf.Lockout, repo, lockout.WithClock(c.now))
	c.verifier = credential.NewVerifier(
		credential.NewHasher(c.conf.Hash), repo,
		credential.WithStoreTimeout(c.conf.StoreTimeout),
	)
	return c
}

// storeCtx bounds a single store round trip.
func (c *Controller) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.conf.StoreTimeout)
}

// detachedCtx outlives the request so writes that follow token issuance
// complete even if the client goes away.
func (c *Controller) detachedCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), c.conf.StoreTimeout)
}

// unavailable logs an unexpected failure and collapses it into
// ErrServiceUnavailable.
func unavailable(op string, err error) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return err
	}
	zap.L().Error("store failure", zap.String("op", op), zap.Error(err))
	return ErrServiceUnavailable
}

func (c *Controller) deviceLimit(a *md.Account) int {
	if a != nil && a.MaxDevices > 0 {
		return a.MaxDevices
	}
	return c.conf.MaxDevices
}

func (c *Controller) emit(
	ctx context.Context,
	kind md.AuditKind,
	severity md.Severity,
	accountID *uuid.UUID,
	fingerprint string,
	meta map[string]any,
) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("audit sink panicked", zap.String("kind", string(kind)), zap.Any("error", r))
		}
	}()

	ip, _ := ctx.Value(config.IpKey).(string)
	c.audit.Record(
		ctx, md.AuditEvent{
			ID:          uuid.New(),
			AccountID:   accountID,
			Kind:        kind,
			Severity:    severity,
			Fingerprint: fingerprint,
			IP:          ip,
			Metadata:    meta,
			CreatedAt:   c.now(),
		},
	)
}

func sessionsCacheKey(accountID uuid.UUID) string {
	return "sessions:" + accountID.String()
}

func (c *Controller) invalidateSessions(ctx context.Context, accountID uuid.UUID) {
	c.cache.Delete(ctx, sessionsCacheKey(accountID))
}
