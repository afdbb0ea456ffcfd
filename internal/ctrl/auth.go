package ctrl

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/JMURv/session-guard/internal/auth/jwt"
	"github.com/JMURv/session-guard/internal/config"
	"github.com/JMURv/session-guard/internal/dto"
	md "github.com/JMURv/session-guard/internal/models"
	metrics "github.com/JMURv/session-guard/internal/observability/metrics/prometheus"
	"github.com/JMURv/session-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const (
	rotationExplicit    = "explicit"
	rotationTransparent = "transparent"
)

type authCtrl interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	Authorize(ctx context.Context, access, refresh string) (*dto.Principal, *dto.CredentialUpdate, error)
}

type accountRepo interface {
	GetAccountByEmail(ctx context.Context, email string) (*md.Account, error)
	GetAccountByID(ctx context.Context, id uuid.UUID) (*md.Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
	IncrementFailedAttempts(ctx context.Context, id uuid.UUID, threshold int, lockUntil time.Time) (int, *time.Time, error)
	ResetFailedAttempts(ctx context.Context, id uuid.UUID, loginAt time.Time) error
}

func (c *Controller) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	const op = "auth.Login.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	fp := req.Device.EnsureFingerprint()

	sctx, cancel := c.storeCtx(ctx)
	account, err := c.repo.GetAccountByEmail(sctx, req.Email)
	cancel()
	if errors.Is(err, repo.ErrNotFound) {
		metrics.LoginResult("invalid")
		c.emit(ctx, md.AuditLoginFailed, md.SeverityWarning, nil, fp, map[string]any{"reason": "unknown_email"})
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return nil, unavailable(op, err)
	}

	if c.lockout.IsLocked(account) {
		metrics.LoginResult("locked")
		c.emit(ctx, md.AuditLoginFailed, md.SeverityWarning, &account.ID, fp, map[string]any{"reason": "account_locked"})
		return nil, ErrAccountLocked
	}

	res, err := c.verifier.Verify(ctx, account, req.Password)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return nil, unavailable(op, err)
	}

	if !res.Valid {
		return nil, c.loginFailed(ctx, account, fp)
	}

	if res.Migrated {
		c.emit(ctx, md.AuditCredentialMigrated, md.SeverityWarning, &account.ID, fp, nil)
	}

	sctx, cancel = c.storeCtx(ctx)
	_, err = c.lockout.RecordSuccess(sctx, account)
	cancel()
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return nil, unavailable(op, err)
	}

	session, created, err := c.FindOrCreate(ctx, account.ID, c.deviceLimit(account), &req.Device)
	if err != nil {
		var limitErr *DeviceLimitError
		if errors.As(err, &limitErr) {
			metrics.DeviceLimitRejected()
			c.emit(
				ctx, md.AuditDeviceLimitExceeded, md.SeverityWarning, &account.ID, fp, map[string]any{
					"active": limitErr.Active,
					"limit":  limitErr.Limit,
				},
			)
		}
		return nil, err
	}

	pair, err := c.issue(ctx, account, fp, req.RememberMe)
	if err != nil {
		return nil, err
	}

	if err = c.AttachTokens(ctx, session, pair); err != nil {
		return nil, err
	}

	metrics.LoginResult("success")
	c.emit(
		ctx, md.AuditLoginSuccess, md.SeverityInfo, &account.ID, fp, map[string]any{
			"session_id": session.ID.String(),
			"new_device": created,
		},
	)
	if created {
		c.notifyNewDevice(ctx, account.Email, session)
	}
	c.invalidateSessions(ctx, account.ID)

	return &dto.LoginResponse{
		Account:   dto.NewAccountSummary(account),
		Session:   dto.NewSessionSummary(session, fp),
		Access:    pair.Access,
		Refresh:   pair.Refresh,
		ExpiresIn: int64(c.au.AccessTTL().Seconds()),
	}, nil
}

func (c *Controller) loginFailed(ctx context.Context, account *md.Account, fp string) error {
	const op = "auth.loginFailed.ctrl"

	sctx, cancel := c.storeCtx(ctx)
	defer cancel()

	state, err := c.lockout.RecordFailure(sctx, account)
	if err != nil {
		return unavailable(op, err)
	}

	metrics.LoginResult("invalid")
	c.emit(
		ctx, md.AuditLoginFailed, md.SeverityWarning, &account.ID, fp, map[string]any{
			"reason":   "bad_credentials",
			"attempts": state.FailedAttempts,
		},
	)
	if state.FailedAttempts == c.lockout.Threshold() {
		c.emit(
			ctx, md.AuditAccountLocked, md.SeverityCritical, &account.ID, fp, map[string]any{
				"until": state.LockUntil,
			},
		)
	}
	return ErrInvalidCredentials
}

func (c *Controller) issue(ctx context.Context, a *md.Account, fp string, rememberMe bool) (*dto.TokenPair, error) {
	const op = "auth.issue.ctrl"

	pair, err := c.au.Issue(
		ctx, jwt.Subject{
			UID:         a.ID,
			Role:        a.Role,
			OrgID:       a.OrgID,
			Fingerprint: fp,
		}, rememberMe,
	)
	if err != nil {
		zap.L().Error("failed to issue tokens", zap.String("op", op), zap.Error(err))
		return nil, ErrServiceUnavailable
	}

	return &dto.TokenPair{
		Access:           pair.Access,
		Refresh:          pair.Refresh,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}

func (c *Controller) notifyNewDevice(ctx context.Context, email string, s *md.DeviceSession) {
	if c.mailer == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := c.mailer.NewDeviceLogin(ctx, email, s); err != nil {
			zap.L().Warn("failed to send new device alert", zap.String("session", s.ID.String()), zap.Error(err))
		}
	}()
}

func (c *Controller) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, error) {
	const op = "auth.Refresh.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	claims, err := c.au.VerifyRefresh(ctx, req.Refresh)
	if err != nil {
		zap.L().Debug("refresh token rejected", zap.String("op", op), zap.Error(err))
		return nil, ErrRefreshInvalid
	}

	if req.Fingerprint != "" && req.Fingerprint != claims.Fingerprint {
		return nil, ErrRefreshInvalid
	}

	pair, err := c.rotate(ctx, claims, req.Refresh, rotationExplicit)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshResponse{
		Access:    pair.Access,
		Refresh:   pair.Refresh,
		ExpiresIn: int64(c.au.AccessTTL().Seconds()),
	}, nil
}

// rotate exchanges a verified refresh token for a new pair. The presented
// token must still be the one stored on an active, unlocked session, and the
// store swaps it only if nobody rotated it in the meantime.
func (c *Controller) rotate(ctx context.Context, claims jwt.Claims, presented, path string) (*dto.TokenPair, error) {
	const op = "auth.rotate.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	sctx, cancel := c.storeCtx(ctx)
	s, err := c.repo.GetSession(sctx, claims.UID, claims.Fingerprint)
	cancel()
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrRefreshInvalid
	}
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return nil, unavailable(op, err)
	}

	if !s.IsActive {
		return nil, ErrRefreshInvalid
	}
	if s.IsLocked(c.now()) {
		return nil, ErrDeviceLocked
	}
	if subtle.ConstantTimeCompare([]byte(s.RefreshToken), []byte(presented)) != 1 {
		c.refreshReused(ctx, s)
		return nil, ErrRefreshInvalid
	}

	rememberMe := false
	if claims.ExpiresAt != nil && claims.IssuedAt != nil {
		rememberMe = claims.ExpiresAt.Sub(claims.IssuedAt.Time) > c.conf.JWT.RefreshTTL
	}

	pair, err := c.au.Issue(ctx, claims.ToSubject(), rememberMe)
	if err != nil {
		zap.L().Error("failed to issue tokens", zap.String("op", op), zap.Error(err))
		return nil, ErrServiceUnavailable
	}
	res := &dto.TokenPair{
		Access:           pair.Access,
		Refresh:          pair.Refresh,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}

	dctx, dcancel := c.detachedCtx(ctx)
	defer dcancel()

	err = c.repo.UpdateSessionTokens(dctx, s.ID, presented, res)
	if errors.Is(err, repo.ErrNotFound) {
		zap.L().Debug("refresh token rotated concurrently", zap.String("op", op))
		return nil, ErrRefreshInvalid
	}
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return nil, unavailable(op, err)
	}

	metrics.TokenRotated(path)
	c.emit(ctx, md.AuditTokenRefreshed, md.SeverityInfo, &claims.UID, claims.Fingerprint, map[string]any{"path": path})
	return res, nil
}

// refreshReused records a validly signed refresh token that is no longer the
// live one for its device.
func (c *Controller) refreshReused(ctx context.Context, s *md.DeviceSession) {
	const op = "auth.refreshReused.ctrl"

	sctx, cancel := c.storeCtx(ctx)
	defer cancel()

	if err := c.repo.IncrementSessionFailures(sctx, s.ID); err != nil {
		zap.L().Warn("failed to count device failure", zap.String("op", op), zap.Error(err))
	}
	c.emit(ctx, md.AuditRefreshReuse, md.SeverityCritical, &s.AccountID, s.Fingerprint, nil)
}

// Logout retires one device session, or every session of the account. The
// caller is identified from its tokens with expiry ignored, falling back to
// the stored refresh token. Logging out an inactive or unknown session
// succeeds.
func (c *Controller) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	const op = "auth.Logout.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	uid, fp, err := c.identify(ctx, req)
	if err != nil {
		return err
	}
	if uid == uuid.Nil {
		zap.L().Debug("logout without identity", zap.String("op", op))
		return nil
	}
	if req.Fingerprint != "" {
		fp = req.Fingerprint
	}

	sctx, cancel := c.storeCtx(ctx)
	defer cancel()

	now := c.now()
	if req.LogoutAll {
		n, err := c.repo.DeactivateAllSessions(sctx, uid, now)
		if err != nil {
			span.SetTag(config.ErrorSpanTag, true)
			return unavailable(op, err)
		}
		if n > 0 {
			c.presence.SessionsRevoked(ctx, uid)
		}
		c.emit(ctx, md.AuditLogout, md.SeverityInfo, &uid, fp, map[string]any{"all": true, "sessions": n})
		c.invalidateSessions(ctx, uid)
		return nil
	}

	s, err := c.repo.GetSession(sctx, uid, fp)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return unavailable(op, err)
	}

	changed, err := c.repo.DeactivateSession(sctx, s.ID, now)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return unavailable(op, err)
	}
	if changed {
		c.presence.DeviceLoggedOut(ctx, uid, fp)
		c.emit(ctx, md.AuditLogout, md.SeverityInfo, &uid, fp, nil)
		c.invalidateSessions(ctx, uid)
	}
	return nil
}

func (c *Controller) identify(ctx context.Context, req *dto.LogoutRequest) (uuid.UUID, string, error) {
	const op = "auth.identify.ctrl"

	if req.Access != "" {
		if claims, err := c.au.ParseIgnoringExpiry(ctx, req.Access, jwt.Access); err == nil {
			return claims.UID, claims.Fingerprint, nil
		}
	}

	if req.Refresh == "" {
		return uuid.Nil, "", nil
	}

	if claims, err := c.au.ParseIgnoringExpiry(ctx, req.Refresh, jwt.Refresh); err == nil {
		return claims.UID, claims.Fingerprint, nil
	}

	sctx, cancel := c.storeCtx(ctx)
	defer cancel()

	s, err := c.repo.GetSessionByRefreshToken(sctx, req.Refresh)
	if errors.Is(err, repo.ErrNotFound) {
		return uuid.Nil, "", nil
	}
	if err != nil {
		return uuid.Nil, "", unavailable(op, err)
	}
	return s.AccountID, s.Fingerprint, nil
}

// Authorize checks the credentials of an inbound request. A valid access
// token passes as is. An expired or missing one is replaced using the
// refresh token when that token is still the live one of an unlocked
// device; the new pair is returned for the transport to hand back.
func (c *Controller) Authorize(ctx context.Context, access, refresh string) (*dto.Principal, *dto.CredentialUpdate, error) {
	const op = "auth.Authorize.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if access != "" {
		claims, err := c.au.VerifyAccess(ctx, access)
		if err == nil {
			return principalOf(claims), nil, nil
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, ErrUnauthorized
		}
	}

	if refresh == "" {
		return nil, nil, ErrUnauthorized
	}

	claims, err := c.au.VerifyRefresh(ctx, refresh)
	if err != nil {
		return nil, nil, ErrUnauthorized
	}

	if access != "" {
		stale, err := c.au.ParseIgnoringExpiry(ctx, access, jwt.Access)
		if err != nil || stale.UID != claims.UID || stale.Fingerprint != claims.Fingerprint {
			zap.L().Debug("access and refresh tokens do not belong together", zap.String("op", op))
			return nil, nil, ErrUnauthorized
		}
	}

	pair, err := c.rotate(ctx, claims, refresh, rotationTransparent)
	if err != nil {
		if errors.Is(err, ErrServiceUnavailable) {
			return nil, nil, err
		}
		return nil, nil, ErrUnauthorized
	}

	return principalOf(claims), &dto.CredentialUpdate{
		Access:    pair.Access,
		Refresh:   pair.Refresh,
		ExpiresIn: int64(c.au.AccessTTL().Seconds()),
		Rotated:   true,
	}, nil
}

func principalOf(claims jwt.Claims) *dto.Principal {
	return &dto.Principal{
		UID:         claims.UID,
		Role:        claims.Role,
		OrgID:       claims.OrgID,
		Fingerprint: claims.Fingerprint,
	}
}
