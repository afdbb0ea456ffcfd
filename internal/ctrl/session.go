package ctrl

import (
	"context"
	"errors"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	"github.com/JMURv/session-guard/internal/dto"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/JMURv/session-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type sessionCtrl interface {
	FindOrCreate(ctx context.Context, accountID uuid.UUID, limit int, meta *dto.DeviceMeta) (*md.DeviceSession, bool, error)
	AttachTokens(ctx context.Context, s *md.DeviceSession, pair *dto.TokenPair) error
	SetAction(ctx context.Context, accountID, sessionID uuid.UUID, action dto.DeviceAction) error
	RecordActivity(ctx context.Context, accountID uuid.UUID, fingerprint string, req *dto.ActivityRequest) error
	ListSessions(ctx context.Context, accountID uuid.UUID, currentFP string) (*dto.ListSessionsResponse, error)
	DeleteSession(ctx context.Context, accountID, sessionID uuid.UUID, currentFP string) error
}

type sessionRepo interface {
	GetSession(ctx context.Context, accountID uuid.UUID, fingerprint string) (*md.DeviceSession, error)
	GetSessionByID(ctx context.Context, accountID, id uuid.UUID) (*md.DeviceSession, error)
	GetSessionByRefreshToken(ctx context.Context, token string) (*md.DeviceSession, error)
	CountActiveSessions(ctx context.Context, accountID uuid.UUID) (int, error)
	CreateSession(ctx context.Context, s *md.DeviceSession) error
	ReactivateSession(ctx context.Context, id uuid.UUID, meta *dto.DeviceMeta, at time.Time) (*md.DeviceSession, error)
	UpdateSessionTokens(ctx context.Context, id uuid.UUID, prevRefresh string, pair *dto.TokenPair) error
	SetSessionTrusted(ctx context.Context, id uuid.UUID, trusted bool) error
	SetSessionLock(ctx context.Context, id uuid.UUID, until *time.Time) error
	IncrementSessionFailures(ctx context.Context, id uuid.UUID) error
	DeactivateSession(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	DeactivateAllSessions(ctx context.Context, accountID uuid.UUID, at time.Time) (int64, error)
	AppendSessionAction(ctx context.Context, id uuid.UUID, entry md.ActionLogEntry, limit int) error
	ListSessions(ctx context.Context, accountID uuid.UUID, filters map[string]any) ([]md.DeviceSession, error)
	DeleteSession(ctx context.Context, accountID, id uuid.UUID) error
}

// FindOrCreate returns the session of (accountID, fingerprint), reactivating
// it when it exists and creating it otherwise. A session that is not active
// counts against limit before it comes back. The bool reports whether a new
// row was created.
func (c *Controller) FindOrCreate(
	ctx context.Context,
	accountID uuid.UUID,
	limit int,
	meta *dto.DeviceMeta,
) (*md.DeviceSession, bool, error) {
	const op = "sessions.FindOrCreate.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	fp := meta.EnsureFingerprint()
	sctx, cancel := c.storeCtx(ctx)
	defer cancel()

	existing, err := c.repo.GetSession(sctx, accountID, fp)
	switch {
	case err == nil:
		if !existing.IsActive {
			if err = c.checkDeviceLimit(sctx, accountID, limit); err != nil {
				return nil, false, err
			}
		}
		s, err := c.repo.ReactivateSession(sctx, existing.ID, meta, c.now())
		if err != nil {
			return nil, false, unavailable(op, err)
		}
		return s, false, nil

	case errors.Is(err, repo.ErrNotFound):
		if err = c.checkDeviceLimit(sctx, accountID, limit); err != nil {
			return nil, false, err
		}

	default:
		span.SetTag(config.ErrorSpanTag, true)
		return nil, false, unavailable(op, err)
	}

	now := c.now()
	s := &md.DeviceSession{
		AccountID:   accountID,
		Fingerprint: fp,
		Name:        meta.Name,
		DeviceType:  meta.DeviceType,
		OS:          meta.OS,
		Browser:     meta.Browser,
		UA:          meta.UA,
		IP:          meta.IP,
		LastActive:  now,
		ActionLog:   md.ActionLog{},
	}

	err = c.repo.CreateSession(sctx, s)
	if errors.Is(err, repo.ErrAlreadyExists) {
		zap.L().Debug(
			"session created concurrently, reusing it",
			zap.String("op", op),
			zap.String("account", accountID.String()),
		)
		s, err = c.reuseConcurrent(sctx, accountID, meta)
		return s, false, err
	}
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return nil, false, unavailable(op, err)
	}

	return s, true, nil
}

// reuseConcurrent loads the row another writer just inserted for the same
// device and counts this login on it.
func (c *Controller) reuseConcurrent(ctx context.Context, accountID uuid.UUID, meta *dto.DeviceMeta) (*md.DeviceSession, error) {
	const op = "sessions.reuseConcurrent.ctrl"

	other, err := c.repo.GetSession(ctx, accountID, meta.Fingerprint)
	if err != nil {
		return nil, unavailable(op, err)
	}

	s, err := c.repo.ReactivateSession(ctx, other.ID, meta, c.now())
	if err != nil {
		return nil, unavailable(op, err)
	}
	return s, nil
}

func (c *Controller) checkDeviceLimit(ctx context.Context, accountID uuid.UUID, limit int) error {
	const op = "sessions.checkDeviceLimit.ctrl"

	if limit <= 0 {
		limit = c.conf.MaxDevices
	}

	active, err := c.repo.CountActiveSessions(ctx, accountID)
	if err != nil {
		return unavailable(op, err)
	}
	if active >= limit {
		return &DeviceLimitError{Active: active, Limit: limit}
	}
	return nil
}

// AttachTokens stores a freshly issued pair on s. The write is detached from
// the request so a client that hangs up still ends with a usable session.
func (c *Controller) AttachTokens(ctx context.Context, s *md.DeviceSession, pair *dto.TokenPair) error {
	const op = "sessions.AttachTokens.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	sctx, cancel := c.detachedCtx(ctx)
	defer cancel()

	err := c.repo.UpdateSessionTokens(sctx, s.ID, "", pair)
	if errors.Is(err, repo.ErrNotFound) {
		zap.L().Debug("session vanished before tokens were attached", zap.String("op", op))
		err = c.recreate(sctx, s)
		if err == nil {
			err = c.repo.UpdateSessionTokens(sctx, s.ID, "", pair)
		}
	}
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return unavailable(op, err)
	}

	exp := pair.RefreshExpiresAt
	s.AccessToken = pair.Access
	s.RefreshToken = pair.Refresh
	s.TokenExpiresAt = &exp
	return nil
}

func (c *Controller) recreate(ctx context.Context, s *md.DeviceSession) error {
	fresh := *s
	fresh.ID = uuid.Nil
	fresh.ActionLog = md.ActionLog{}

	err := c.repo.CreateSession(ctx, &fresh)
	if errors.Is(err, repo.ErrAlreadyExists) {
		other, gErr := c.repo.GetSession(ctx, s.AccountID, s.Fingerprint)
		if gErr != nil {
			return gErr
		}
		s.ID = other.ID
		return nil
	}
	if err != nil {
		return err
	}

	s.ID = fresh.ID
	return nil
}

func (c *Controller) SetAction(ctx context.Context, accountID, sessionID uuid.UUID, action dto.DeviceAction) error {
	const op = "sessions.SetAction.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	switch action {
	case dto.ActionTrust, dto.ActionUntrust, dto.ActionLock, dto.ActionUnlock, dto.ActionLogout:
	default:
		return ErrInvalidAction
	}

	sctx, cancel := c.storeCtx(ctx)
	defer cancel()

	s, err := c.repo.GetSessionByID(sctx, accountID, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return unavailable(op, err)
	}

	switch action {
	case dto.ActionTrust:
		err = c.repo.SetSessionTrusted(sctx, s.ID, true)
	case dto.ActionUntrust:
		err = c.repo.SetSessionTrusted(sctx, s.ID, false)
	case dto.ActionLock:
		until := c.now().Add(c.conf.DeviceLockDuration)
		err = c.repo.SetSessionLock(sctx, s.ID, &until)
	case dto.ActionUnlock:
		err = c.repo.SetSessionLock(sctx, s.ID, nil)
	case dto.ActionLogout:
		var changed bool
		changed, err = c.repo.DeactivateSession(sctx, s.ID, c.now())
		if err == nil && changed {
			c.presence.DeviceLoggedOut(ctx, accountID, s.Fingerprint)
			c.emit(ctx, md.AuditLogout, md.SeverityInfo, &accountID, s.Fingerprint, map[string]any{"by": "device_action"})
		}
	}
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return unavailable(op, err)
	}

	c.invalidateSessions(ctx, accountID)
	return nil
}

func (c *Controller) RecordActivity(
	ctx context.Context,
	accountID uuid.UUID,
	fingerprint string,
	req *dto.ActivityRequest,
) error {
	const op = "sessions.RecordActivity.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	sctx, cancel := c.storeCtx(ctx)
	defer cancel()

	s, err := c.repo.GetSession(sctx, accountID, fingerprint)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return unavailable(op, err)
	}

	now := c.now()
	if s.IsLocked(now) {
		return ErrDeviceLocked
	}
	if !s.IsActive {
		return ErrUnauthorized
	}

	entry := md.ActionLogEntry{Action: req.Action, Details: req.Details, At: now}
	if err = c.repo.AppendSessionAction(sctx, s.ID, entry, config.ActionLogCap); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		return unavailable(op, err)
	}

	c.invalidateSessions(ctx, accountID)
	return nil
}

func (c *Controller) ListSessions(ctx context.Context, accountID uuid.UUID, currentFP string) (*dto.ListSessionsResponse, error) {
	const op = "sessions.ListSessions.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	cached := &dto.ListSessionsResponse{}
	key := sessionsCacheKey(accountID)
	if err := c.cache.GetToStruct(ctx, key, cached); err == nil {
		return markCurrent(cached, currentFP), nil
	}

	sctx, cancel := c.storeCtx(ctx)
	defer cancel()

	account, err := c.repo.GetAccountByID(sctx, accountID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable(op, err)
	}

	sessions, err := c.repo.ListSessions(sctx, accountID, nil)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return nil, unavailable(op, err)
	}

	res := &dto.ListSessionsResponse{
		Data:  make([]dto.SessionSummary, 0, len(sessions)),
		Limit: c.deviceLimit(account),
	}
	for i := range sessions {
		if sessions[i].IsActive {
			res.Active++
		}
		res.Data = append(res.Data, dto.NewSessionSummary(&sessions[i], ""))
	}

	c.cache.Set(ctx, config.MinCacheTime, key, res)
	return markCurrent(res, currentFP), nil
}

func markCurrent(res *dto.ListSessionsResponse, currentFP string) *dto.ListSessionsResponse {
	for i := range res.Data {
		res.Data[i].IsCurrent = currentFP != "" && res.Data[i].Fingerprint == currentFP
	}
	return res
}

// DeleteSession hard-deletes a device session. The caller's own session
// cannot be deleted.
func (c *Controller) DeleteSession(ctx context.Context, accountID, sessionID uuid.UUID, currentFP string) error {
	const op = "sessions.DeleteSession.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	sctx, cancel := c.storeCtx(ctx)
	defer cancel()

	s, err := c.repo.GetSessionByID(sctx, accountID, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return unavailable(op, err)
	}

	if currentFP != "" && s.Fingerprint == currentFP {
		return ErrCurrentSession
	}

	if err = c.repo.DeleteSession(sctx, accountID, sessionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		return unavailable(op, err)
	}

	if s.IsActive {
		c.presence.DeviceLoggedOut(ctx, accountID, s.Fingerprint)
	}
	c.invalidateSessions(ctx, accountID)
	return nil
}
