package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	"github.com/JMURv/session-guard/internal/dto"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/JMURv/session-guard/internal/repo"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

func (r *Repository) GetSession(ctx context.Context, accountID uuid.UUID, fingerprint string) (*md.DeviceSession, error) {
	const op = "sessions.GetSession.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.getSession(ctx, op, getSession, accountID, fingerprint)
}

func (r *Repository) GetSessionByID(ctx context.Context, accountID, id uuid.UUID) (*md.DeviceSession, error) {
	const op = "sessions.GetSessionByID.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.getSession(ctx, op, getSessionByID, id, accountID)
}

func (r *Repository) GetSessionByRefreshToken(ctx context.Context, token string) (*md.DeviceSession, error) {
	const op = "sessions.GetSessionByRefreshToken.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.getSession(ctx, op, getSessionByRefresh, token)
}

func (r *Repository) getSession(ctx context.Context, op, q string, args ...any) (*md.DeviceSession, error) {
	res := &md.DeviceSession{}
	if err := r.conn.GetContext(ctx, res, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		zap.L().Error("failed to get session", zap.String("op", op), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (r *Repository) CountActiveSessions(ctx context.Context, accountID uuid.UUID) (int, error) {
	const op = "sessions.CountActiveSessions.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var count int
	if err := r.conn.QueryRowContext(ctx, countActiveSessions, accountID).Scan(&count); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to count sessions", zap.String("op", op), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// CreateSession inserts s. A concurrent insert for the same
// (account, fingerprint) yields repo.ErrAlreadyExists.
func (r *Repository) CreateSession(ctx context.Context, s *md.DeviceSession) error {
	const op = "sessions.CreateSession.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	err := r.conn.QueryRowContext(
		ctx, createSession,
		s.ID,
		s.AccountID,
		s.Fingerprint,
		s.Name,
		s.DeviceType,
		s.OS,
		s.Browser,
		s.UA,
		s.IP,
		s.LastActive,
		s.ActionLog,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repo.ErrAlreadyExists
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to create session", zap.String("op", op), zap.Error(err))
		return err
	}

	s.IsActive = true
	s.LoginCount = 1
	return nil
}

func (r *Repository) ReactivateSession(
	ctx context.Context,
	id uuid.UUID,
	meta *dto.DeviceMeta,
	at time.Time,
) (*md.DeviceSession, error) {
	const op = "sessions.ReactivateSession.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.DeviceSession{}
	err := r.conn.GetContext(
		ctx, res, reactivateSession,
		id,
		meta.Name,
		meta.DeviceType,
		meta.OS,
		meta.Browser,
		meta.UA,
		meta.IP,
		at,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to reactivate session", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	return res, nil
}

// UpdateSessionTokens stores a freshly issued pair. With a non-empty
// prevRefresh the write only happens while that token is still the stored
// one, which makes rotation a compare-and-swap.
func (r *Repository) UpdateSessionTokens(
	ctx context.Context,
	id uuid.UUID,
	prevRefresh string,
	pair *dto.TokenPair,
) error {
	const op = "sessions.UpdateSessionTokens.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var (
		res sql.Result
		err error
	)
	if prevRefresh == "" {
		res, err = r.conn.ExecContext(ctx, updateSessionTokens, id, pair.Access, pair.Refresh, pair.RefreshExpiresAt)
	} else {
		res, err = r.conn.ExecContext(ctx, rotateSessionTokens, id, pair.Access, pair.Refresh, pair.RefreshExpiresAt, prevRefresh)
	}
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to update session tokens", zap.String("op", op), zap.Error(err))
		return err
	}

	return expectAffected(res)
}

func (r *Repository) SetSessionTrusted(ctx context.Context, id uuid.UUID, trusted bool) error {
	const op = "sessions.SetSessionTrusted.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, setSessionTrusted, id, trusted)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return err
	}
	return expectAffected(res)
}

// SetSessionLock locks the device until the given time; a nil until
// unlocks it and clears the device failure counter.
func (r *Repository) SetSessionLock(ctx context.Context, id uuid.UUID, until *time.Time) error {
	const op = "sessions.SetSessionLock.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var (
		res sql.Result
		err error
	)
	if until == nil {
		res, err = r.conn.ExecContext(ctx, unlockSession, id)
	} else {
		res, err = r.conn.ExecContext(ctx, lockSession, id, *until)
	}
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return err
	}
	return expectAffected(res)
}

func (r *Repository) IncrementSessionFailures(ctx context.Context, id uuid.UUID) error {
	const op = "sessions.IncrementSessionFailures.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, incrementSessionFailures, id)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return err
	}
	return expectAffected(res)
}

// DeactivateSession reports whether the session was active before the call.
func (r *Repository) DeactivateSession(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	const op = "sessions.DeactivateSession.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, deactivateSession, id, at)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to deactivate session", zap.String("op", op), zap.Error(err))
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) DeactivateAllSessions(ctx context.Context, accountID uuid.UUID, at time.Time) (int64, error) {
	const op = "sessions.DeactivateAllSessions.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, deactivateAllSessions, accountID, at)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to deactivate sessions", zap.String("op", op), zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repository) AppendSessionAction(
	ctx context.Context,
	id uuid.UUID,
	entry md.ActionLogEntry,
	limit int,
) error {
	const op = "sessions.AppendSessionAction.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	res, err := r.conn.ExecContext(ctx, appendSessionAction, id, raw, limit, entry.At)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to append session action", zap.String("op", op), zap.Error(err))
		return err
	}
	return expectAffected(res)
}

func (r *Repository) ListSessions(
	ctx context.Context,
	accountID uuid.UUID,
	filters map[string]any,
) ([]md.DeviceSession, error) {
	const op = "sessions.ListSessions.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	q, args, err := buildSessionListQuery(ctx, accountID, filters)
	if err != nil {
		return nil, err
	}

	res := make([]md.DeviceSession, 0, 4)
	if err = r.conn.SelectContext(ctx, &res, q, args...); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to list sessions", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	return res, nil
}

func (r *Repository) DeleteSession(ctx context.Context, accountID, id uuid.UUID) error {
	const op = "sessions.DeleteSession.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, deleteSession, id, accountID)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to delete session", zap.String("op", op), zap.Error(err))
		return err
	}
	return expectAffected(res)
}
