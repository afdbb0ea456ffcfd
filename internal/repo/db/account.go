package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/JMURv/session-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*md.Account, error) {
	const op = "accounts.GetAccountByEmail.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.Account{}
	err := r.conn.GetContext(ctx, res, accountGetByEmailQ, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to get account", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	return res, nil
}

func (r *Repository) GetAccountByID(ctx context.Context, id uuid.UUID) (*md.Account, error) {
	const op = "accounts.GetAccountByID.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.Account{}
	err := r.conn.GetContext(ctx, res, accountGetByIDQ, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to get account", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	return res, nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	const op = "accounts.UpdatePassword.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, accountUpdatePasswordQ, hashed, id)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return err
	}

	return expectAffected(res)
}

func (r *Repository) IncrementFailedAttempts(
	ctx context.Context,
	id uuid.UUID,
	threshold int,
	lockUntil time.Time,
) (int, *time.Time, error) {
	const op = "accounts.IncrementFailedAttempts.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var count int
	var until sql.NullTime
	err := r.conn.QueryRowContext(ctx, accountIncrementFailuresQ, id, threshold, lockUntil).Scan(&count, &until)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, repo.ErrNotFound
		}
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to increment failed attempts", zap.String("op", op), zap.Error(err))
		return 0, nil, err
	}

	if !until.Valid {
		return count, nil, nil
	}
	return count, &until.Time, nil
}

func (r *Repository) ResetFailedAttempts(ctx context.Context, id uuid.UUID, loginAt time.Time) error {
	const op = "accounts.ResetFailedAttempts.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := r.conn.ExecContext(ctx, accountResetFailuresQ, id, loginAt)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return err
	}

	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repo.ErrNotFound
	}
	return nil
}
