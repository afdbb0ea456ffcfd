package db

import (
	"context"

	"github.com/JMURv/session-guard/internal/config"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

func buildSessionListQuery(ctx context.Context, accountID uuid.UUID, filters map[string]any) (string, []any, error) {
	const op = "sessions.buildSessionListQuery.repo"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	query := sq.Select(
		"s.id",
		"s.account_id",
		"s.fingerprint",
		"s.name",
		"s.device_type",
		"s.os",
		"s.browser",
		"s.user_agent",
		"s.ip",
		"s.is_active",
		"s.is_trusted",
		"s.token_expires_at",
		"s.lock_until",
		"s.failed_attempts",
		"s.login_count",
		"s.last_active",
		"s.last_login_at",
		"s.last_logout_at",
		"s.created_at",
		"s.updated_at",
	).
		From("device_sessions s").
		Where(sq.Eq{"s.account_id": accountID}).
		PlaceholderFormat(sq.Dollar)

	if isActive, ok := filters["is_active"].(bool); ok {
		query = query.Where(sq.Eq{"s.is_active": isActive})
	}

	if isTrusted, ok := filters["is_trusted"].(bool); ok {
		query = query.Where(sq.Eq{"s.is_trusted": isTrusted})
	}

	q, args, err := query.OrderBy("s.last_active DESC").ToSql()
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to build session list query", zap.String("op", op), zap.Error(err))
		return "", nil, err
	}

	return q, args, nil
}
