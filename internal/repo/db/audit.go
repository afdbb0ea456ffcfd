package db

import (
	"context"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/goccy/go-json"
	"github.com/opentracing/opentracing-go"
)

func (r *Repository) CreateAuditEvent(ctx context.Context, e *md.AuditEvent) error {
	const op = "audit.CreateAuditEvent.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	meta := e.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(
		ctx, createAuditEvent,
		e.ID,
		e.AccountID,
		e.Kind,
		e.Severity,
		e.Fingerprint,
		e.IP,
		raw,
		e.CreatedAt,
	)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		return err
	}
	return nil
}
