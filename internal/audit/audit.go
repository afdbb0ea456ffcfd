package audit

import (
	"context"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sink receives security events. Implementations must not block the caller
// for long and never report failures back to it.
type Sink interface {
	Record(ctx context.Context, e md.AuditEvent)
}

type Store interface {
	CreateAuditEvent(ctx context.Context, e *md.AuditEvent) error
}

type NoOp struct{}

func (NoOp) Record(context.Context, md.AuditEvent) {}

// LogSink writes each event as a structured zap line.
type LogSink struct{}

func (LogSink) Record(_ context.Context, e md.AuditEvent) {
	fields := []zap.Field{
		zap.String("kind", string(e.Kind)),
		zap.String("severity", string(e.Severity)),
		zap.String("fingerprint", e.Fingerprint),
		zap.String("ip", e.IP),
		zap.Time("at", e.CreatedAt),
		zap.Any("metadata", e.Metadata),
	}
	if e.AccountID != nil {
		fields = append(fields, zap.String("account_id", e.AccountID.String()))
	}

	switch e.Severity {
	case md.SeverityCritical:
		zap.L().Error("audit", fields...)
	case md.SeverityWarning:
		zap.L().Warn("audit", fields...)
	default:
		zap.L().Info("audit", fields...)
	}
}

// StoreSink persists events; a failed write is logged and dropped.
type StoreSink struct {
	store   Store
	timeout time.Duration
}

func NewStoreSink(store Store, timeout time.Duration) *StoreSink {
	if timeout <= 0 {
		timeout = config.DefaultStoreTimeout
	}
	return &StoreSink{store: store, timeout: timeout}
}

func (s *StoreSink) Record(ctx context.Context, e md.AuditEvent) {
	const op = "audit.Record.store"
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if err := s.store.CreateAuditEvent(ctx, &e); err != nil {
		zap.L().Warn(
			"failed to persist audit event",
			zap.String("op", op),
			zap.String("kind", string(e.Kind)),
			zap.Error(err),
		)
	}
}

// Multi fans one event out to several sinks.
type Multi []Sink

func (m Multi) Record(ctx context.Context, e md.AuditEvent) {
	for _, s := range m {
		s.Record(ctx, e)
	}
}
