// Package presence tells connected clients of an account that one of its
// device sessions went away.
package presence

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const (
	EventDeviceLoggedOut = "device_logged_out"
	EventSessionsRevoked = "sessions_revoked"
)

type Notifier interface {
	DeviceLoggedOut(ctx context.Context, accountID uuid.UUID, fingerprint string)
	SessionsRevoked(ctx context.Context, accountID uuid.UUID)
}

type Event struct {
	Type        string    `json:"type"`
	AccountID   uuid.UUID `json:"accountId"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	At          time.Time `json:"at"`
}

func Channel(accountID uuid.UUID) string {
	return "presence:" + accountID.String()
}

type NoOp struct{}

func (NoOp) DeviceLoggedOut(context.Context, uuid.UUID, string) {}

func (NoOp) SessionsRevoked(context.Context, uuid.UUID) {}

// Redis publishes presence events on a per-account pub/sub channel.
type Redis struct {
	cli *redis.Client
}

func NewRedis(cli *redis.Client) *Redis {
	return &Redis{cli: cli}
}

func (r *Redis) DeviceLoggedOut(ctx context.Context, accountID uuid.UUID, fingerprint string) {
	r.publish(ctx, Event{
		Type:        EventDeviceLoggedOut,
		AccountID:   accountID,
		Fingerprint: fingerprint,
		At:          time.Now(),
	})
}

func (r *Redis) SessionsRevoked(ctx context.Context, accountID uuid.UUID) {
	r.publish(ctx, Event{
		Type:      EventSessionsRevoked,
		AccountID: accountID,
		At:        time.Now(),
	})
}

func (r *Redis) publish(ctx context.Context, e Event) {
	const op = "presence.publish.redis"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	payload, err := json.Marshal(e)
	if err != nil {
		zap.L().Debug("failed to marshal presence event", zap.String("op", op), zap.Error(err))
		return
	}

	if err = r.cli.Publish(ctx, Channel(e.AccountID), payload).Err(); err != nil {
		zap.L().Warn(
			"failed to publish presence event",
			zap.String("op", op),
			zap.String("type", e.Type),
			zap.Error(err),
		)
	}
}
