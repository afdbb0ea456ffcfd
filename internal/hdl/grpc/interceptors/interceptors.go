package interceptors

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	"github.com/JMURv/session-guard/internal/ctrl"
	"github.com/JMURv/session-guard/internal/dto"
	metrics "github.com/JMURv/session-guard/internal/observability/metrics/prometheus"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var (
	AuthorizationKey = "authorization"
	AccessKey        = strings.ToLower(config.AccessHeader)
	RefreshKey       = strings.ToLower(config.RefreshHeader)
	RotatedKey       = strings.ToLower(config.RotatedHeader)
	FingerprintKey   = strings.ToLower(config.FingerprintHeader)
)

type Authorizer interface {
	Authorize(ctx context.Context, access, refresh string) (*dto.Principal, *dto.CredentialUpdate, error)
}

// Auth guards the listed methods. An expired access token is replaced using
// the refresh token from metadata; the new pair goes back as header metadata.
func Auth(a Authorizer, protected ...string) grpc.UnaryServerInterceptor {
	guarded := make(map[string]struct{}, len(protected))
	for _, m := range protected {
		guarded[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := guarded[info.FullMethod]; !ok {
			return handler(ctx, req)
		}

		access, refresh := Tokens(ctx)
		if access == "" && refresh == "" {
			zap.L().Debug("missing authorization token", zap.String("method", info.FullMethod))
			return nil, status.Error(codes.Unauthenticated, ctrl.ErrUnauthorized.Error())
		}

		p, upd, err := a.Authorize(ctx, access, refresh)
		if err != nil {
			if errors.Is(err, ctrl.ErrServiceUnavailable) {
				return nil, status.Error(codes.Unavailable, err.Error())
			}
			return nil, status.Error(codes.Unauthenticated, ctrl.ErrUnauthorized.Error())
		}

		if upd != nil && upd.Rotated {
			hdr := metadata.Pairs(AccessKey, upd.Access, RefreshKey, upd.Refresh, RotatedKey, "true")
			if err = grpc.SetHeader(ctx, hdr); err != nil {
				zap.L().Warn("failed to send rotated tokens", zap.String("method", info.FullMethod), zap.Error(err))
			}
		}

		ctx = context.WithValue(ctx, config.UidKey, p.UID)
		ctx = context.WithValue(ctx, config.ClaimsKey, p)
		ctx = context.WithValue(ctx, config.FingerprintKey, p.Fingerprint)
		return handler(ctx, req)
	}
}

// Tokens reads the access and refresh tokens from incoming metadata.
func Tokens(ctx context.Context) (string, string) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", ""
	}

	var access, refresh string
	if v := md.Get(AuthorizationKey); len(v) > 0 {
		access = strings.TrimPrefix(v[0], "Bearer ")
	}
	if v := md.Get(RefreshKey); len(v) > 0 {
		refresh = v[0]
	}
	return access, refresh
}

func LogTraceMetrics() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		s := time.Now()
		span, ctx := opentracing.StartSpanFromContext(ctx, info.FullMethod)
		defer span.Finish()

		res, err := handler(ctx, req)
		statusCode := status.Code(err)
		metrics.ObserveRequest(time.Since(s), int(statusCode), info.FullMethod)

		zap.L().Info(
			"<--",
			zap.String("method", info.FullMethod),
			zap.Int("status", int(statusCode)),
			zap.Any("duration", time.Since(s)),
			zap.Error(err),
		)

		return res, err
	}
}
