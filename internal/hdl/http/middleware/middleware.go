package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/JMURv/session-guard/internal/config"
	"github.com/JMURv/session-guard/internal/ctrl"
	"github.com/JMURv/session-guard/internal/dto"
	"github.com/JMURv/session-guard/internal/hdl"
	"github.com/JMURv/session-guard/internal/hdl/http/utils"
	metrics "github.com/JMURv/session-guard/internal/observability/metrics/prometheus"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type Authorizer interface {
	Authorize(ctx context.Context, access, refresh string) (*dto.Principal, *dto.CredentialUpdate, error)
}

type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

// Auth admits requests with a valid access token. When the access token is
// expired or absent but the refresh token is still live, the pair is rotated
// and handed back through headers and cookies.
func Auth(a Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				access, refresh := utils.AccessToken(r), utils.RefreshToken(r)
				if access == "" && refresh == "" {
					utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrMissingCredentials)
					return
				}

				p, upd, err := a.Authorize(r.Context(), access, refresh)
				if err != nil {
					if errors.Is(err, ctrl.ErrServiceUnavailable) {
						utils.ErrResponse(w, http.StatusServiceUnavailable, err)
						return
					}
					utils.ErrResponse(w, http.StatusUnauthorized, ctrl.ErrUnauthorized)
					return
				}

				if upd != nil && upd.Rotated {
					w.Header().Set(config.AccessHeader, upd.Access)
					w.Header().Set(config.RefreshHeader, upd.Refresh)
					w.Header().Set(config.RotatedHeader, "true")
					utils.SetAuthCookies(w, upd.Access, upd.Refresh)
				}

				ctx := context.WithValue(r.Context(), config.UidKey, p.UID)
				ctx = context.WithValue(ctx, config.ClaimsKey, p)
				ctx = context.WithValue(ctx, config.FingerprintKey, p.Fingerprint)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// Device puts the client address, user agent and any client supplied
// fingerprint on the request context.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), config.IpKey, clientIP(r))
			ctx = context.WithValue(ctx, config.UaKey, r.UserAgent())
			if fp := r.Header.Get(config.FingerprintHeader); fp != "" {
				ctx = context.WithValue(ctx, config.FingerprintKey, fp)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit bounds requests per client address within a fixed window. A
// failing limiter lets the request through.
func RateLimit(l Limiter, conf config.RateLimitConfig, prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !conf.Enabled || conf.Requests <= 0 || conf.Window <= 0 {
			return next
		}

		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				key := prefix + ":" + clientIP(r)
				ok, err := l.Allow(r.Context(), key, conf.Requests, conf.Window)
				if err != nil {
					zap.L().Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
					next.ServeHTTP(w, r)
					return
				}
				if !ok {
					w.Header().Set("Retry-After", strconv.Itoa(int(conf.Window.Seconds())))
					utils.ErrResponse(w, http.StatusTooManyRequests, hdl.ErrTooManyRequests)
					return
				}
				next.ServeHTTP(w, r)
			},
		)
	}
}

type LoggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewLoggingResponseWriter(w http.ResponseWriter) *LoggingResponseWriter {
	return &LoggingResponseWriter{w, http.StatusOK}
}

func (lrw *LoggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			s := time.Now()
			op := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

			lrw := NewLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r)
			metrics.ObserveRequest(time.Since(s), lrw.statusCode, op)
		},
	)
}

func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				lrw := NewLoggingResponseWriter(w)
				logger.Debug(
					"-->",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote", r.RemoteAddr),
				)

				next.ServeHTTP(lrw, r)

				logger.Info(
					"<--",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", lrw.statusCode),
					zap.Duration("duration", time.Since(start)),
					zap.String("remote", r.RemoteAddr),
				)
			},
		)
	}
}

func OT(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			span, ctx := opentracing.StartSpanFromContext(r.Context(), fmt.Sprintf("%s %s", r.Method, r.URL.Path))
			defer span.Finish()

			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}
