package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/JMURv/session-guard/internal/auth/captcha"
	"github.com/JMURv/session-guard/internal/config"
	"github.com/JMURv/session-guard/internal/ctrl"
	"github.com/JMURv/session-guard/internal/dto"
	"github.com/JMURv/session-guard/internal/hdl/grpc/interceptors"
	metrics "github.com/JMURv/session-guard/internal/observability/metrics/prometheus"
	pm "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	ot "github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

var _ SessionsServer = (*Handler)(nil)

type Handler struct {
	srv  *grpc.Server
	hsrv *health.Server
	au   captcha.Port
	ctrl ctrl.AppCtrl
}

func New(name string, au captcha.Port, ctrl ctrl.AppCtrl) *Handler {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.LogTraceMetrics(),
			interceptors.Auth(ctrl, ProtectedMethods...),
			metrics.SrvMetrics.UnaryServerInterceptor(
				pm.WithExemplarFromContext(metrics.Exemplar),
			),
		),
		grpc.ChainStreamInterceptor(
			metrics.SrvMetrics.StreamServerInterceptor(
				pm.WithExemplarFromContext(metrics.Exemplar),
			),
		),
	)

	reflection.Register(srv)

	hsrv := health.NewServer()
	hsrv.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)

	h := &Handler{
		srv:  srv,
		hsrv: hsrv,
		au:   au,
		ctrl: ctrl,
	}
	srv.RegisterService(&sessionsDesc, h)
	grpc_health_v1.RegisterHealthServer(srv, hsrv)
	metrics.SrvMetrics.InitializeMetrics(srv)
	return h
}

func (h *Handler) Start(port int) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%v", port))
	if err != nil {
		zap.L().Fatal("failed to listen", zap.Error(err))
	}

	h.Serve(lis)
}

func (h *Handler) Serve(lis net.Listener) {
	zap.L().Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
	if err := h.srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		zap.L().Fatal("failed to serve", zap.Error(err))
	}
}

func (h *Handler) Close() error {
	h.hsrv.Shutdown()
	h.srv.GracefulStop()
	return nil
}

func (h *Handler) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	const op = "auth.Login.hdl"
	span, ctx := ot.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	valid, err := h.au.VerifyRecaptcha(ctx, req.Token, captcha.PassAuth)
	if err != nil {
		zap.L().Error("failed to verify captcha", zap.String("op", op), zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}
	if !valid {
		return nil, status.Error(codes.Unauthenticated, captcha.ErrValidationFailed.Error())
	}

	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		req.Device.IP = hostOf(p.Addr.String())
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ua := md.Get("user-agent"); len(ua) > 0 {
			req.Device.UA = ua[0]
		}
		if fp := md.Get(interceptors.FingerprintKey); len(fp) > 0 && req.Device.Fingerprint == "" {
			req.Device.Fingerprint = fp[0]
		}
	}
	ctx = context.WithValue(ctx, config.IpKey, req.Device.IP)

	res, err := h.ctrl.Login(ctx, req)
	if err != nil {
		return nil, toStatus(op, err)
	}
	return res, nil
}

func (h *Handler) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, error) {
	const op = "auth.Refresh.hdl"
	span, ctx := ot.StartSpanFromContext(ctx, op)
	defer span.Finish()

	if req.Refresh == "" {
		_, req.Refresh = interceptors.Tokens(ctx)
	}
	if req.Refresh == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	res, err := h.ctrl.Refresh(ctx, req)
	if err != nil {
		return nil, toStatus(op, err)
	}
	return res, nil
}

func (h *Handler) Logout(ctx context.Context, req *dto.LogoutRequest) (*Empty, error) {
	const op = "auth.Logout.hdl"
	span, ctx := ot.StartSpanFromContext(ctx, op)
	defer span.Finish()

	req.Access, req.Refresh = interceptors.Tokens(ctx)
	if err := h.ctrl.Logout(ctx, req); err != nil {
		return nil, toStatus(op, err)
	}
	return &Empty{}, nil
}

func (h *Handler) Me(ctx context.Context, _ *Empty) (*dto.Principal, error) {
	p, ok := ctx.Value(config.ClaimsKey).(*dto.Principal)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, ctrl.ErrUnauthorized.Error())
	}
	return p, nil
}

func (h *Handler) ListSessions(ctx context.Context, _ *Empty) (*dto.ListSessionsResponse, error) {
	const op = "sessions.ListSessions.hdl"
	span, ctx := ot.StartSpanFromContext(ctx, op)
	defer span.Finish()

	p, ok := ctx.Value(config.ClaimsKey).(*dto.Principal)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, ctrl.ErrUnauthorized.Error())
	}

	res, err := h.ctrl.ListSessions(ctx, p.UID, p.Fingerprint)
	if err != nil {
		return nil, toStatus(op, err)
	}
	return res, nil
}

func hostOf(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func toStatus(op string, err error) error {
	var limitErr *ctrl.DeviceLimitError
	switch {
	case errors.As(err, &limitErr):
		return status.Errorf(codes.ResourceExhausted, "%s: %d of %d devices active", ctrl.ErrDeviceLimitExceeded, limitErr.Active, limitErr.Limit)
	case errors.Is(err, ctrl.ErrInvalidCredentials),
		errors.Is(err, ctrl.ErrRefreshInvalid),
		errors.Is(err, ctrl.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, ctrl.ErrAccountLocked), errors.Is(err, ctrl.ErrDeviceLocked):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, ctrl.ErrInvalidAction):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ctrl.ErrServiceUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, ctrl.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ctrl.ErrCurrentSession):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		zap.L().Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}
