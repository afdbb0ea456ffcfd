package prometheus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	pm "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uber/jaeger-client-go"
	"go.uber.org/zap"
)

var (
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Duration of handled requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "status"},
	)

	loginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_total",
			Help: "Login attempts by result.",
		},
		[]string{"result"},
	)

	rotationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_rotation_total",
			Help: "Issued token rotations by path (explicit or transparent).",
		},
		[]string{"path"},
	)

	deviceLimitTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_device_limit_rejections_total",
			Help: "Logins refused because the account reached its device limit.",
		},
	)

	SrvMetrics = pm.NewServerMetrics(
		pm.WithServerHandlingTimeHistogram(
			pm.WithHistogramBuckets(prometheus.DefBuckets),
		),
	)

	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(
		requestDuration,
		loginTotal,
		rotationTotal,
		deviceLimitTotal,
		SrvMetrics,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
}

type Metrics struct {
	srv *http.Server
}

func New(port int) *Metrics {
	mux := http.NewServeMux()
	mux.Handle(
		"/metrics", promhttp.HandlerFor(
			Registry, promhttp.HandlerOpts{EnableOpenMetrics: true},
		),
	)

	return &Metrics{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%v", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (m *Metrics) Start(ctx context.Context) {
	go func() {
		zap.L().Info("Starting metrics server", zap.String("addr", m.srv.Addr))
		if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("metrics server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Debug("failed to shutdown metrics server", zap.Error(err))
	}
	zap.L().Info("Metrics server has been stopped")
}

func ObserveRequest(d time.Duration, status int, op string) {
	requestDuration.WithLabelValues(op, strconv.Itoa(status)).Observe(d.Seconds())
}

func LoginResult(result string) {
	loginTotal.WithLabelValues(result).Inc()
}

func TokenRotated(path string) {
	rotationTotal.WithLabelValues(path).Inc()
}

func DeviceLimitRejected() {
	deviceLimitTotal.Inc()
}

// Exemplar links a grpc metric sample to the active jaeger trace.
func Exemplar(ctx context.Context) prometheus.Labels {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return nil
	}
	if sc, ok := span.Context().(jaeger.SpanContext); ok {
		return prometheus.Labels{"traceID": sc.TraceID().String()}
	}
	return nil
}
