package observability

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const RequestIDHeader = "X-Request-ID"

// infraPaths are polled by infrastructure: they are not traced, not counted
// and only logged at debug level.
var infraPaths = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
}

func isInfraRequest(r *http.Request) bool {
	_, ok := infraPaths[r.URL.Path]
	return ok
}

func shouldTraceRequest(r *http.Request) bool {
	return !isInfraRequest(r)
}

// RequestIDMiddleware tags every request with an id, reusing a well-formed
// incoming X-Request-ID so ids survive a proxy hop.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		requestID, ok := ParseRequestID(r.Header.Get(RequestIDHeader))
		if !ok {
			requestID = NewRequestID()
		}
		ctx := ContextWithRequestID(r.Context(), requestID)

		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware logs one line per request and feeds the Prometheus
// request metrics. It must run inside TracingMiddleware so the span it
// renames is the server span.
func LoggingMiddleware(next http.Handler) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()
		logger := LoggerWithTrace(ctx)

		m := httpsnoop.CaptureMetrics(next, w, r)

		route := routePattern(r)
		level := zapcore.InfoLevel
		if isInfraRequest(r) {
			level = zapcore.DebugLevel
		} else {
			httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(m.Code)).Inc()
			httpDuration.WithLabelValues(r.Method, route).Observe(m.Duration.Seconds())

			span := trace.SpanFromContext(ctx)
			span.SetName(r.Method + " " + route)
			span.SetAttributes(attribute.String("http.route", route))
		}

		logger.Log(level, "request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", m.Code),
			zap.Int64("bytes", m.Written),
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.Duration("duration", m.Duration),
		)
	})
}

// routePattern is the matched chi pattern, e.g. /formulas/{name}, which keeps
// metric labels and span names bounded. Unmatched requests share one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func TracingMiddleware(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "http_request", otelhttp.WithFilter(shouldTraceRequest))
}
