package log

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Logger is a compact access logger for auxiliary servers. Each request produces a single line
// once the response has been written.
func Logger(l *zap.Logger, name string) func(next http.Handler) http.Handler {
	if l == nil {
		panic("log.Logger received a nil *zap.Logger")
	}

	logger := l.WithOptions(zap.AddCallerSkip(1)).Named(name)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				fields := []zap.Field{
					zap.String("http_method", r.Method),
					zap.String("http_path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Int("http_status_code", ww.Status()),
					zap.Int("response_bytes", ww.BytesWritten()),
					zap.Duration("latency", time.Since(start)),
				}

				switch {
				case ww.Status() >= 500:
					logger.Error("request served", fields...)
				case ww.Status() >= 400:
					logger.Warn("request served", fields...)
				default:
					logger.Debug("request served", fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// ConditionalLogger installs Logger only when the level is debug or trace.
func ConditionalLogger(logLevel string, l *zap.Logger, name string) func(next http.Handler) http.Handler {
	switch strings.ToLower(logLevel) {
	case "debug", "trace":
		return Logger(l, name)
	default:
		return func(next http.Handler) http.Handler { return next }
	}
}
