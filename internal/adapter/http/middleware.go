package adapthttp

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"filmorate/internal/logger"
)

const headerRequestID = "X-Request-ID"

// loggingMiddleware tags each request with an id, stores a request logger in
// the context and writes one access line when the handler returns.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(headerRequestID, reqID)

		child := s.log.With().
			Str(logger.FieldRequestID, reqID).
			Str(logger.FieldMethod, r.Method).
			Str(logger.FieldPath, r.URL.Path).
			Str(logger.FieldClientIP, clientIP(r)).
			Logger()
		r = r.WithContext(logger.WithContext(r.Context(), child))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		child.Info().
			Int(logger.FieldStatus, rec.status).
			Float64(logger.FieldLatency, float64(time.Since(start).Microseconds())/1000).
			Msg("request completed")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggerFrom(r *http.Request, fallback zerolog.Logger) *zerolog.Logger {
	l := logger.Ctx(r.Context(), fallback)
	return &l
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
