package httpadapter

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader = "X-Request-Id"

	rejectReasonRateLimited = "rate_limited"
	rejectReasonOverloaded  = "overloaded"
)

type requestIDContextKey struct{}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(requestIDContextKey{}).(string)
	return requestID
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDContextKey{}, requestID)
		r = r.WithContext(ctx)
		w.Header().Set(requestIDHeader, requestID)

		next.ServeHTTP(w, r)
	})
}

func accessLogMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			remoteAddr := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				remoteAddr = host
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "http_request",
				"request_id", requestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
				"bytes", ww.BytesWritten(),
				"remote_addr", remoteAddr,
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// rateLimitMiddleware sheds requests above the shared token bucket with 429.
// A non-positive rps disables the limiter.
func rateLimitMiddleware(rps float64, burst int, onReject func(reason string)) func(http.Handler) http.Handler {
	if rps <= 0 {
		return passthrough
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(1/rps))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if onReject != nil {
					onReject(rejectReasonRateLimited)
				}
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// backpressureMiddleware admits at most maxInFlight concurrent requests. A request that
// cannot get a slot within wait is rejected with 503.
func backpressureMiddleware(maxInFlight int, wait time.Duration, onReject func(reason string)) func(http.Handler) http.Handler {
	if maxInFlight <= 0 {
		return passthrough
	}
	gate := semaphore.NewWeighted(int64(maxInFlight))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !acquire(r.Context(), gate, wait) {
				if onReject != nil {
					onReject(rejectReasonOverloaded)
				}
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusServiceUnavailable, "server is overloaded, retry later")
				return
			}
			defer gate.Release(1)
			next.ServeHTTP(w, r)
		})
	}
}

func acquire(ctx context.Context, gate *semaphore.Weighted, wait time.Duration) bool {
	if gate.TryAcquire(1) {
		return true
	}
	if wait <= 0 {
		return false
	}
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	return gate.Acquire(waitCtx, 1) == nil
}

func passthrough(next http.Handler) http.Handler {
	return next
}
