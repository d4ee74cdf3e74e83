package health

import (
	"context"
	"net/http"
	"time"

	"github.com/you-humble/part-monitoring/platform/logger"
)

const readinessTimeout = 2 * time.Second

// Checker reports whether a dependency is usable.
type Checker interface {
	Check(ctx context.Context) error
}

type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusOK, "SERVING")
}

// Readiness answers 503 until every checker passes.
func Readiness(checkers ...Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		for _, c := range checkers {
			if err := c.Check(ctx); err != nil {
				logger.Warn(r.Context(), "readiness check failed", logger.ErrorF(err))
				write(w, r, http.StatusServiceUnavailable, "NOT_SERVING")
				return
			}
		}

		write(w, r, http.StatusOK, "SERVING")
	}
}

func write(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		logger.Error(r.Context(), "health check", logger.ErrorF(err))
	}
}
