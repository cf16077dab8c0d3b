package middleware

import (
	"net/http"
	"time"

	"github.com/UndeadDemidov/shortlink/internal/app/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const unmatchedRoute = "unmatched"

// Metrics замеряет длительность запросов.
// В метку route идет шаблон chi, а не сам путь, иначе каждый код даст свою серию.
func Metrics(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		metrics.ObserveRequest(r.Method, routePattern(r), statusOf(ww), time.Since(start))
	}
	return http.HandlerFunc(fn)
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); len(pattern) != 0 {
		return pattern
	}
	return unmatchedRoute
}
