package middleware

import (
	"net/http"
	"time"

	"github.com/vfg2006/media-planner-api/pkg/metrics"
)

// Metrics retorna o instrumentador por rota. O label path usa o padrão da rota
// para não explodir a cardinalidade com parâmetros.
func Metrics(m *metrics.Metrics) func(pattern string) func(http.Handler) http.Handler {
	return func(pattern string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				rec := newStatusRecorder(w)
				start := time.Now()

				next.ServeHTTP(rec, r)

				m.ObserveRequest(r.Method, pattern, rec.statusCode, time.Since(start))
			})
		}
	}
}
