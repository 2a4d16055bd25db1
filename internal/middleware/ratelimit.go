package middleware

import (
	"math"
	"net/http"
	"strconv"

	"vet-procedures/internal/platform/apperrors"
	"vet-procedures/internal/platform/ratelimit"
	"vet-procedures/internal/platform/respond"
)

const rateLimited = "Limite de requisições excedido"

// RateLimit cuenta un request por IP de cliente y corta con 429 al superar el máximo de la ventana.
// Va después de OriginGuard: los requests rechazados por origen no consumen cupo.
func RateLimit(l *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := l.Allow(GetClientIP(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				secs := int(math.Ceil(d.RetryAfter(l.Now()).Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				w.Header().Set("Cache-Control", "no-store")
				respond.Error(w, apperrors.NewRateLimited(rateLimited))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
