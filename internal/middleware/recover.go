package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"vet-procedures/internal/platform/apperrors"
	"vet-procedures/internal/platform/logger"
	"vet-procedures/internal/platform/respond"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con el request id
// y responde con el envelope JSON en lugar de texto plano.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"panic":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
				})
				respond.Error(w, apperrors.NewInternal("Erro interno", nil))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
