package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const clientIPKey ctxKey = "client_ip"

// UnknownClient agrupa en una sola ventana a todos los requests sin IP identificable.
const UnknownClient = "unknown"

// ExtractClientIP: primer valor de X-Forwarded-For, si no X-Real-IP, si no "unknown".
// No se mira RemoteAddr: detrás del proxy siempre sería la IP del proxy.
func ExtractClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
		return UnknownClient
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return UnknownClient
}

// ClientIP resuelve la IP del cliente una vez y la deja en el contexto.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), clientIPKey, ExtractClientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientIP devuelve la IP guardada por ClientIP, o la calcula si el middleware no corrió.
func GetClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey).(string); ok && ip != "" {
		return ip
	}
	return ExtractClientIP(r)
}
