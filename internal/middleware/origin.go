package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"vet-procedures/internal/platform/apperrors"
	"vet-procedures/internal/platform/respond"
)

const originRejected = "Origem não permitida"

// OriginGuard admite el request solo si su origen está en allowed o es el propio sitio.
// - Con Origin: se compara tal cual.
// - Sin Origin pero con Referer: se compara scheme://host del Referer.
// - Sin ninguno (o Referer inválido): se rechaza.
// El propio sitio es publicOrigin si está configurado; si no, se deriva del request
// (ver SiteOrigin). trustProxy habilita X-Forwarded-Proto / X-Forwarded-Host.
func OriginGuard(allowed []string, publicOrigin string, trustProxy bool) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed)+1)
	for _, o := range allowed {
		if o = normalizeOrigin(o); o != "" {
			set[o] = struct{}{}
		}
	}
	public := normalizeOrigin(publicOrigin)
	if public != "" {
		set[public] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			site := public
			if site == "" {
				site = SiteOrigin(r, trustProxy)
			}
			if !originAllowed(r, site, set) {
				w.Header().Set("Cache-Control", "no-store")
				respond.Error(w, apperrors.NewOriginRejected(originRejected))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(r *http.Request, site string, allowed map[string]struct{}) bool {
	candidate := ""
	if origin := r.Header.Get("Origin"); origin != "" {
		candidate = origin
	} else if referer := r.Header.Get("Referer"); referer != "" {
		candidate = refererOrigin(referer)
		if candidate == "" {
			return false
		}
	} else {
		return false
	}

	candidate = normalizeOrigin(candidate)
	if site != "" && candidate == site {
		return true
	}
	_, ok := allowed[candidate]
	return ok
}

// SiteOrigin es el origen con el que se sirvió el request (scheme://host), a partir de
// r.Host y TLS. Los headers X-Forwarded-* los manda el cliente, así que solo se usan
// con trustProxy (detrás de un proxy que los reescribe).
func SiteOrigin(r *http.Request, trustProxy bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host

	if trustProxy {
		if p := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); p != "" {
			first, _, _ := strings.Cut(p, ",")
			scheme = strings.TrimSpace(first)
		}
		if h := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); h != "" {
			first, _, _ := strings.Cut(h, ",")
			host = strings.TrimSpace(first)
		}
	}
	if host == "" {
		return ""
	}
	return normalizeOrigin(scheme + "://" + host)
}

func refererOrigin(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func normalizeOrigin(o string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
}
