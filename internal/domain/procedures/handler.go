package procedures

import (
	"errors"
	"net/http"
	"strings"

	"vet-procedures/internal/platform/apperrors"
	"vet-procedures/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

const (
	cacheControlFresh = "public, max-age=3600, s-maxage=3600"
	cacheControlStale = "public, max-age=300"
	cacheControlNone  = "no-store"
)

// RegisterRoutes monta el catálogo. Origin guard y rate limit los pone el router en el grupo.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/procedimentos", func(pr chi.Router) {
		// Sin filtros => catálogo completo (cacheado). Con plano/sub_grupo => tiers 2 y 3.
		pr.Get("/", catalogHandler(svc))

		// Variante filtrada: tiers 1..3 según plano/sub_grupo, nunca cacheada.
		pr.Get("/filtro", filterHandler(svc))
	})
}

// procedureResponse usa los nombres de columna de la tabla processos.
type procedureResponse struct {
	Code      int    `json:"cod"`
	Name      string `json:"nome"`
	LineGroup string `json:"grupo_linha"`
	Plan      string `json:"plano"`
	SubGroup  string `json:"sub_grupo"`
	Price     string `json:"preco_tabela"`
}

// catalogHandler godoc
// @Summary Catálogo de procedimentos
// @Description Sem parâmetros devolve o catálogo completo (cache de 1h, com fallback para cache expirado se o banco falhar). Com `plano` e/ou `sub_grupo` delega aos filtros em cascata.
// @Tags procedimentos
// @Produce json
// @Param plano query string false "Plano"
// @Param sub_grupo query string false "Sub-grupo (requer plano)"
// @Success 200 {object} respond.Envelope
// @Failure 403 {object} respond.Envelope "origem não permitida"
// @Failure 429 {object} respond.Envelope "limite de requisições excedido"
// @Failure 500 {object} respond.Envelope "erro no banco sem cache disponível"
// @Router /api/procedimentos [get]
func catalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if strings.TrimSpace(q.Get("plano")) != "" || strings.TrimSpace(q.Get("sub_grupo")) != "" {
			filterHandler(svc)(w, r)
			return
		}

		res, err := svc.Catalog(r.Context())
		if err != nil {
			w.Header().Set("Cache-Control", cacheControlNone)
			respond.Error(w, err)
			return
		}

		w.Header().Set("Vary", "Origin")
		data := toResponses(res.Items)

		switch {
		case res.Stale:
			w.Header().Set("Cache-Control", cacheControlStale)
			w.Header().Set("X-Cache", "STALE")
			respond.JSON(w, http.StatusOK, respond.Envelope{
				Success: true,
				Data:    data,
				Cached:  respond.Bool(true),
				Warning: res.Warning,
			})
		case res.Cached:
			w.Header().Set("Cache-Control", cacheControlFresh)
			w.Header().Set("X-Cache", "HIT")
			respond.JSON(w, http.StatusOK, respond.Envelope{
				Success:  true,
				Data:     data,
				Cached:   respond.Bool(true),
				CacheAge: respond.Int(int(res.Age.Seconds())),
			})
		default:
			w.Header().Set("Cache-Control", cacheControlFresh)
			w.Header().Set("X-Cache", "MISS")
			respond.JSON(w, http.StatusOK, respond.Envelope{
				Success: true,
				Data:    data,
				Cached:  respond.Bool(false),
				Count:   respond.Int(len(data)),
			})
		}
	}
}

// filterHandler godoc
// @Summary Filtros em cascata
// @Description Sem `plano`: lista de planos. Com `plano`: sub-grupos do plano. Com `plano` e `sub_grupo`: procedimentos (ordenados por nome, máx. 5000). Nunca cacheado.
// @Tags procedimentos
// @Produce json
// @Param plano query string false "Plano"
// @Param sub_grupo query string false "Sub-grupo"
// @Success 200 {object} respond.Envelope
// @Failure 403 {object} respond.Envelope
// @Failure 429 {object} respond.Envelope
// @Failure 500 {object} respond.Envelope
// @Router /api/procedimentos/filtro [get]
func filterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControlNone)

		plan := strings.TrimSpace(r.URL.Query().Get("plano"))
		subGroup := strings.TrimSpace(r.URL.Query().Get("sub_grupo"))

		var (
			data  any
			count int
			err   error
		)

		switch {
		case plan == "":
			var plans []string
			plans, err = svc.Plans(r.Context())
			data, count = plans, len(plans)
		case subGroup == "":
			var subs []string
			subs, err = svc.SubGroups(r.Context(), plan)
			data, count = subs, len(subs)
		default:
			var items []Procedure
			items, err = svc.Procedures(r.Context(), plan, subGroup)
			out := toResponses(items)
			data, count = out, len(out)
		}

		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				err = apperrors.NewInvalidInput(err.Error())
			}
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, respond.Envelope{
			Success: true,
			Data:    data,
			Count:   respond.Int(count),
		})
	}
}

func toResponses(items []Procedure) []procedureResponse {
	out := make([]procedureResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toResponse(p))
	}
	return out
}

func toResponse(p Procedure) procedureResponse {
	return procedureResponse{
		Code:      p.Code,
		Name:      p.Name,
		LineGroup: p.LineGroup,
		Plan:      p.Plan,
		SubGroup:  p.SubGroup,
		Price:     p.Price,
	}
}

