package procedures

import (
	"strings"
	"time"

	"vet-procedures/internal/platform/currency"
)

// Procedure es un procedimiento facturable del catálogo de la clínica.
// Viene del store relacional y este servicio nunca lo modifica.
type Procedure struct {
	Code      int    // cod, identificador único y estable
	Name      string // nome
	Plan      string // plano
	LineGroup string // grupo_linha
	SubGroup  string // sub_grupo
	Price     string // preco_tabela, texto localizado (puede venir vacío o con placeholder)
}

// PriceValue devuelve el precio numérico (0 si el texto no es parseable).
func (p Procedure) PriceValue() float64 {
	return currency.ParsePrice(p.Price)
}

// CatalogResult es lo que devuelve Service.Catalog.
type CatalogResult struct {
	Items      []Procedure
	Cached     bool          // servido desde el snapshot sin ir al store
	Stale      bool          // snapshot vencido devuelto por fallo del store
	Age        time.Duration // edad del snapshot al momento de servirlo
	CapturedAt time.Time
	Warning    string
}

// Search filtra por nombre (substring, sin distinguir mayúsculas).
// Término vacío devuelve la lista tal cual.
func Search(items []Procedure, term string) []Procedure {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]Procedure, 0)
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out
}

// FindByCode busca un procedimiento por código.
func FindByCode(items []Procedure, code int) (Procedure, bool) {
	for _, p := range items {
		if p.Code == code {
			return p, true
		}
	}
	return Procedure{}, false
}
