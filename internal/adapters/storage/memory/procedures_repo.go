package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vet-procedures/internal/domain/procedures"
)

type proceduresRepo struct {
	mu     sync.RWMutex
	byCode map[int]procedures.Procedure
}

// NewProceduresRepo devuelve un repo en memoria precargado con items.
// Lo usa el modo dev (sin DB_DSN) y los tests del router.
func NewProceduresRepo(items []procedures.Procedure) procedures.Repository {
	r := &proceduresRepo{byCode: make(map[int]procedures.Procedure, len(items))}
	for _, p := range items {
		r.byCode[p.Code] = p
	}
	return r
}

func (r *proceduresRepo) ListAll(ctx context.Context) ([]procedures.Procedure, error) {
	return r.list(func(procedures.Procedure) bool { return true }), nil
}

func (r *proceduresRepo) ListPlans(ctx context.Context) ([]string, error) {
	return r.distinct(
		func(procedures.Procedure) bool { return true },
		func(p procedures.Procedure) string { return p.Plan },
	), nil
}

func (r *proceduresRepo) ListSubGroups(ctx context.Context, plan string) ([]string, error) {
	return r.distinct(
		func(p procedures.Procedure) bool { return p.Plan == plan },
		func(p procedures.Procedure) string { return p.SubGroup },
	), nil
}

func (r *proceduresRepo) ListByPlanAndSubGroup(ctx context.Context, plan, subGroup string) ([]procedures.Procedure, error) {
	return r.list(func(p procedures.Procedure) bool {
		return p.Plan == plan && p.SubGroup == subGroup
	}), nil
}

func (r *proceduresRepo) list(keep func(procedures.Procedure) bool) []procedures.Procedure {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]procedures.Procedure, 0)
	for _, p := range r.byCode {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].Code < out[j].Code
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > procedures.MaxRows {
		out = out[:procedures.MaxRows]
	}
	return out
}

func (r *proceduresRepo) distinct(keep func(procedures.Procedure) bool, field func(procedures.Procedure) string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range r.byCode {
		if !keep(p) {
			continue
		}
		v := field(p)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DemoCatalog es el catálogo de ejemplo del modo dev.
func DemoCatalog() []procedures.Procedure {
	return []procedures.Procedure{
		{Code: 101, Name: "Consulta Geral", Plan: "Plano A", LineGroup: "Clínica", SubGroup: "Consultas", Price: "R$ 150,00"},
		{Code: 102, Name: "Consulta Retorno", Plan: "Plano A", LineGroup: "Clínica", SubGroup: "Consultas", Price: "R$ 80,00"},
		{Code: 103, Name: "Consulta Especialista", Plan: "Plano A", LineGroup: "Clínica", SubGroup: "Consultas", Price: "R$ 220,00"},
		{Code: 201, Name: "Hemograma Completo", Plan: "Plano A", LineGroup: "Laboratório", SubGroup: "Exames", Price: "R$ 65,00"},
		{Code: 202, Name: "Perfil Bioquímico", Plan: "Plano A", LineGroup: "Laboratório", SubGroup: "Exames", Price: "R$ 1.234,56"},
		{Code: 203, Name: "Urinálise", Plan: "Plano A", LineGroup: "Laboratório", SubGroup: "Exames", Price: "R$ 45,90"},
		{Code: 301, Name: "Vacina V10", Plan: "Plano B", LineGroup: "Prevenção", SubGroup: "Vacinas", Price: "R$ 95,00"},
		{Code: 302, Name: "Vacina Antirrábica", Plan: "Plano B", LineGroup: "Prevenção", SubGroup: "Vacinas", Price: "R$ 70,00"},
		{Code: 303, Name: "Consulta Pet", Plan: "Plano B", LineGroup: "Clínica", SubGroup: "Consultas", Price: "R$ 120,00"},
		{Code: 401, Name: "Raio X Simples", Plan: "Plano B", LineGroup: "Imagem", SubGroup: "Imagem", Price: "R$ 180,00"},
		{Code: 402, Name: "Ultrassom Abdominal", Plan: "Plano B", LineGroup: "Imagem", SubGroup: "Imagem", Price: "R$ 260,00"},
		{Code: 501, Name: "Castração Felina", Plan: "Plano C", LineGroup: "Cirurgia", SubGroup: "Cirurgias", Price: "R$ 450,00"},
		{Code: 502, Name: "Limpeza Dentária", Plan: "Plano C", LineGroup: "Odontologia", SubGroup: "Odontologia", Price: "R$ 320,00"},
	}
}
