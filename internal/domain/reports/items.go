package reports

import (
	"fmt"

	"vet-procedures/internal/domain/procedures"
	"vet-procedures/internal/domain/selection"
	"vet-procedures/internal/platform/apperrors"
)

// Límites de un pedido de reporte.
const (
	MaxItems = procedures.MaxRows
	MaxCount = 9999
)

// ItemRequest es un código con su cantidad, tal como llega en POST /api/relatorios.
type ItemRequest struct {
	Code  int `json:"code"`
	Count int `json:"count"`
}

func (it ItemRequest) quantity() int {
	if it.Count < 1 {
		return 1
	}
	return it.Count
}

// CheckLimits rechaza pedidos con demasiados items o cantidades fuera de rango.
func CheckLimits(items []ItemRequest) error {
	if len(items) > MaxItems {
		return apperrors.NewInvalidInput(fmt.Sprintf("Máximo de %d itens por relatório", MaxItems))
	}
	for _, it := range items {
		if it.Count > MaxCount {
			return apperrors.NewInvalidInput(fmt.Sprintf("Quantidade máxima por procedimento: %d", MaxCount))
		}
	}
	return nil
}

// RequestedQuantity suma las cantidades como las cuenta BuildSelection (count < 1 vale 1).
// Asume CheckLimits.
func RequestedQuantity(items []ItemRequest) int {
	total := 0
	for _, it := range items {
		total += it.quantity()
	}
	return total
}

// BuildSelection resuelve los códigos contra el catálogo y arma la Selection.
// Códigos repetidos suman cantidad; count < 1 cuenta como 1.
func BuildSelection(items []ItemRequest, catalog []procedures.Procedure) (selection.Selection, error) {
	if err := CheckLimits(items); err != nil {
		return selection.Selection{}, err
	}

	counts := make(map[int]int, len(items))
	order := make([]procedures.Procedure, 0, len(items))
	for _, it := range items {
		if _, seen := counts[it.Code]; !seen {
			p, ok := procedures.FindByCode(catalog, it.Code)
			if !ok {
				return selection.Selection{}, apperrors.NewInvalidInput(fmt.Sprintf("Procedimento desconhecido: %d", it.Code))
			}
			order = append(order, p)
		}
		counts[it.Code] += it.quantity()
		if counts[it.Code] > MaxCount {
			return selection.Selection{}, apperrors.NewInvalidInput(fmt.Sprintf("Quantidade máxima por procedimento: %d", MaxCount))
		}
	}

	sel := selection.New()
	for _, p := range order {
		sel = sel.Select(p).SetCount(p, counts[p.Code])
	}
	return sel, nil
}
