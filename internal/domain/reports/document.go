package reports

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-procedures/internal/domain/selection"
)

const (
	DocumentTitle = "Relatório de Procedimentos"

	fileNameFallback = "paciente"
)

// BuildDocument arma el documento a partir de la selección, en orden de selección.
// No valida: eso lo hace Service.Generate antes de llamarlo.
func BuildDocument(patient PatientInfo, sel selection.Selection, now time.Time) Document {
	items := sel.Items()
	lines := make([]Line, 0, len(items))
	for i, it := range items {
		lines = append(lines, Line{
			Seq:       i + 1,
			Code:      it.Code,
			Name:      it.Name,
			Price:     it.Price,
			UnitValue: it.PriceValue(),
			Count:     it.Count,
			Subtotal:  it.Subtotal(),
		})
	}

	return Document{
		ID:         uuid.NewString(),
		Title:      DocumentTitle,
		Patient:    patient.normalized(),
		Date:       now,
		DateLabel:  now.Format("02/01/2006"),
		Lines:      lines,
		TotalItems: sel.TotalQuantity(),
		TotalValue: sel.TotalValue(),
		FileName:   FileName(patient, now),
	}
}

// FileName: procedimentos_<nombre|paciente>_<YYYY-MM-DD>.pdf (fecha en UTC).
func FileName(patient PatientInfo, now time.Time) string {
	name := sanitizeFileName(patient.Name)
	if name == "" {
		name = fileNameFallback
	}
	return "procedimentos_" + name + "_" + now.UTC().Format("2006-01-02") + ".pdf"
}

// Solo se sacan caracteres que rompen un path o el header Content-Disposition.
func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return -1
		case strings.ContainsRune(`/\"<>:|?*`, r):
			return '_'
		default:
			return r
		}
	}, s)
}
