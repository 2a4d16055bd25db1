package reports

import (
	"sort"
	"strings"
)

const (
	FieldPatientInfo   = "patientInfo"
	FieldSelectedCount = "selectedCount"

	MsgPatientRequired   = "Informações do paciente são obrigatórias"
	MsgSelectionRequired = "Selecione pelo menos um procedimento"

	validationFailed = "Dados do relatório inválidos"
)

// ValidationError lleva los mensajes por campo. Se devuelve antes de escribir nada.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return validationFailed + " (" + strings.Join(parts, ", ") + ")"
}

// Validate exige paciente no vacío y al menos un item seleccionado (sumando cantidades).
// Devuelve nil si todo está bien.
func Validate(patient PatientInfo, totalQuantity int) map[string][]string {
	fields := map[string][]string{}
	if patient.IsEmpty() {
		fields[FieldPatientInfo] = append(fields[FieldPatientInfo], MsgPatientRequired)
	}
	if totalQuantity < 1 {
		fields[FieldSelectedCount] = append(fields[FieldSelectedCount], MsgSelectionRequired)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
