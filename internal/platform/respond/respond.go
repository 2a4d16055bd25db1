package respond

import (
	"encoding/json"
	"net/http"

	"vet-procedures/internal/platform/apperrors"
)

// Envelope es el formato JSON común de la API:
// { success, data?, count?, cached?, cacheAge?, warning?, error?, message? }
type Envelope struct {
	Success  bool                `json:"success"`
	Data     any                 `json:"data,omitempty"`
	Count    *int                `json:"count,omitempty"`
	Cached   *bool               `json:"cached,omitempty"`
	CacheAge *int                `json:"cacheAge,omitempty"`
	Warning  string              `json:"warning,omitempty"`
	Error    string              `json:"error,omitempty"`
	Message  string              `json:"message,omitempty"`
	Fields   map[string][]string `json:"fields,omitempty"`
}

// writeJSON vivía duplicado en cada módulo; con procedures, reports y middleware
// escribiendo el mismo envelope ya valía la pena extraerlo.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error escribe {success:false, error, message?} con el status que corresponde al tipo de error.
// Solo se expone el mensaje de la causa, nunca el error crudo envuelto.
func Error(w http.ResponseWriter, err error) {
	status := apperrors.StatusCode(err)
	env := Envelope{
		Success: false,
		Error:   apperrors.PublicMessage(err),
	}
	if status >= http.StatusInternalServerError {
		env.Message = apperrors.CauseMessage(err)
	}
	JSON(w, status, env)
}

func Int(v int) *int    { return &v }
func Bool(v bool) *bool { return &v }
