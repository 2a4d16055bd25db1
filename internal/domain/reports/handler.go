package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vet-procedures/internal/domain/procedures"
	"vet-procedures/internal/domain/selection"
	"vet-procedures/internal/platform/apperrors"
	"vet-procedures/internal/platform/respond"
)

// Catalog es lo que el handler necesita del servicio de procedimientos.
type Catalog interface {
	Catalog(ctx context.Context) (procedures.CatalogResult, error)
}

// tope del body: MaxItems entradas entran holgadas
const maxBodyBytes = 1 << 20

type generateRequest struct {
	Patient PatientInfo   `json:"patient"`
	Items   []ItemRequest `json:"items"`
}

// RegisterRoutes monta /relatorios. Origin guard y rate limit los aplica el router.
func RegisterRoutes(r chi.Router, svc *Service, catalog Catalog) {
	r.Route("/relatorios", func(rr chi.Router) {
		rr.Post("/", generateHandler(svc, catalog))
		rr.Post("/preview", previewHandler(svc, catalog))
	})
}

// generateHandler godoc
// @Summary Gera o relatório em PDF
// @Description Valida paciente e seleção, monta o documento e devolve o PDF paginado (A4). Nada é persistido.
// @Tags relatorios
// @Accept json
// @Produce application/pdf
// @Param body body generateRequest true "Paciente e procedimentos selecionados"
// @Success 200 {file} binary
// @Failure 400 {object} respond.Envelope "JSON inválido ou procedimento desconhecido"
// @Failure 422 {object} respond.Envelope "erros de validação por campo"
// @Failure 500 {object} respond.Envelope
// @Router /api/relatorios [post]
func generateHandler(svc *Service, catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		patient, sel, err := decodeSelection(w, r, catalog)
		if err != nil {
			writeError(w, err)
			return
		}

		// Headers y status recién con el PDF completo en memoria.
		var out bytes.Buffer
		doc, err := svc.Generate(r.Context(), patient, sel, &out)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", svc.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
		w.Header().Set("Content-Length", strconv.Itoa(out.Len()))
		w.Header().Set("X-Report-ID", doc.ID)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out.Bytes())
	}
}

// previewHandler godoc
// @Summary Pré-visualização do relatório
// @Description Mesma validação do PDF; devolve o documento montado (linhas, totais, nome do arquivo) em JSON.
// @Tags relatorios
// @Accept json
// @Produce json
// @Param body body generateRequest true "Paciente e procedimentos selecionados"
// @Success 200 {object} respond.Envelope
// @Failure 400 {object} respond.Envelope
// @Failure 422 {object} respond.Envelope
// @Router /api/relatorios/preview [post]
func previewHandler(svc *Service, catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		patient, sel, err := decodeSelection(w, r, catalog)
		if err != nil {
			writeError(w, err)
			return
		}

		doc, err := svc.Prepare(patient, sel)
		if err != nil {
			writeError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, respond.Envelope{
			Success: true,
			Data:    doc,
			Count:   respond.Int(doc.TotalItems),
		})
	}
}

// decodeSelection valida el pedido antes de tocar el catálogo y después arma la Selection.
func decodeSelection(w http.ResponseWriter, r *http.Request, catalog Catalog) (PatientInfo, selection.Selection, error) {
	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return PatientInfo{}, selection.Selection{}, apperrors.NewInvalidInput("Requisição muito grande")
		}
		return PatientInfo{}, selection.Selection{}, apperrors.NewInvalidInput("JSON inválido")
	}

	if err := CheckLimits(req.Items); err != nil {
		return PatientInfo{}, selection.Selection{}, err
	}
	if fields := Validate(req.Patient, RequestedQuantity(req.Items)); fields != nil {
		return PatientInfo{}, selection.Selection{}, &ValidationError{Fields: fields}
	}

	res, err := catalog.Catalog(r.Context())
	if err != nil {
		return PatientInfo{}, selection.Selection{}, err
	}

	sel, err := BuildSelection(req.Items, res.Items)
	if err != nil {
		return PatientInfo{}, selection.Selection{}, err
	}
	return req.Patient, sel, nil
}

func writeError(w http.ResponseWriter, err error) {
	if fields, ok := AsValidation(err); ok {
		respond.JSON(w, http.StatusUnprocessableEntity, respond.Envelope{
			Success: false,
			Error:   validationFailed,
			Fields:  fields,
		})
		return
	}
	respond.Error(w, err)
}
