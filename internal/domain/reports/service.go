package reports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"vet-procedures/internal/domain/selection"
	"vet-procedures/internal/platform/apperrors"
	"vet-procedures/internal/platform/logger"
)

const renderFailed = "Erro ao gerar PDF"

// Renderer convierte un Document ya armado en bytes (PDF).
type Renderer interface {
	Render(ctx context.Context, doc Document, w io.Writer) error
	ContentType() string
}

type Service struct {
	renderer Renderer
	log      logger.Logger
	now      func() time.Time
}

func NewService(renderer Renderer, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		renderer: renderer,
		log:      log.With(map[string]any{"component": "reports"}),
		now:      time.Now,
	}
}

// Prepare valida y arma el documento sin renderizar.
func (s *Service) Prepare(patient PatientInfo, sel selection.Selection) (Document, error) {
	if fields := Validate(patient, sel.TotalQuantity()); fields != nil {
		return Document{}, &ValidationError{Fields: fields}
	}
	return BuildDocument(patient, sel, s.now()), nil
}

// Generate valida, arma y renderiza. El renderer escribe a un buffer y recién con éxito
// se copia a w: si falla la validación o el render, w queda intacto.
func (s *Service) Generate(ctx context.Context, patient PatientInfo, sel selection.Selection, w io.Writer) (Document, error) {
	doc, err := s.Prepare(patient, sel)
	if err != nil {
		return Document{}, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(ctx, doc, &buf); err != nil {
		s.log.Error("report render failed", map[string]any{"report_id": doc.ID, "error": err.Error()})
		return Document{}, apperrors.NewRendering(renderFailed, err)
	}

	if _, err := io.Copy(w, &buf); err != nil {
		return Document{}, err
	}

	s.log.Info("report generated", map[string]any{
		"report_id":   doc.ID,
		"lines":       len(doc.Lines),
		"total_items": doc.TotalItems,
	})
	return doc, nil
}

func (s *Service) ContentType() string {
	return s.renderer.ContentType()
}

// AsValidation extrae los campos de un *ValidationError.
func AsValidation(err error) (map[string][]string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}
