package reports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-procedures/internal/domain/procedures"
	"vet-procedures/internal/domain/selection"
	"vet-procedures/internal/platform/apperrors"
)

var (
	consulta = procedures.Procedure{Code: 101, Name: "Consulta Geral", Plan: "Plano A", SubGroup: "Consultas", Price: "R$ 150,00"}
	hemo     = procedures.Procedure{Code: 201, Name: "Hemograma", Plan: "Plano A", SubGroup: "Exames", Price: "R$ 1.234,56"}
)

type fakeRenderer struct {
	calls int
	err   error
	doc   Document
}

func (f *fakeRenderer) Render(ctx context.Context, doc Document, w io.Writer) error {
	f.calls++
	f.doc = doc
	if f.err != nil {
		_, _ = w.Write([]byte("%PDF-parcial"))
		return f.err
	}
	_, err := w.Write([]byte("%PDF-1.3 fake"))
	return err
}

func (f *fakeRenderer) ContentType() string { return "application/pdf" }

func fixedNow() time.Time { return time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC) }

func newTestService(r Renderer) *Service {
	svc := NewService(r, nil)
	svc.now = fixedNow
	return svc
}

// -------------------------
// Validation
// -------------------------

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(PatientInfo{Name: "Rex"}, 1))

	fields := Validate(PatientInfo{Name: "   "}, 0)
	assert.Equal(t, []string{MsgPatientRequired}, fields[FieldPatientInfo])
	assert.Equal(t, []string{MsgSelectionRequired}, fields[FieldSelectedCount])

	fields = Validate(PatientInfo{Species: "Felino"}, 0)
	assert.NotContains(t, fields, FieldPatientInfo)
	assert.Contains(t, fields, FieldSelectedCount)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: Validate(PatientInfo{}, 0)}
	assert.Contains(t, err.Error(), "patientInfo: Informações do paciente são obrigatórias")
	assert.Contains(t, err.Error(), "selectedCount: Selecione pelo menos um procedimento")
}

func TestPatientInfo_Summary(t *testing.T) {
	assert.Equal(t, "Rex, Canino, 3 anos", PatientInfo{Name: " Rex ", Species: "Canino", Age: "3 anos"}.Summary())
	assert.Equal(t, "Canino", PatientInfo{Species: "Canino"}.Summary())
	assert.True(t, PatientInfo{Name: "\t"}.IsEmpty())
}

// -------------------------
// Document
// -------------------------

func TestBuildDocument(t *testing.T) {
	sel := selection.New().Select(consulta).Increment(consulta).Select(hemo)

	doc := BuildDocument(PatientInfo{Name: "Rex", Species: "Canino"}, sel, fixedNow())

	require.Len(t, doc.Lines, 2)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, DocumentTitle, doc.Title)
	assert.Equal(t, "01/06/2025", doc.DateLabel)

	assert.Equal(t, 1, doc.Lines[0].Seq)
	assert.Equal(t, 2, doc.Lines[0].Count)
	assert.InDelta(t, 300.0, doc.Lines[0].Subtotal, 0.0001)
	assert.Equal(t, 2, doc.Lines[1].Seq)
	assert.Equal(t, "Hemograma", doc.Lines[1].Name)

	assert.Equal(t, 3, doc.TotalItems)
	assert.InDelta(t, 1534.56, doc.TotalValue, 0.0001)
	assert.Equal(t, "procedimentos_Rex_2025-06-01.pdf", doc.FileName)
}

func TestFileName(t *testing.T) {
	now := fixedNow()
	assert.Equal(t, "procedimentos_paciente_2025-06-01.pdf", FileName(PatientInfo{Species: "Canino"}, now))
	assert.Equal(t, "procedimentos_Mel Souza_2025-06-01.pdf", FileName(PatientInfo{Name: " Mel Souza "}, now))
	assert.Equal(t, "procedimentos_a_b_2025-06-01.pdf", FileName(PatientInfo{Name: "a/b"}, now))

	// la fecha del nombre de archivo es UTC
	late := time.Date(2025, 6, 1, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, "procedimentos_paciente_2025-06-02.pdf", FileName(PatientInfo{}, late))
}

// -------------------------
// Service
// -------------------------

func TestGenerate_EmptyPatientRejectedBeforeRender(t *testing.T) {
	r := &fakeRenderer{}
	svc := newTestService(r)
	sel := selection.New().Select(consulta)

	var out bytes.Buffer
	_, err := svc.Generate(context.Background(), PatientInfo{}, sel, &out)

	fields, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{MsgPatientRequired}, fields[FieldPatientInfo])
	assert.Equal(t, 0, r.calls)
	assert.Zero(t, out.Len())
}

func TestGenerate_EmptySelectionRejected(t *testing.T) {
	r := &fakeRenderer{}
	svc := newTestService(r)

	_, err := svc.Generate(context.Background(), PatientInfo{Name: "Rex"}, selection.New(), io.Discard)

	fields, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, fields, FieldSelectedCount)
	assert.Equal(t, 0, r.calls)
}

func TestGenerate_RenderFailure_NoPartialOutput(t *testing.T) {
	cause := errors.New("font missing")
	svc := newTestService(&fakeRenderer{err: cause})

	var out bytes.Buffer
	_, err := svc.Generate(context.Background(), PatientInfo{Name: "Rex"}, selection.New().Select(consulta), &out)

	assert.Equal(t, apperrors.TypeRendering, apperrors.TypeOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, out.Len())
}

func TestGenerate_WritesRenderedBytes(t *testing.T) {
	r := &fakeRenderer{}
	svc := newTestService(r)

	var out bytes.Buffer
	doc, err := svc.Generate(context.Background(), PatientInfo{Name: "Rex"}, selection.New().Select(consulta).Increment(consulta), &out)
	require.NoError(t, err)

	assert.Equal(t, "%PDF-1.3 fake", out.String())
	assert.Equal(t, doc.ID, r.doc.ID)
	assert.InDelta(t, 300.0, r.doc.TotalValue, 0.0001)
}
