package pdf

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-procedures/internal/domain/reports"
)

func TestBands_SinglePage(t *testing.T) {
	bands := Bands(120, PageHeight, Margin)
	require.Len(t, bands, 1)
	assert.Equal(t, Band{Offset: 0, Height: 120}, bands[0])
}

func TestBands_CarriesRemainder(t *testing.T) {
	usable := PageHeight - 2*Margin // 277

	bands := Bands(600, PageHeight, Margin)
	require.Len(t, bands, 3)
	assert.Equal(t, Band{Offset: 0, Height: usable}, bands[0])
	assert.Equal(t, Band{Offset: usable, Height: usable}, bands[1])
	assert.InDelta(t, 600-2*usable, bands[2].Height, 1e-9)

	total := 0.0
	for _, b := range bands {
		total += b.Height
	}
	assert.InDelta(t, 600, total, 1e-9)
}

func TestBands_ExactMultiple(t *testing.T) {
	usable := PageHeight - 2*Margin
	assert.Len(t, Bands(2*usable, PageHeight, Margin), 2)
}

func TestBands_Degenerate(t *testing.T) {
	assert.Len(t, Bands(0, PageHeight, Margin), 1)
	assert.Len(t, Bands(50, 10, 10), 1)
}

func sampleDocument(lines int) reports.Document {
	doc := reports.Document{
		ID:        "3f2b8c1e-0000-4000-8000-000000000001",
		Title:     reports.DocumentTitle,
		Patient:   reports.PatientInfo{Name: "Rex", Species: "Canino", Age: "3 anos"},
		Date:      time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
		DateLabel: "01/06/2025",
		FileName:  "procedimentos_Rex_2025-06-01.pdf",
	}
	for i := 1; i <= lines; i++ {
		doc.Lines = append(doc.Lines, reports.Line{
			Seq:       i,
			Code:      100 + i,
			Name:      fmt.Sprintf("Procedimento de avaliação clínica número %d com descrição bem longa que não cabe", i),
			Price:     "R$ 150,00",
			UnitValue: 150,
			Count:     1,
			Subtotal:  150,
		})
		doc.TotalItems++
		doc.TotalValue += 150
	}
	return doc
}

func TestRender_WritesPDF(t *testing.T) {
	var buf bytes.Buffer
	err := New("Clínica Veterinária").Render(context.Background(), sampleDocument(3), &buf)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestRender_PaginatesLongDocuments(t *testing.T) {
	r := New("")

	short, err := r.build(context.Background(), sampleDocument(5))
	require.NoError(t, err)
	assert.Equal(t, 1, short.PageCount())

	doc := sampleDocument(80)
	long, err := r.build(context.Background(), doc)
	require.NoError(t, err)

	want := len(Bands(contentHeight(layout(doc)), PageHeight, Margin))
	assert.Equal(t, want, long.PageCount())
	assert.GreaterOrEqual(t, long.PageCount(), 2)
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := New("").Render(ctx, sampleDocument(1), &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestLayout_HeaderFieldsOnlyWhenPresent(t *testing.T) {
	doc := sampleDocument(1)
	doc.Patient = reports.PatientInfo{Name: "Mel"}

	fields := headerFields(doc)
	require.Len(t, fields, 2)
	assert.Equal(t, "Paciente:", fields[0][0])
	assert.Equal(t, "Data:", fields[1][0])
}
