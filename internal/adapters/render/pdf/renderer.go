package pdf

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"vet-procedures/internal/domain/reports"
	"vet-procedures/internal/platform/currency"
)

// A4 retrato en mm, márgenes de 10mm.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 10.0

	contentWidth = PageWidth - 2*Margin
)

const (
	titleHeight  = 10.0
	fieldHeight  = 6.0
	headerHeight = 8.0
	rowHeight    = 7.0
	gap          = 4.0
)

// columnas de la tabla: #, procedimiento, preço, qtd, subtotal
var columnWidths = [5]float64{12, 98, 30, 16, 34}

// Renderer dibuja el documento como un lienzo alto único y lo reparte en páginas A4
// con Bands: cada página muestra su franja recortada, igual que cortar una imagen larga.
type Renderer struct {
	author string
}

func New(author string) *Renderer {
	return &Renderer{author: author}
}

func (r *Renderer) ContentType() string { return "application/pdf" }

func (r *Renderer) Render(ctx context.Context, doc reports.Document, w io.Writer) error {
	pdf, err := r.build(ctx, doc)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func (r *Renderer) build(ctx context.Context, doc reports.Document) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(doc.Date)
	pdf.SetTitle(doc.Title, true)
	pdf.SetSubject(doc.FileName, true)
	if r.author != "" {
		pdf.SetAuthor(r.author, true)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	elems := layout(doc)

	for _, band := range Bands(contentHeight(elems), PageHeight, Margin) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pdf.AddPage()
		pdf.ClipRect(Margin, Margin, contentWidth, band.Height, false)
		originY := Margin - band.Offset
		for _, e := range elems {
			if e.y+e.h < band.Offset || e.y > band.Offset+band.Height {
				continue
			}
			e.draw(pdf, tr, originY+e.y)
		}
		pdf.ClipEnd()
	}

	if pdf.Err() {
		return nil, fmt.Errorf("pdf: %w", pdf.Error())
	}
	return pdf, nil
}

// element es un bloque del lienzo con posición y alto en mm, relativo al tope del contenido.
type element struct {
	y, h float64
	draw func(pdf *fpdf.Fpdf, tr func(string) string, top float64)
}

func contentHeight(elems []element) float64 {
	h := 0.0
	for _, e := range elems {
		if e.y+e.h > h {
			h = e.y + e.h
		}
	}
	return h
}

func layout(doc reports.Document) []element {
	var elems []element
	y := 0.0

	add := func(h float64, draw func(pdf *fpdf.Fpdf, tr func(string) string, top float64)) {
		elems = append(elems, element{y: y, h: h, draw: draw})
		y += h
	}

	add(titleHeight, func(pdf *fpdf.Fpdf, tr func(string) string, top float64) {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(17, 24, 39)
		pdf.SetXY(Margin, top)
		pdf.CellFormat(contentWidth, titleHeight, tr(doc.Title), "", 0, "L", false, 0, "")
	})

	for _, f := range headerFields(doc) {
		label, value := f[0], f[1]
		add(fieldHeight, func(pdf *fpdf.Fpdf, tr func(string) string, top float64) {
			pdf.SetXY(Margin, top)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(75, 85, 99)
			lw := pdf.GetStringWidth(tr(label)) + 1
			pdf.CellFormat(lw, fieldHeight, tr(label), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(contentWidth-lw, fieldHeight, tr(value), "", 0, "L", false, 0, "")
		})
	}

	add(gap, func(pdf *fpdf.Fpdf, tr func(string) string, top float64) {
		pdf.SetDrawColor(229, 231, 235)
		pdf.SetLineWidth(0.6)
		pdf.Line(Margin, top+gap/2, Margin+contentWidth, top+gap/2)
	})

	add(headerHeight, func(pdf *fpdf.Fpdf, tr func(string) string, top float64) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(239, 246, 255)
		pdf.SetTextColor(30, 64, 175)
		pdf.SetXY(Margin, top)
		headers := [5]string{"#", "Procedimento", "Preço", "Qtd", "Subtotal"}
		aligns := [5]string{"C", "L", "R", "C", "R"}
		for i, h := range headers {
			pdf.CellFormat(columnWidths[i], headerHeight, tr(h), "B", 0, aligns[i], true, 0, "")
		}
	})

	for _, line := range doc.Lines {
		add(rowHeight, func(pdf *fpdf.Fpdf, tr func(string) string, top float64) {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(17, 24, 39)
			pdf.SetDrawColor(229, 231, 235)
			pdf.SetLineWidth(0.2)
			pdf.SetXY(Margin, top)
			cells := [5]string{
				strconv.Itoa(line.Seq),
				fit(pdf, tr(line.Name), columnWidths[1]-2),
				currency.FormatBRL(line.UnitValue),
				strconv.Itoa(line.Count),
				currency.FormatBRL(line.Subtotal),
			}
			aligns := [5]string{"C", "L", "R", "C", "R"}
			for i, c := range cells {
				if i != 1 {
					c = tr(c)
				}
				pdf.CellFormat(columnWidths[i], rowHeight, c, "B", 0, aligns[i], false, 0, "")
			}
		})
	}

	y += gap
	add(fieldHeight, func(pdf *fpdf.Fpdf, tr func(string) string, top float64) {
		pdf.SetXY(Margin, top)
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(17, 24, 39)
		pdf.CellFormat(contentWidth, fieldHeight, tr(fmt.Sprintf("Total de itens: %d", doc.TotalItems)), "", 0, "R", false, 0, "")
	})
	add(fieldHeight+2, func(pdf *fpdf.Fpdf, tr func(string) string, top float64) {
		pdf.SetXY(Margin, top)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(17, 24, 39)
		pdf.CellFormat(contentWidth, fieldHeight+2, tr("Valor total: "+currency.FormatBRL(doc.TotalValue)), "", 0, "R", false, 0, "")
	})

	y += gap
	add(fieldHeight, func(pdf *fpdf.Fpdf, tr func(string) string, top float64) {
		pdf.SetXY(Margin, top)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(156, 163, 175)
		pdf.CellFormat(contentWidth, fieldHeight, "ID: "+doc.ID, "", 0, "L", false, 0, "")
	})

	return elems
}

// headerFields: Paciente/Tipo/Idade solo si vienen, Data siempre.
func headerFields(doc reports.Document) [][2]string {
	fields := make([][2]string, 0, 4)
	if doc.Patient.Name != "" {
		fields = append(fields, [2]string{"Paciente:", doc.Patient.Name})
	}
	if doc.Patient.Species != "" {
		fields = append(fields, [2]string{"Tipo:", doc.Patient.Species})
	}
	if doc.Patient.Age != "" {
		fields = append(fields, [2]string{"Idade:", doc.Patient.Age})
	}
	return append(fields, [2]string{"Data:", doc.DateLabel})
}

// fit recorta s (ya traducido) hasta que entre en width, agregando "...".
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > width {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}
