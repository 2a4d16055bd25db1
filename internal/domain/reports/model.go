package reports

import (
	"strings"
	"time"
)

// PatientInfo identifica al animal del reporte. Todos los campos son texto libre.
type PatientInfo struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Age     string `json:"age"`
}

func (p PatientInfo) normalized() PatientInfo {
	return PatientInfo{
		Name:    strings.TrimSpace(p.Name),
		Species: strings.TrimSpace(p.Species),
		Age:     strings.TrimSpace(p.Age),
	}
}

// Summary junta los campos no vacíos ("Rex, Canino, 3 anos").
func (p PatientInfo) Summary() string {
	n := p.normalized()
	parts := make([]string, 0, 3)
	for _, v := range []string{n.Name, n.Species, n.Age} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func (p PatientInfo) IsEmpty() bool {
	return p.Summary() == ""
}

// Line es una fila del listado: número de secuencia (desde 1), nombre, precio, cantidad.
type Line struct {
	Seq       int     `json:"seq"`
	Code      int     `json:"code"`
	Name      string  `json:"name"`
	Price     string  `json:"price"`
	UnitValue float64 `json:"unitValue"`
	Count     int     `json:"count"`
	Subtotal  float64 `json:"subtotal"`
}

// Document es el modelo ya armado que recibe el Renderer.
type Document struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Patient    PatientInfo `json:"patient"`
	Date       time.Time   `json:"date"`
	DateLabel  string      `json:"dateLabel"`
	Lines      []Line      `json:"lines"`
	TotalItems int         `json:"totalItems"`
	TotalValue float64     `json:"totalValue"`
	FileName   string      `json:"fileName"`
}
