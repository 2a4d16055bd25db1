package pdf

// Band es la franja vertical del contenido que va en una página:
// desde Offset (mm desde el tope del contenido) con alto Height.
type Band struct {
	Offset float64
	Height float64
}

// Bands corta un contenido de contentHeight en franjas del alto útil de la página
// (pageHeight - 2*margin). Lo que no entra pasa a la página siguiente.
// Siempre devuelve al menos una franja.
func Bands(contentHeight, pageHeight, margin float64) []Band {
	usable := pageHeight - 2*margin
	if usable <= 0 || contentHeight <= 0 {
		return []Band{{Offset: 0, Height: max(contentHeight, 0)}}
	}

	bands := make([]Band, 0, int(contentHeight/usable)+1)
	for offset := 0.0; offset < contentHeight; offset += usable {
		bands = append(bands, Band{Offset: offset, Height: min(usable, contentHeight-offset)})
	}
	return bands
}
