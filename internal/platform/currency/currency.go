package currency

import (
	"math"
	"strconv"
	"strings"
)

// ParsePrice interpreta un precio en texto ("R$ 1.234,56", "R$ 1,234.56", "R$ 10").
// El último separador ('.' o ',') se toma como punto decimal; los demás se descartan.
// Texto vacío, placeholders ("-", "Consultar") o basura devuelven 0.
func ParsePrice(s string) float64 {
	clean := strings.TrimSpace(strings.ReplaceAll(s, "R$", ""))
	clean = strings.ReplaceAll(clean, " ", "")
	if clean == "" {
		return 0
	}

	last := strings.LastIndexAny(clean, ".,")
	if last < 0 {
		return parseOrZero(clean)
	}

	intPart := strings.NewReplacer(".", "", ",", "").Replace(clean[:last])
	fracPart := clean[last+1:]
	return parseOrZero(intPart + "." + fracPart)
}

func parseOrZero(s string) float64 {
	v, err := strconv.ParseFloat(leadingNumber(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// leadingNumber recorta el prefijo numérico válido, igual que un parseFloat tolerante
// ("150.00abc" => "150.00").
func leadingNumber(s string) string {
	end := 0
	seenDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			end = i + 1
		case r == '-' && i == 0:
			continue
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return s[:end]
		}
	}
	return s[:end]
}

// FormatBRL formatea un valor como "R$ 1.234,56".
func FormatBRL(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(math.Round(v * 100))
	intPart := strconv.FormatInt(cents/100, 10)
	frac := cents % 100

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + pad2(frac)
	if neg {
		out = "-" + out
	}
	return out
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
