package selection

import (
	"vet-procedures/internal/domain/procedures"
)

// Item es un procedimiento elegido con su cantidad (siempre >= 1).
type Item struct {
	procedures.Procedure
	Count int
}

// Subtotal = precio parseado × cantidad.
func (it Item) Subtotal() float64 {
	return it.PriceValue() * float64(it.Count)
}

// Selection es la lista ordenada de procedimientos elegidos, a lo sumo una entrada por código.
//
// Semántica elegida: con cantidades. Select sobre un código presente no hace nada;
// la cantidad solo cambia con Increment/Decrement y la entrada solo sale con Remove.
//
// Todas las operaciones son puras: devuelven una Selection nueva y no tocan la receptora.
type Selection struct {
	items []Item
}

func New() Selection {
	return Selection{}
}

// Select agrega p con count=1 si no estaba.
func (s Selection) Select(p procedures.Procedure) Selection {
	if s.indexOf(p.Code) >= 0 {
		return s
	}
	out := s.clone(1)
	out.items = append(out.items, Item{Procedure: p, Count: 1})
	return out
}

// Remove quita la entrada con el código de p.
func (s Selection) Remove(p procedures.Procedure) Selection {
	return s.RemoveCode(p.Code)
}

func (s Selection) RemoveCode(code int) Selection {
	i := s.indexOf(code)
	if i < 0 {
		return s
	}
	out := Selection{items: make([]Item, 0, len(s.items)-1)}
	out.items = append(out.items, s.items[:i]...)
	out.items = append(out.items, s.items[i+1:]...)
	return out
}

// Increment suma 1 sin tope. Si el código no está seleccionado no hace nada.
func (s Selection) Increment(p procedures.Procedure) Selection {
	return s.update(p.Code, func(n int) int { return n + 1 })
}

// Decrement resta 1 con piso en 1 (nunca elimina).
func (s Selection) Decrement(p procedures.Procedure) Selection {
	return s.update(p.Code, func(n int) int {
		if n <= 1 {
			return 1
		}
		return n - 1
	})
}

// SetCount fija la cantidad de una vez (piso en 1). Si el código no está seleccionado no hace nada.
func (s Selection) SetCount(p procedures.Procedure, n int) Selection {
	return s.update(p.Code, func(int) int {
		if n < 1 {
			return 1
		}
		return n
	})
}

// Items devuelve una copia en orden de selección.
func (s Selection) Items() []Item {
	return append([]Item(nil), s.items...)
}

func (s Selection) Get(code int) (Item, bool) {
	i := s.indexOf(code)
	if i < 0 {
		return Item{}, false
	}
	return s.items[i], true
}

func (s Selection) Len() int { return len(s.items) }

// TotalQuantity = Σ count. Es lo que valida el reporte.
func (s Selection) TotalQuantity() int {
	total := 0
	for _, it := range s.items {
		total += it.Count
	}
	return total
}

// TotalValue = Σ(precio parseado × count).
func (s Selection) TotalValue() float64 {
	total := 0.0
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

func (s Selection) update(code int, fn func(int) int) Selection {
	i := s.indexOf(code)
	if i < 0 {
		return s
	}
	out := s.clone(0)
	out.items[i].Count = fn(out.items[i].Count)
	return out
}

func (s Selection) indexOf(code int) int {
	for i, it := range s.items {
		if it.Code == code {
			return i
		}
	}
	return -1
}

func (s Selection) clone(extra int) Selection {
	items := make([]Item, len(s.items), len(s.items)+extra)
	copy(items, s.items)
	return Selection{items: items}
}
