package catalogclient

import (
	"context"
	"errors"
	"sync"

	"vet-procedures/internal/domain/procedures"
)

// ErrSuperseded: llegó una llamada más nueva antes de que esta terminara.
var ErrSuperseded = errors.New("catalogclient: superseded by a newer request")

// Latest se queda solo con el resultado de la última llamada.
// Cada llamada recibe un número de secuencia creciente; al empezar una nueva se cancela
// el contexto de la anterior, y si la anterior igual termina su resultado se descarta.
type Latest struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func (l *Latest) begin(parent context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.seq++
	l.cancel = cancel
	return ctx, l.seq
}

// end devuelve true si seq sigue siendo la última; en ese caso libera su contexto.
func (l *Latest) end(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return true
}

// Seq es el número de la última llamada iniciada.
func (l *Latest) Seq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// Run ejecuta fn bajo l. Si otra llamada empezó mientras tanto devuelve ErrSuperseded.
func Run[T any](ctx context.Context, l *Latest, fn func(ctx context.Context) (T, error)) (T, error) {
	runCtx, seq := l.begin(ctx)
	v, err := fn(runCtx)
	if !l.end(seq) {
		var zero T
		return zero, ErrSuperseded
	}
	return v, err
}

// Filter es el estado de los filtros en cascada del lado cliente.
type Filter struct {
	Plan     string
	SubGroup string
}

// FilterResult es lo que corresponde mostrar para un Filter:
// planes (sin plan), sub-grupos (con plan) o procedimientos (con ambos).
type FilterResult struct {
	Filter     Filter
	Plans      []string
	SubGroups  []string
	Procedures []procedures.Procedure
}

// Cascade resuelve los filtros contra el servidor quedándose solo con el último pedido.
type Cascade struct {
	client *Client
	latest Latest
}

func NewCascade(c *Client) *Cascade {
	return &Cascade{client: c}
}

func (c *Cascade) Resolve(ctx context.Context, f Filter) (FilterResult, error) {
	return Run(ctx, &c.latest, func(ctx context.Context) (FilterResult, error) {
		res := FilterResult{Filter: f}
		var err error
		switch {
		case f.Plan == "":
			res.Plans, err = c.client.Plans(ctx)
		case f.SubGroup == "":
			res.SubGroups, err = c.client.SubGroups(ctx, f.Plan)
		default:
			res.Procedures, err = c.client.Procedures(ctx, f.Plan, f.SubGroup)
		}
		return res, err
	})
}
