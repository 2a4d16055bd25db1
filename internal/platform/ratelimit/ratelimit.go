package ratelimit

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultWindow    = 60 * time.Second
	DefaultMax       = 60
	DefaultTableSize = 10000
)

// Config del limitador de ventana fija.
type Config struct {
	Window    time.Duration
	Max       int
	TableSize int
}

func (c Config) withDefaults() Config {
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.Max <= 0 {
		c.Max = DefaultMax
	}
	if c.TableSize <= 0 {
		c.TableSize = DefaultTableSize
	}
	return c
}

// Window es el estado por cliente: contador y fin de la ventana actual.
type Window struct {
	Count   int
	ResetAt time.Time
}

// Decision es el resultado de Allow.
type Decision struct {
	Allowed   bool
	Count     int
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter devuelve cuánto falta para que se abra la próxima ventana (mínimo 1s).
func (d Decision) RetryAfter(now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	if wait < time.Second {
		return time.Second
	}
	return wait
}

// Limiter es un limitador de ventana fija por identificador de cliente.
// La tabla es un LRU acotado: los clientes menos recientes se expulsan al llenarse.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu    sync.Mutex
	table *lru.Cache[string, Window]
}

func New(cfg Config) *Limiter {
	cfg = cfg.withDefaults()
	table, err := lru.New[string, Window](cfg.TableSize)
	if err != nil {
		// solo falla con size <= 0, que withDefaults ya descarta
		panic(err)
	}
	return &Limiter{
		cfg:   cfg,
		now:   time.Now,
		table: table,
	}
}

// WithClock reemplaza el reloj (tests).
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

func (l *Limiter) Config() Config { return l.cfg }

// Now es el reloj del limitador; el middleware lo usa para Retry-After.
func (l *Limiter) Now() time.Time { return l.now() }

// Allow registra un request de clientID.
// Primer request de la ventana: count=1 y la ventana cierra en now+Window.
// Dentro de la ventana se incrementa; se admite mientras count <= Max.
func (l *Limiter) Allow(clientID string) Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.table.Get(clientID)
	if !ok || now.After(w.ResetAt) {
		w = Window{Count: 1, ResetAt: now.Add(l.cfg.Window)}
	} else {
		w.Count++
	}
	l.table.Add(clientID, w)

	remaining := l.cfg.Max - w.Count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   w.Count <= l.cfg.Max,
		Count:     w.Count,
		Limit:     l.cfg.Max,
		Remaining: remaining,
		ResetAt:   w.ResetAt,
	}
}

// Sweep elimina ventanas vencidas y devuelve cuántas quitó.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for _, k := range l.table.Keys() {
		w, ok := l.table.Peek(k)
		if ok && now.After(w.ResetAt) {
			l.table.Remove(k)
			removed++
		}
	}
	return removed
}

// Len devuelve la cantidad de clientes en la tabla.
func (l *Limiter) Len() int {
	return l.table.Len()
}

// StartSweeper corre Sweep cada `every` hasta que ctx se cancele.
func (l *Limiter) StartSweeper(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = l.cfg.Window
	}
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Sweep()
			}
		}
	}()
}
