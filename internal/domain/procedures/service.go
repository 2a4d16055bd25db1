package procedures

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"vet-procedures/internal/platform/apperrors"
	"vet-procedures/internal/platform/logger"
)

const (
	DefaultTTL = time.Hour

	StaleWarning = "Usando cache expirado devido a erro de conexão"
	fetchFailed  = "Erro ao buscar procedimentos do banco de dados"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Config struct {
	TTL    time.Duration
	Store  SnapshotStore // opcional
	Logger logger.Logger // opcional
}

// Service es el catálogo: cache del listado completo + filtros en cascada.
// Se instancia una vez por proceso y se pasa por referencia a los handlers.
type Service struct {
	repo  Repository
	store SnapshotStore
	log   logger.Logger
	ttl   time.Duration
	now   func() time.Time

	mu   sync.RWMutex
	snap *Snapshot

	refresh singleflight.Group
}

func NewService(repo Repository, cfg Config) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		store: cfg.Store,
		log:   log.With(map[string]any{"component": "catalog"}),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Catalog devuelve el catálogo completo.
// - Snapshot vigente => se devuelve sin tocar el store (Cached=true, Age).
// - Si no, se consulta el store; con éxito se reemplaza el snapshot entero.
// - Si el store falla y hay un snapshot previo (aunque vencido) => Stale=true + Warning.
// - Si no hay nada previo => BackingStoreUnavailable.
func (s *Service) Catalog(ctx context.Context) (CatalogResult, error) {
	now := s.now()

	fallback := s.current()
	if fallback != nil && s.fresh(*fallback, now) {
		s.log.Debug("catalog cache hit", map[string]any{"age_s": int(now.Sub(fallback.CapturedAt).Seconds())})
		return hit(*fallback, now), nil
	}

	if shared, ok := s.loadShared(ctx); ok {
		if s.fresh(shared, now) {
			s.set(shared)
			return hit(shared, now), nil
		}
		if fallback == nil || shared.CapturedAt.After(fallback.CapturedAt) {
			fallback = &shared
		}
	}

	v, err, _ := s.refresh.Do("catalog", func() (any, error) {
		items, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		snap := Snapshot{Items: capRows(items), CapturedAt: s.now()}
		s.set(snap)
		s.saveShared(ctx, snap)
		return snap, nil
	})
	if err == nil {
		snap := v.(Snapshot)
		s.log.Info("catalog refreshed", map[string]any{"count": len(snap.Items)})
		return CatalogResult{
			Items:      snap.Items,
			CapturedAt: snap.CapturedAt,
		}, nil
	}

	if fallback != nil {
		s.log.Warn("catalog refresh failed, serving stale snapshot", map[string]any{
			"error": err.Error(),
			"age_s": int(now.Sub(fallback.CapturedAt).Seconds()),
		})
		res := hit(*fallback, now)
		res.Stale = true
		res.Warning = StaleWarning
		return res, nil
	}

	s.log.Error("catalog refresh failed", map[string]any{"error": err.Error()})
	return CatalogResult{}, apperrors.NewBackingStoreUnavailable(fetchFailed, err)
}

// Plans es el tier 1: planos distintos, no vacíos, ordenados.
func (s *Service) Plans(ctx context.Context) ([]string, error) {
	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, apperrors.NewBackingStoreUnavailable(fetchFailed, err)
	}
	return distinctSorted(plans), nil
}

// SubGroups es el tier 2: sub_grupos del plano, distintos, no vacíos, ordenados.
func (s *Service) SubGroups(ctx context.Context, plan string) ([]string, error) {
	plan = strings.TrimSpace(plan)
	if plan == "" {
		return nil, ErrInvalidInput
	}
	subs, err := s.repo.ListSubGroups(ctx, plan)
	if err != nil {
		return nil, apperrors.NewBackingStoreUnavailable(fetchFailed, err)
	}
	return distinctSorted(subs), nil
}

// Procedures es el tier 3: procedimientos de plano+sub_grupo ordenados por nombre (máx. MaxRows).
func (s *Service) Procedures(ctx context.Context, plan, subGroup string) ([]Procedure, error) {
	plan = strings.TrimSpace(plan)
	subGroup = strings.TrimSpace(subGroup)
	if plan == "" || subGroup == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.ListByPlanAndSubGroup(ctx, plan, subGroup)
	if err != nil {
		return nil, apperrors.NewBackingStoreUnavailable(fetchFailed, err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return capRows(items), nil
}

func (s *Service) current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Service) set(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = &snap
}

func (s *Service) fresh(snap Snapshot, now time.Time) bool {
	return now.Sub(snap.CapturedAt) < s.ttl
}

func (s *Service) loadShared(ctx context.Context) (Snapshot, bool) {
	if s.store == nil {
		return Snapshot{}, false
	}
	snap, ok, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("shared snapshot load failed", map[string]any{"error": err.Error()})
		return Snapshot{}, false
	}
	return snap, ok
}

func (s *Service) saveShared(ctx context.Context, snap Snapshot) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, snap, s.ttl); err != nil {
		s.log.Warn("shared snapshot save failed", map[string]any{"error": err.Error()})
	}
}

func hit(snap Snapshot, now time.Time) CatalogResult {
	return CatalogResult{
		Items:      snap.Items,
		Cached:     true,
		Age:        now.Sub(snap.CapturedAt),
		CapturedAt: snap.CapturedAt,
	}
}

func capRows(items []Procedure) []Procedure {
	if len(items) > MaxRows {
		return items[:MaxRows]
	}
	return items
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
