package procedures

import (
	"context"
	"time"
)

// MaxRows es el tope de filas que devuelve cualquier consulta de procedimientos.
const MaxRows = 5000

// Repository es el acceso al store de procedimientos.
// Cada llamada adquiere su propia conexión y la libera antes de volver.
type Repository interface {
	// ListAll devuelve el catálogo completo ordenado por nombre (máx. MaxRows).
	ListAll(ctx context.Context) ([]Procedure, error)
	// ListPlans devuelve los planos distintos, no vacíos, en orden ascendente.
	ListPlans(ctx context.Context) ([]string, error)
	// ListSubGroups devuelve los sub_grupos distintos, no vacíos, de un plano.
	ListSubGroups(ctx context.Context, plan string) ([]string, error)
	// ListByPlanAndSubGroup devuelve los procedimientos de plano+sub_grupo ordenados por nombre.
	ListByPlanAndSubGroup(ctx context.Context, plan, subGroup string) ([]Procedure, error)
}

// Snapshot es una foto completa del catálogo tomada de una sola consulta.
type Snapshot struct {
	Items      []Procedure
	CapturedAt time.Time
}

// SnapshotStore es un segundo nivel opcional (p.ej. Redis) para compartir el snapshot
// entre procesos. Los errores del store nunca rompen el request.
type SnapshotStore interface {
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, s Snapshot, ttl time.Duration) error
}
