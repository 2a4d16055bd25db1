package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"vet-procedures/internal/domain/procedures"
)

const tableProcedures = "processos"

var procedureColumns = []any{"cod", "nome", "plano", "grupo_linha", "sub_grupo", "preco_tabela"}

// ProceduresRepo lee el catálogo de la tabla processos.
// Cada consulta toma su propia conexión del pool y la devuelve al terminar,
// incluso si falla.
type ProceduresRepo struct {
	db *sql.DB
	qb goqu.DialectWrapper
}

func NewProceduresRepo(db *sql.DB) *ProceduresRepo {
	return &ProceduresRepo{db: db, qb: goqu.Dialect("postgres")}
}

func (r *ProceduresRepo) ListAll(ctx context.Context) ([]procedures.Procedure, error) {
	ds := r.qb.From(tableProcedures).
		Select(procedureColumns...).
		Order(goqu.C("nome").Asc()).
		Limit(procedures.MaxRows)

	return r.queryProcedures(ctx, ds)
}

func (r *ProceduresRepo) ListPlans(ctx context.Context) ([]string, error) {
	ds := r.qb.From(tableProcedures).
		Select(goqu.C("plano")).
		Distinct().
		Where(goqu.C("plano").IsNotNull(), goqu.C("plano").Neq("")).
		Order(goqu.C("plano").Asc())

	return r.queryStrings(ctx, ds)
}

func (r *ProceduresRepo) ListSubGroups(ctx context.Context, plan string) ([]string, error) {
	ds := r.qb.From(tableProcedures).
		Select(goqu.C("sub_grupo")).
		Distinct().
		Where(
			goqu.C("plano").Eq(plan),
			goqu.C("sub_grupo").IsNotNull(),
			goqu.C("sub_grupo").Neq(""),
		).
		Order(goqu.C("sub_grupo").Asc())

	return r.queryStrings(ctx, ds)
}

func (r *ProceduresRepo) ListByPlanAndSubGroup(ctx context.Context, plan, subGroup string) ([]procedures.Procedure, error) {
	ds := r.qb.From(tableProcedures).
		Select(procedureColumns...).
		Where(goqu.Ex{"plano": plan, "sub_grupo": subGroup}).
		Order(goqu.C("nome").Asc()).
		Limit(procedures.MaxRows)

	return r.queryProcedures(ctx, ds)
}

func (r *ProceduresRepo) queryProcedures(ctx context.Context, ds *goqu.SelectDataset) ([]procedures.Procedure, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]procedures.Procedure, 0)
	for rows.Next() {
		var p procedures.Procedure
		var plan, lineGroup, subGroup, price sql.NullString
		if err := rows.Scan(&p.Code, &p.Name, &plan, &lineGroup, &subGroup, &price); err != nil {
			return nil, err
		}
		p.Plan = plan.String
		p.LineGroup = lineGroup.String
		p.SubGroup = subGroup.String
		p.Price = price.String
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *ProceduresRepo) queryStrings(ctx context.Context, ds *goqu.SelectDataset) ([]string, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v.Valid {
			out = append(out, v.String)
		}
	}

	return out, rows.Err()
}
