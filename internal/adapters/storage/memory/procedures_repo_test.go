package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-procedures/internal/domain/procedures"
)

func TestProceduresRepo_Cascade(t *testing.T) {
	repo := NewProceduresRepo(DemoCatalog())
	ctx := context.Background()

	plans, err := repo.ListPlans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plano A", "Plano B", "Plano C"}, plans)

	subs, err := repo.ListSubGroups(ctx, "Plano B")
	require.NoError(t, err)
	assert.Equal(t, []string{"Consultas", "Imagem", "Vacinas"}, subs)

	items, err := repo.ListByPlanAndSubGroup(ctx, "Plano A", "Consultas")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Consulta Especialista", items[0].Name)
}

func TestProceduresRepo_ListAllSortedByName(t *testing.T) {
	repo := NewProceduresRepo(DemoCatalog())

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, len(DemoCatalog()))
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Name, all[i].Name)
	}
}

func TestProceduresRepo_SkipsBlankValues(t *testing.T) {
	repo := NewProceduresRepo([]procedures.Procedure{
		{Code: 1, Name: "A", Plan: "", SubGroup: "X"},
		{Code: 2, Name: "B", Plan: "Plano A", SubGroup: " "},
	})

	plans, _ := repo.ListPlans(context.Background())
	assert.Equal(t, []string{"Plano A"}, plans)

	subs, _ := repo.ListSubGroups(context.Background(), "Plano A")
	assert.Empty(t, subs)
}
