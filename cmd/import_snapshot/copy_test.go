package main

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/memory"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

func legacyStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	day := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{ID: "E1", Name: "Bruno", Status: entity.StatusActive}))
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "C1", Name: "Carnes", Status: entity.StatusActive}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "P1", Name: "Frango", Status: entity.StatusActive}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "P2", Name: "Farinha", Status: entity.StatusActive}))
	require.NoError(t, s.Stock().Upsert(ctx, &entity.StockBalance{ProductID: "P1", Quantity: 7, UpdatedAt: day}))

	require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{ID: "M1", ProductID: "P1", Type: entity.MovementTypeIn, Quantity: 7, Date: day}))
	require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{ID: "M0", ProductID: "P1", Type: entity.MovementTypeOut, Quantity: 0, Date: day}))
	require.NoError(t, s.Losses().Create(ctx, &entity.Loss{ID: "L1", ProductID: "P1", Quantity: 2, Date: day, Reason: "vencido"}))
	require.NoError(t, s.Losses().Create(ctx, &entity.Loss{ID: "L0", ProductID: "P1", Quantity: 0, Date: day}))
	require.NoError(t, s.Production().Create(ctx, &entity.Production{
		ID: "PR1", ProductID: "P1", Quantity: 3, Date: day,
		Responsible: &entity.EmployeeRef{ID: "E1", Name: "Bruno"},
		Inputs:      []entity.ProductionInput{{ProductID: "P2", Quantity: 1}},
	}))
	require.NoError(t, s.Production().Create(ctx, &entity.Production{ID: "PR0", ProductID: "P1", Quantity: 0, Date: day}))
	require.NoError(t, s.Counts().Create(ctx, &entity.StockCount{
		ID: "K1", Product: entity.ProductRef{ID: "P1", Name: "Frango"}, Quantity: 7, PreviousBalance: 7, Timestamp: day,
	}))
	require.NoError(t, s.Labels().Create(ctx, &entity.Label{
		ID: "ET1", Product: entity.LabelProduct{ID: "P1", Name: "Frango", ShelfLifeDays: 3},
		Responsible: entity.EmployeeRef{ID: "E1", Name: "Bruno"},
		HandledAt:   day, ExpiresAt: day.AddDate(0, 0, 3), Quantity: 1,
		Measure: &entity.Measure{Value: decimal.RequireFromString("0.5"), Unit: "kg"},
	}))
	return s
}

func TestCopyAll_MemoryToMemory(t *testing.T) {
	ctx := context.Background()
	src := legacyStore(t)
	dst := memory.NewStore()

	res, err := copyAll(ctx, memoryRepos(src), memoryRepos(dst), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"funcionarios": 1, "categorias": 1, "produtos": 2, "saldos": 1,
		"movimentacoes": 1, "perdas": 1, "producao": 1, "contagens": 1, "etiquetas": 1,
	}, res.copied)
	assert.Equal(t, map[string]int{"movimentacoes": 1, "perdas": 1, "producao": 1}, res.skipped)

	b, err := dst.Stock().Get(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), b.Quantity, "el saldo se copia sin recalcular")

	movs, err := dst.Movements().List(ctx)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "M1", movs[0].ID)

	pr, err := dst.Production().GetByID(ctx, "PR1")
	require.NoError(t, err)
	require.NotNil(t, pr)
	assert.Equal(t, []entity.ProductionInput{{ProductID: "P2", Quantity: 1}}, pr.Inputs)
	require.NotNil(t, pr.Responsible)
	assert.Equal(t, "Bruno", pr.Responsible.Name)

	gone, err := dst.Production().GetByID(ctx, "PR0")
	require.NoError(t, err)
	assert.Nil(t, gone)

	l, err := dst.Labels().GetByID(ctx, "ET1")
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "0.5kg", l.Measure.Label())
}

func TestCopyAll_StopsOnFirstWriteError(t *testing.T) {
	ctx := context.Background()
	src := legacyStore(t)
	dst := memory.NewStore()
	// el funcionario ya existe en destino
	require.NoError(t, dst.Employees().Create(ctx, &entity.Employee{ID: "E1", Name: "Outro"}))

	_, err := copyAll(ctx, memoryRepos(src), memoryRepos(dst), logger.Nop())
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "funcionario E1")

	prods, err := dst.Products().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, prods, "nada posterior al fallo se escribe")
}
