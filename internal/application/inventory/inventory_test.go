package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/application/inventory"
	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/memory"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

type fixture struct {
	store       *memory.Store
	ledger      *inventory.LedgerUseCase
	movements   *inventory.MovementUseCase
	losses      *inventory.LossUseCase
	productions *inventory.ProductionUseCase
	counts      *inventory.CountUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	log := logger.Nop()
	return &fixture{
		store:       s,
		ledger:      inventory.NewLedgerUseCase(s, s.Stock(), s.Products(), log),
		movements:   inventory.NewMovementUseCase(s, s.Movements(), s.Products(), log),
		losses:      inventory.NewLossUseCase(s, s.Losses(), s.Products(), log),
		productions: inventory.NewProductionUseCase(s, s.Production(), s.Products(), s.Employees(), log),
		counts:      inventory.NewCountUseCase(s, s.Counts(), s.Products(), s.Employees(), log),
	}
}

func (f *fixture) product(t *testing.T, id, name string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{
		ID: id, Name: name, Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) employee(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.store.Employees().Create(context.Background(), &entity.Employee{
		ID: id, Name: name, Status: entity.StatusActive,
	}))
}

func (f *fixture) balance(t *testing.T, productID string) int64 {
	t.Helper()
	b, err := f.ledger.GetBalance(context.Background(), productID)
	require.NoError(t, err)
	return b
}

func ptr[T any](v T) *T { return &v }

func TestLedger_UnknownProductIsZeroAndReadsAreIdempotent(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, int64(0), f.balance(t, "nao-existe"))
	assert.Equal(t, f.balance(t, "nao-existe"), f.balance(t, "nao-existe"))
}

func TestLedger_ApplyDeltaAllowsNegative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.ledger.ApplyDelta(ctx, dto.ApplyDeltaRequest{ProductID: "P", Type: entity.MovementTypeOut, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(-4), out.Quantity)
	assert.Equal(t, entity.UnknownProductName, out.ProductName)

	_, err = f.ledger.ApplyDelta(ctx, dto.ApplyDeltaRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, int64(-4), f.balance(t, "P"))

	list, err := f.ledger.ListBalances(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "P", list[0].ProductID)
}

// Escenario: entrada 10 y saida 3 desde cero dejan saldo 7.
func TestMovement_EntradaThenSaida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "P", "Arroz")

	m, err := f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Arroz", m.ProductName)
	assert.False(t, m.Date.IsZero(), "data por defecto")
	assert.Equal(t, int64(10), f.balance(t, "P"))

	_, err = f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: entity.MovementTypeOut, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(7), f.balance(t, "P"))
}

// Escenario: saldo previo 5, entrada 5 (10); cambiar a saida 5 deja 0.
func TestMovement_UpdateUndoesOldDeltaFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 5})
	require.NoError(t, err)
	m, err := f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 5})
	require.NoError(t, err)
	require.Equal(t, int64(10), f.balance(t, "P"))

	updated, err := f.movements.Update(ctx, m.ID, dto.UpdateMovementRequest{Type: ptr(entity.MovementTypeOut)})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOut, updated.Type)
	assert.Equal(t, int64(0), f.balance(t, "P"))
}

func TestMovement_CreateEditEditDeleteNetsZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ledger.ApplyDelta(ctx, dto.ApplyDeltaRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 3})
	require.NoError(t, err)
	before := f.balance(t, "P")

	m, err := f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 8})
	require.NoError(t, err)
	_, err = f.movements.Update(ctx, m.ID, dto.UpdateMovementRequest{Quantity: ptr(int64(2)), Type: ptr(entity.MovementTypeOut)})
	require.NoError(t, err)
	_, err = f.movements.Update(ctx, m.ID, dto.UpdateMovementRequest{ProductID: ptr("Q"), Quantity: ptr(int64(6))})
	require.NoError(t, err)
	assert.Equal(t, before, f.balance(t, "P"))
	assert.Equal(t, int64(-6), f.balance(t, "Q"))

	require.NoError(t, f.movements.Delete(ctx, m.ID))
	assert.Equal(t, before, f.balance(t, "P"))
	assert.Equal(t, int64(0), f.balance(t, "Q"))

	_, err = f.movements.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovement_InvalidInputWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: "ajuste", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.movements.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int64(0), f.balance(t, "P"))

	m, err := f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 4})
	require.NoError(t, err)
	_, err = f.movements.Update(ctx, m.ID, dto.UpdateMovementRequest{Quantity: ptr(int64(-1))})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, int64(4), f.balance(t, "P"), "una edición inválida no toca el ledger")

	got, err := f.movements.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity)
}

func TestMovement_UpdateUnknownAndDeleteAbsent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.movements.Update(ctx, "nao-existe", dto.UpdateMovementRequest{Quantity: ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.movements.Delete(ctx, "nao-existe"))
	list, err := f.ledger.ListBalances(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "delete de id ausente no crea entradas en el ledger")
}

func TestMovement_SearchIgnoresCaseAndAccents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "P", "Feijão Preto")
	f.product(t, "Q", "Arroz")

	_, err := f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 1})
	require.NoError(t, err)
	_, err = f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "Q", Type: entity.MovementTypeIn, Quantity: 1, Notes: "Compra semanal"})
	require.NoError(t, err)

	res, err := f.movements.Search(ctx, "FEIJAO")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "P", res[0].ProductID)

	res, err = f.movements.Search(ctx, "semanal")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Q", res[0].ProductID)

	res, err = f.movements.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestLoss_AlwaysSubtractsAndReverses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "P", "Leite")

	l, err := f.losses.Create(ctx, dto.CreateLossRequest{ProductID: "P", Quantity: 3, Reason: "Vencido"})
	require.NoError(t, err)
	assert.Equal(t, int64(-3), f.balance(t, "P"))

	_, err = f.losses.Update(ctx, l.ID, dto.UpdateLossRequest{Quantity: ptr(int64(5))})
	require.NoError(t, err)
	assert.Equal(t, int64(-5), f.balance(t, "P"))

	res, err := f.losses.Search(ctx, "vencido")
	require.NoError(t, err)
	assert.Len(t, res, 1)

	require.NoError(t, f.losses.Delete(ctx, l.ID))
	assert.Equal(t, int64(0), f.balance(t, "P"))

	_, err = f.losses.Update(ctx, l.ID, dto.UpdateLossRequest{Quantity: ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Escenario: producción Q=2 con insumos R=1, S=3 desde cero; borrarla restaura todo.
func TestProduction_MultiLegCreateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.employee(t, "E1", "Ana")

	p, err := f.productions.Create(ctx, dto.CreateProductionRequest{
		ProductID:     "Q",
		Quantity:      2,
		ResponsibleID: "E1",
		Inputs: []dto.ProductionInputDTO{
			{ProductID: "R", Quantity: 1},
			{ProductID: "S", Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, p.Responsible)
	assert.Equal(t, "Ana", p.Responsible.Name)
	assert.Equal(t, int64(2), f.balance(t, "Q"))
	assert.Equal(t, int64(-1), f.balance(t, "R"))
	assert.Equal(t, int64(-3), f.balance(t, "S"))

	require.NoError(t, f.productions.Delete(ctx, p.ID))
	for _, id := range []string{"Q", "R", "S"} {
		assert.Equalf(t, int64(0), f.balance(t, id), "producto %s", id)
	}

	balances, err := f.ledger.ListBalances(ctx)
	require.NoError(t, err)
	assert.Len(t, balances, 3, "k+1 entradas tocadas")
}

func TestProduction_UpdateReversesEveryOldLeg(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.productions.Create(ctx, dto.CreateProductionRequest{
		ProductID: "Q", Quantity: 2,
		Inputs: []dto.ProductionInputDTO{{ProductID: "R", Quantity: 1}, {ProductID: "S", Quantity: 3}},
	})
	require.NoError(t, err)

	newInputs := []dto.ProductionInputDTO{{ProductID: "T", Quantity: 4}}
	_, err = f.productions.Update(ctx, p.ID, dto.UpdateProductionRequest{Quantity: ptr(int64(5)), Inputs: &newInputs})
	require.NoError(t, err)

	assert.Equal(t, int64(5), f.balance(t, "Q"))
	assert.Equal(t, int64(0), f.balance(t, "R"))
	assert.Equal(t, int64(0), f.balance(t, "S"))
	assert.Equal(t, int64(-4), f.balance(t, "T"))
}

func TestProduction_MalformedLegRejectsWholeOperation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.productions.Create(ctx, dto.CreateProductionRequest{
		ProductID: "Q", Quantity: 2,
		Inputs: []dto.ProductionInputDTO{{ProductID: "R", Quantity: 1}, {ProductID: "", Quantity: 3}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.productions.Create(ctx, dto.CreateProductionRequest{
		ProductID: "Q", Quantity: 2,
		Inputs: []dto.ProductionInputDTO{{ProductID: "R", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	list, err := f.productions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int64(0), f.balance(t, "Q"))
	assert.Equal(t, int64(0), f.balance(t, "R"))

	_, err = f.productions.Create(ctx, dto.CreateProductionRequest{ProductID: "Q", Quantity: 1, ResponsibleID: "ninguem"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduction_ListByProductAndPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jan := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)

	_, err := f.productions.Create(ctx, dto.CreateProductionRequest{ProductID: "Q", Quantity: 1, Date: &dto.Timestamp{Time: jan}})
	require.NoError(t, err)
	_, err = f.productions.Create(ctx, dto.CreateProductionRequest{ProductID: "Z", Quantity: 1, Date: &dto.Timestamp{Time: feb}})
	require.NoError(t, err)

	byProduct, err := f.productions.ListByProduct(ctx, "Q")
	require.NoError(t, err)
	require.Len(t, byProduct, 1)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	byPeriod, err := f.productions.ListByPeriod(ctx, &from, nil)
	require.NoError(t, err)
	require.Len(t, byPeriod, 1)
	assert.Equal(t, "Z", byPeriod[0].ProductID)

	all, err := f.productions.ListByPeriod(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// Escenario: saldo 7, contado 8 con ajuste -> +1; sin ajuste -> sin cambio.
func TestCount_ConditionalAdjustment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "P", "Farinha")
	_, err := f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 7})
	require.NoError(t, err)

	c, err := f.counts.Create(ctx, dto.CreateCountRequest{ProductID: "P", Quantity: 8, AdjustStock: true})
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.PreviousBalance)
	assert.Equal(t, int64(1), c.Difference)
	assert.Equal(t, "Farinha", c.Product.Name)
	assert.Equal(t, int64(8), f.balance(t, "P"))

	c, err = f.counts.Create(ctx, dto.CreateCountRequest{ProductID: "P", Quantity: 2, AdjustStock: false})
	require.NoError(t, err)
	assert.Equal(t, int64(-6), c.Difference)
	assert.Equal(t, int64(8), f.balance(t, "P"), "sin ajuste el ledger no cambia")

	c, err = f.counts.Create(ctx, dto.CreateCountRequest{ProductID: "P", Quantity: 0, AdjustStock: true})
	require.NoError(t, err)
	assert.Equal(t, int64(-8), c.Difference)
	assert.Equal(t, int64(0), f.balance(t, "P"))

	_, err = f.counts.Create(ctx, dto.CreateCountRequest{ProductID: "P", Quantity: -1, AdjustStock: true})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.counts.Create(ctx, dto.CreateCountRequest{ProductID: "nao-existe", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	byProduct, err := f.counts.ListByProduct(ctx, "P")
	require.NoError(t, err)
	assert.Len(t, byProduct, 3)
}

func TestCount_BatchDefaultsToAdjustAndIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "A", "Alface")
	f.product(t, "B", "Batata")
	f.employee(t, "E1", "Bruno")

	out, err := f.counts.CreateBatch(ctx, dto.CreateCountBatchRequest{
		ResponsibleID: "E1",
		Items: []dto.CountBatchItem{
			{ProductID: "A", Quantity: 3},
			{ProductID: "B", Quantity: 5, AdjustStock: ptr(false)},
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].AdjustStock)
	require.NotNil(t, out[0].Responsible)
	assert.Equal(t, "Bruno", out[0].Responsible.Name)
	assert.Equal(t, int64(3), f.balance(t, "A"))
	assert.Equal(t, int64(0), f.balance(t, "B"))

	_, err = f.counts.CreateBatch(ctx, dto.CreateCountBatchRequest{
		Items: []dto.CountBatchItem{{ProductID: "A", Quantity: 9}, {ProductID: "B", Quantity: -2}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, int64(3), f.balance(t, "A"))

	all, err := f.counts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCount_ListByPeriodInclusive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "P", "Ovo")
	ts := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	_, err := f.counts.Create(ctx, dto.CreateCountRequest{ProductID: "P", Quantity: 1, Timestamp: &dto.Timestamp{Time: ts}})
	require.NoError(t, err)

	list, err := f.counts.ListByPeriod(ctx, &ts, &ts)
	require.NoError(t, err)
	assert.Len(t, list, 1, "los límites son inclusivos")

	after := ts.Add(time.Second)
	list, err = f.counts.ListByPeriod(ctx, &after, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// failingRunner envuelve el store y falla después de que fn escribió todo.
type failingRunner struct {
	inner inventory.TxRunner
}

var errBoom = errors.New("boom")

func (r failingRunner) Run(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	return r.inner.Run(ctx, func(repos inventory.Repositories) error {
		if err := fn(repos); err != nil {
			return err
		}
		return errBoom
	})
}

func TestTxRunner_FailureDiscardsRecordAndLegs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := inventory.NewProductionUseCase(failingRunner{inner: f.store}, f.store.Production(), f.store.Products(), f.store.Employees(), logger.Nop())

	_, err := uc.Create(ctx, dto.CreateProductionRequest{
		ProductID: "Q", Quantity: 2,
		Inputs: []dto.ProductionInputDTO{{ProductID: "R", Quantity: 1}},
	})
	require.ErrorIs(t, err, errBoom)

	list, err := f.productions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int64(0), f.balance(t, "Q"))
	assert.Equal(t, int64(0), f.balance(t, "R"))
}

func TestLogLists_NewestFirstRegardlessOfInsertion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jan := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)

	for _, d := range []time.Time{jan, mar, feb} {
		_, err := f.movements.Create(ctx, dto.CreateMovementRequest{ProductID: "P", Type: entity.MovementTypeIn, Quantity: 1, Date: &dto.Timestamp{Time: d}})
		require.NoError(t, err)
		_, err = f.losses.Create(ctx, dto.CreateLossRequest{ProductID: "P", Quantity: 1, Date: &dto.Timestamp{Time: d}})
		require.NoError(t, err)
		_, err = f.productions.Create(ctx, dto.CreateProductionRequest{ProductID: "Q", Quantity: 1, Date: &dto.Timestamp{Time: d}})
		require.NoError(t, err)
	}

	want := []time.Time{mar, feb, jan}

	movs, err := f.movements.List(ctx)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	losses, err := f.losses.List(ctx)
	require.NoError(t, err)
	require.Len(t, losses, 3)
	prods, err := f.productions.ListByPeriod(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, prods, 3)

	for i, d := range want {
		assert.True(t, d.Equal(movs[i].Date), "movimentacao %d", i)
		assert.True(t, d.Equal(losses[i].Date), "perda %d", i)
		assert.True(t, d.Equal(prods[i].Date), "producao %d", i)
	}
}
