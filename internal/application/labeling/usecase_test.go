package labeling_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/application/labeling"
	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/memory"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

type fakePrinter struct {
	calls  int
	copies int
	err    error
}

func (p *fakePrinter) Print(_ context.Context, label *entity.Label, copies int) (labeling.PrintOutcome, error) {
	p.calls++
	p.copies = copies
	if p.err != nil {
		return labeling.PrintOutcome{}, p.err
	}
	return labeling.PrintOutcome{Printed: true, Copies: copies}, nil
}

type fakePDF struct{}

func (fakePDF) GenerateLabelPDF(_ context.Context, label *entity.Label) ([]byte, error) {
	return []byte("%PDF-" + label.ID), nil
}

func setup(t *testing.T) (*labeling.LabelUseCase, *memory.Store, *fakePrinter) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Molho de Tomate", DefaultShelfLifeDays: 3}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p2", Name: "Frango", DefaultStorage: "CONGELADO"}))
	require.NoError(t, s.Employees().Create(ctx, &entity.Employee{ID: "f1", Name: "João"}))
	printer := &fakePrinter{}
	uc := labeling.NewLabelUseCase(s.Labels(), s.Products(), s.Employees(), printer, fakePDF{}, logger.Nop())
	return uc, s, printer
}

func at(day int) *dto.Timestamp {
	return &dto.Timestamp{Time: time.Date(2024, 7, day, 9, 0, 0, 0, time.Local)}
}

func TestExpiryFor(t *testing.T) {
	handled := time.Date(2024, 2, 28, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 2, 14, 0, 0, 0, time.UTC), labeling.ExpiryFor(handled, 3))
	assert.Equal(t, handled.AddDate(0, 0, 1), labeling.ExpiryFor(handled, 0))
	assert.Equal(t, handled.AddDate(0, 0, 1), labeling.ExpiryFor(handled, -2))
}

func TestCreate_UsesProductDefaults(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	l, err := uc.Create(ctx, dto.CreateLabelRequest{ProductID: "p1", ResponsibleID: "f1", HandledAt: at(10)})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Product.ShelfLifeDays)
	assert.Equal(t, labeling.DefaultStorage, l.Product.Storage)
	assert.Equal(t, 1, l.Quantity)
	assert.Equal(t, "João", l.Responsible.Name)
	assert.True(t, at(13).Time.Equal(l.ExpiresAt))

	l, err = uc.Create(ctx, dto.CreateLabelRequest{ProductID: "p2", ResponsibleID: "f1", HandledAt: at(10), Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, l.Product.ShelfLifeDays, "sin validez configurada cuenta un día")
	assert.Equal(t, "CONGELADO", l.Product.Storage)
	assert.True(t, at(11).Time.Equal(l.ExpiresAt))

	days := 7
	l, err = uc.Create(ctx, dto.CreateLabelRequest{
		ProductID: "p2", ResponsibleID: "f1", HandledAt: at(10), ShelfLifeDays: &days,
		Measure: &dto.MeasureDTO{Value: " 2 ", Unit: "kg"},
	})
	require.NoError(t, err)
	assert.True(t, at(17).Time.Equal(l.ExpiresAt))
	require.NotNil(t, l.Measure)
	assert.Equal(t, "2", l.Measure.Value)
}

func TestCreate_MeasureMustBeNumeric(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateLabelRequest{
		ProductID: "p1", ResponsibleID: "f1",
		Measure: &dto.MeasureDTO{Value: "meio quilo,,", Unit: "kg"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateLabelRequest{
		ProductID: "p1", ResponsibleID: "f1",
		Measure: &dto.MeasureDTO{Value: "-1", Unit: "kg"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	l, err := uc.Create(ctx, dto.CreateLabelRequest{
		ProductID: "p1", ResponsibleID: "f1",
		Measure: &dto.MeasureDTO{Value: "0,5", Unit: "kg"},
	})
	require.NoError(t, err)
	require.NotNil(t, l.Measure)
	assert.Equal(t, "0.5", l.Measure.Value)

	bad := "abc"
	_, err = uc.Update(ctx, l.ID, dto.UpdateLabelRequest{Measure: &dto.MeasureDTO{Value: bad, Unit: "g"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	got, err := uc.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.5", got.Measure.Value, "una medida inválida no modifica la etiqueta")
}

func TestCreate_RequiresProductAndEmployee(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateLabelRequest{ProductID: "nao-existe", ResponsibleID: "f1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateLabelRequest{ProductID: "p1", ResponsibleID: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateLabelRequest{ProductID: "p1", ResponsibleID: "f1", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUpdate_NewHandledAtRecomputesExpiry(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	l, err := uc.Create(ctx, dto.CreateLabelRequest{ProductID: "p1", ResponsibleID: "f1", HandledAt: at(10)})
	require.NoError(t, err)

	out, err := uc.Update(ctx, l.ID, dto.UpdateLabelRequest{HandledAt: at(20)})
	require.NoError(t, err)
	assert.True(t, at(23).Time.Equal(out.ExpiresAt))

	out, err = uc.Update(ctx, l.ID, dto.UpdateLabelRequest{HandledAt: at(1), ExpiresAt: at(25)})
	require.NoError(t, err)
	assert.True(t, at(25).Time.Equal(out.ExpiresAt), "una validade explícita gana")

	zero := 0
	_, err = uc.Update(ctx, l.ID, dto.UpdateLabelRequest{Quantity: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Update(ctx, "nao-existe", dto.UpdateLabelRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGroupByExpiry_AndDeleteExpired(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	ref := time.Date(2024, 7, 15, 12, 0, 0, 0, time.Local)

	days := 1
	for _, handled := range []int{10, 13, 14, 15, 20} {
		_, err := uc.Create(ctx, dto.CreateLabelRequest{ProductID: "p1", ResponsibleID: "f1", HandledAt: at(handled), ShelfLifeDays: &days})
		require.NoError(t, err)
	}

	g, err := uc.GroupByExpiry(ctx, ref)
	require.NoError(t, err)
	assert.Len(t, g.Expired, 1)
	assert.Len(t, g.Yesterday, 1)
	assert.Len(t, g.Today, 1)
	assert.Len(t, g.Tomorrow, 1)
	assert.Len(t, g.Future, 1)

	n, err := uc.DeleteExpired(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rest, err := uc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, rest, 3)

	from := time.Date(2024, 7, 16, 0, 0, 0, 0, time.Local)
	upcoming, err := uc.ListByExpiry(ctx, &from, nil)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.True(t, upcoming[0].ExpiresAt.Before(upcoming[1].ExpiresAt))
}

func TestSearch_ByProductOrResponsible(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateLabelRequest{ProductID: "p1", ResponsibleID: "f1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateLabelRequest{ProductID: "p2", ResponsibleID: "f1"})
	require.NoError(t, err)

	res, err := uc.Search(ctx, "TOMATE")
	require.NoError(t, err)
	assert.Len(t, res, 1)

	res, err = uc.Search(ctx, "joao")
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestPrint_CopiesDefaultToLabelQuantity(t *testing.T) {
	uc, _, printer := setup(t)
	ctx := context.Background()
	l, err := uc.Create(ctx, dto.CreateLabelRequest{ProductID: "p1", ResponsibleID: "f1", Quantity: 3})
	require.NoError(t, err)

	out, err := uc.Print(ctx, l.ID, 0)
	require.NoError(t, err)
	assert.True(t, out.Printed)
	assert.Equal(t, 3, printer.copies)
	assert.Equal(t, l.ID, out.LabelID)

	_, err = uc.Print(ctx, l.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, printer.copies)

	printer.err = errors.New("offline")
	_, err = uc.Print(ctx, l.ID, 1)
	assert.Error(t, err)

	_, err = uc.Print(ctx, "nao-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 3, printer.calls)
}

func TestRenderPDF(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	l, err := uc.Create(ctx, dto.CreateLabelRequest{ProductID: "p1", ResponsibleID: "f1"})
	require.NoError(t, err)

	b, err := uc.RenderPDF(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-"+l.ID, string(b))
}
