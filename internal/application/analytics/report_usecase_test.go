package analytics_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/stockfy/internal/application/analytics"
	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/memory"
)

type csvExporter struct{}

func (csvExporter) Export(r *dto.ReportResponse) ([]byte, error) {
	var b strings.Builder
	for _, l := range r.Products {
		b.WriteString(l.Name + "\n")
	}
	return []byte(b.String()), nil
}
func (csvExporter) ContentType() string { return "text/csv" }
func (csvExporter) Extension() string   { return "csv" }

var (
	ana   = entity.EmployeeRef{ID: "f1", Name: "Ana"}
	bruno = entity.EmployeeRef{ID: "f2", Name: "Bruno"}
)

func day(d int) time.Time { return time.Date(2024, 8, d, 10, 0, 0, 0, time.UTC) }

func seed(t *testing.T) *analytics.ReportUseCase {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Óleo"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p2", Name: "Arroz"}))

	labels := []*entity.Label{
		{ID: "l1", Product: entity.LabelProduct{ID: "p1", Name: "Óleo"}, Responsible: ana, HandledAt: day(1), Quantity: 2},
		{ID: "l2", Product: entity.LabelProduct{ID: "p1", Name: "Óleo"}, Responsible: bruno, HandledAt: day(2), Quantity: 0},
		{ID: "l3", Product: entity.LabelProduct{ID: "p2", Name: "Arroz"}, Responsible: ana, HandledAt: day(9), Quantity: 1},
	}
	for _, l := range labels {
		require.NoError(t, s.Labels().Create(ctx, l))
	}

	productions := []*entity.Production{
		{ID: "pr1", ProductID: "p1", Quantity: 4, Date: day(1), Responsible: &ana,
			Inputs: []entity.ProductionInput{{ProductID: "p2", Quantity: 2}, {ProductID: "x", Quantity: 1}}},
		{ID: "pr2", ProductID: "p1", Quantity: 1, Date: day(3)},
	}
	for _, p := range productions {
		require.NoError(t, s.Production().Create(ctx, p))
	}

	counts := []*entity.StockCount{
		{ID: "c1", Product: entity.ProductRef{ID: "p2", Name: "Arroz"}, Responsible: &bruno, Quantity: 5, AdjustStock: true, Timestamp: day(2)},
		{ID: "c2", Product: entity.ProductRef{ID: "p2", Name: "Arroz"}, Responsible: &bruno, Quantity: 3, AdjustStock: false, Timestamp: day(4)},
		{ID: "c3", Product: entity.ProductRef{ID: "p1", Name: "Óleo"}, Quantity: 7, AdjustStock: true, Timestamp: day(4)},
	}
	for _, c := range counts {
		require.NoError(t, s.Counts().Create(ctx, c))
	}

	return analytics.NewReportUseCase(s.Labels(), s.Production(), s.Counts(), s.Products(), csvExporter{})
}

func TestLabelReport_SumsQuantitiesWithMinimumOne(t *testing.T) {
	uc := seed(t)
	from, to := day(1), day(5)

	r, err := uc.Build(context.Background(), dto.ReportLabels, dto.ReportFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Total)
	require.Len(t, r.Products, 1)
	assert.Equal(t, int64(3), r.Products[0].Quantity)
	require.Len(t, r.Employees, 2)
	assert.Equal(t, "Ana", r.Employees[0].Name)
	assert.Equal(t, int64(2), r.Employees[0].Quantity)
	assert.Equal(t, int64(1), r.Employees[1].Quantity)
}

func TestProductionReport_TalliesInputs(t *testing.T) {
	uc := seed(t)

	r, err := uc.ProductionReport(context.Background(), dto.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Total)
	require.Len(t, r.Products, 1)
	assert.Equal(t, "Óleo", r.Products[0].Name)
	assert.Equal(t, int64(5), r.Products[0].Quantity)
	require.Len(t, r.Employees, 1, "producciones sin responsable no suman por funcionario")
	assert.Equal(t, int64(4), r.Employees[0].Quantity)

	require.Len(t, r.Inputs, 2)
	assert.Equal(t, "Arroz", r.Inputs[0].Name)
	assert.Equal(t, entity.UnknownProductName, r.Inputs[1].Name)

	r, err = uc.ProductionReport(context.Background(), dto.ReportFilter{EmployeeID: "f1"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Total)
}

func TestCountReport_CountsRecordsPerEmployee(t *testing.T) {
	uc := seed(t)

	r, err := uc.Build(context.Background(), dto.ReportCounts, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 2, r.TotalProducts)
	require.Len(t, r.Products, 2)
	assert.Equal(t, "Arroz", r.Products[0].Name, "orden sin acentos: Arroz antes de Óleo")
	assert.Equal(t, int64(8), r.Products[0].Quantity)
	assert.Equal(t, 1, r.Products[0].Adjustments)

	require.Len(t, r.Employees, 1)
	assert.Equal(t, int64(2), r.Employees[0].Quantity)
	assert.Equal(t, 1, r.Employees[0].Adjustments)
	assert.Nil(t, r.Inputs)
}

func TestBuild_UnknownKind(t *testing.T) {
	uc := seed(t)
	_, err := uc.Build(context.Background(), "vendas", dto.ReportFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExport_NamesFileByKind(t *testing.T) {
	uc := seed(t)
	b, ct, name, err := uc.Export(context.Background(), dto.ReportCounts, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", ct)
	assert.True(t, strings.HasPrefix(name, "relatorio-counts-"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
	assert.Equal(t, "Arroz\nÓleo\n", string(b))
}
