package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/xlsx"
)

func TestExport_ProductionReport(t *testing.T) {
	r := &dto.ReportResponse{
		Kind:           dto.ReportProduction,
		Total:          2,
		TotalProducts:  1,
		TotalEmployees: 1,
		Products:       []dto.ReportLine{{ID: "p1", Name: "Molho", Quantity: 5}},
		Employees:      []dto.ReportLine{{ID: "f1", Name: "Ana", Quantity: 4}},
		Inputs:         []dto.ReportLine{{ID: "p2", Name: "Tomate", Quantity: 9}},
	}

	b, err := xlsx.NewReportExporter().Export(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsx.SheetSummary, xlsx.SheetProducts, xlsx.SheetEmployees, xlsx.SheetInputs}, f.GetSheetList())

	rows, err := f.GetRows(xlsx.SheetProducts)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "Nome", "Quantidade"}, rows[0])
	assert.Equal(t, []string{"p1", "Molho", "5"}, rows[1])

	kind, err := f.GetCellValue(xlsx.SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, dto.ReportProduction, kind)

	inputs, err := f.GetRows(xlsx.SheetInputs)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "Tomate", "9"}, inputs[1])
}

func TestExport_CountReportHasAdjustmentsColumn(t *testing.T) {
	r := &dto.ReportResponse{
		Kind:     dto.ReportCounts,
		Products: []dto.ReportLine{{ID: "p1", Name: "Arroz", Quantity: 8, Adjustments: 1}},
	}
	b, err := xlsx.NewReportExporter().Export(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), xlsx.SheetInputs)
	rows, err := f.GetRows(xlsx.SheetProducts)
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Nome", "Quantidade", "Ajustes"}, rows[0])
	assert.Equal(t, []string{"p1", "Arroz", "8", "1"}, rows[1])

	emp, err := f.GetRows(xlsx.SheetEmployees)
	require.NoError(t, err)
	assert.Len(t, emp, 1, "solo encabezado")
}
