// Package xlsx exporta reportes a planillas Excel.
package xlsx

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nicklvs1307/stockfy/internal/application/analytics"
	"github.com/nicklvs1307/stockfy/internal/application/dto"
)

var _ analytics.ReportExporter = (*ReportExporter)(nil)

// Hojas del libro exportado.
const (
	SheetSummary   = "Resumo"
	SheetProducts  = "Produtos"
	SheetEmployees = "Funcionarios"
	SheetInputs    = "Insumos"
)

// ReportExporter un libro por reporte: resumen, por producto, por funcionario y (producción) insumos.
type ReportExporter struct{}

// NewReportExporter construye el exportador.
func NewReportExporter() *ReportExporter { return &ReportExporter{} }

func (ReportExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (ReportExporter) Extension() string { return "xlsx" }

// Export serializa el reporte.
func (e ReportExporter) Export(r *dto.ReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	summary := [][]any{
		{"Relatório", r.Kind},
		{"Início", formatBound(r.From)},
		{"Fim", formatBound(r.To)},
		{"Funcionário", r.EmployeeID},
		{"Registros", r.Total},
		{"Produtos", r.TotalProducts},
		{"Funcionários", r.TotalEmployees},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return nil, err
	}

	sheets := []struct {
		name  string
		lines []dto.ReportLine
	}{
		{SheetProducts, r.Products},
		{SheetEmployees, r.Employees},
	}
	if r.Kind == dto.ReportProduction {
		sheets = append(sheets, struct {
			name  string
			lines []dto.ReportLine
		}{SheetInputs, r.Inputs})
	}
	withAdjustments := r.Kind == dto.ReportCounts
	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, err
		}
		if err := writeLines(f, s.name, s.lines, withAdjustments); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(s.name, "A1", "D1", bold); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(s.name, "B", "B", 36); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeLines(f *excelize.File, sheet string, lines []dto.ReportLine, withAdjustments bool) error {
	header := []any{"ID", "Nome", "Quantidade"}
	if withAdjustments {
		header = append(header, "Ajustes")
	}
	rows := [][]any{header}
	for _, l := range lines {
		r := []any{l.ID, l.Name, l.Quantity}
		if withAdjustments {
			r = append(r, l.Adjustments)
		}
		rows = append(rows, r)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("02/01/2006 15:04")
}
