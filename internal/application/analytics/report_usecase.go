// Package analytics contiene los reportes read-only sobre etiquetas, producción y contagens.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
	"github.com/nicklvs1307/stockfy/internal/domain/search"
)

// ReportExporter serializa un reporte a un formato descargable.
type ReportExporter interface {
	Export(report *dto.ReportResponse) ([]byte, error)
	ContentType() string
	Extension() string
}

// ReportUseCase agrega registros por producto y por funcionario. No escribe nada.
type ReportUseCase struct {
	labelRepo      repository.LabelRepository
	productionRepo repository.ProductionRepository
	countRepo      repository.CountRepository
	productRepo    repository.ProductRepository
	exporter       ReportExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	labelRepo repository.LabelRepository,
	productionRepo repository.ProductionRepository,
	countRepo repository.CountRepository,
	productRepo repository.ProductRepository,
	exporter ReportExporter,
) *ReportUseCase {
	return &ReportUseCase{
		labelRepo:      labelRepo,
		productionRepo: productionRepo,
		countRepo:      countRepo,
		productRepo:    productRepo,
		exporter:       exporter,
	}
}

// Build genera el reporte del tipo indicado (labels, production, counts).
func (uc *ReportUseCase) Build(ctx context.Context, kind string, f dto.ReportFilter) (*dto.ReportResponse, error) {
	switch kind {
	case dto.ReportLabels:
		return uc.LabelReport(ctx, f)
	case dto.ReportProduction:
		return uc.ProductionReport(ctx, f)
	case dto.ReportCounts:
		return uc.CountReport(ctx, f)
	default:
		return nil, fmt.Errorf("%w: tipo de reporte %q", domain.ErrInvalidInput, kind)
	}
}

// Export genera el reporte y lo serializa; devuelve bytes, content-type y nombre de archivo.
func (uc *ReportUseCase) Export(ctx context.Context, kind string, f dto.ReportFilter) ([]byte, string, string, error) {
	r, err := uc.Build(ctx, kind, f)
	if err != nil {
		return nil, "", "", err
	}
	b, err := uc.exporter.Export(r)
	if err != nil {
		return nil, "", "", fmt.Errorf("exportar reporte: %w", err)
	}
	name := fmt.Sprintf("relatorio-%s-%s.%s", kind, time.Now().Format("20060102-150405"), uc.exporter.Extension())
	return b, uc.exporter.ContentType(), name, nil
}

// LabelReport etiquetas por dataManipulacao. Cada etiqueta suma su cantidad (mínimo 1).
func (uc *ReportUseCase) LabelReport(ctx context.Context, f dto.ReportFilter) (*dto.ReportResponse, error) {
	list, err := uc.labelRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	products, employees := newTally(), newTally()
	total := 0
	for _, l := range list {
		if !inRange(l.HandledAt, f) || !byEmployee(l.Responsible.ID, f) {
			continue
		}
		total++
		qty := int64(l.Quantity)
		if qty <= 0 {
			qty = 1
		}
		products.add(l.Product.ID, l.Product.Name, qty, false)
		employees.add(l.Responsible.ID, l.Responsible.Name, qty, false)
	}
	return newReport(dto.ReportLabels, f, total, products, employees, nil), nil
}

// ProductionReport producción por fecha; suma cantidades del terminado y de cada insumo.
func (uc *ReportUseCase) ProductionReport(ctx context.Context, f dto.ReportFilter) (*dto.ReportResponse, error) {
	list, err := uc.productionRepo.ListByPeriod(ctx, f.From, f.To)
	if err != nil {
		return nil, err
	}
	names, err := uc.productNames(ctx)
	if err != nil {
		return nil, err
	}
	products, employees, inputs := newTally(), newTally(), newTally()
	total := 0
	for _, p := range list {
		responsibleID := ""
		if p.Responsible != nil {
			responsibleID = p.Responsible.ID
		}
		if !byEmployee(responsibleID, f) {
			continue
		}
		total++
		products.add(p.ProductID, names(p.ProductID), p.Quantity, false)
		if p.Responsible != nil {
			employees.add(p.Responsible.ID, p.Responsible.Name, p.Quantity, false)
		}
		for _, in := range p.Inputs {
			inputs.add(in.ProductID, names(in.ProductID), in.Quantity, false)
		}
	}
	return newReport(dto.ReportProduction, f, total, products, employees, inputs), nil
}

// CountReport contagens por timestamp. Por producto suma lo contado; por funcionario cuenta registros.
// Ajustes = contagens con ajustarEstoque.
func (uc *ReportUseCase) CountReport(ctx context.Context, f dto.ReportFilter) (*dto.ReportResponse, error) {
	list, err := uc.countRepo.ListByPeriod(ctx, f.From, f.To)
	if err != nil {
		return nil, err
	}
	products, employees := newTally(), newTally()
	total := 0
	for _, c := range list {
		responsibleID := ""
		if c.Responsible != nil {
			responsibleID = c.Responsible.ID
		}
		if !byEmployee(responsibleID, f) {
			continue
		}
		total++
		products.add(c.Product.ID, c.Product.Name, c.Quantity, c.AdjustStock)
		if c.Responsible != nil {
			employees.add(c.Responsible.ID, c.Responsible.Name, 1, c.AdjustStock)
		}
	}
	return newReport(dto.ReportCounts, f, total, products, employees, nil), nil
}

func (uc *ReportUseCase) productNames(ctx context.Context) (func(string) string, error) {
	list, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(list))
	for _, p := range list {
		m[p.ID] = p.Name
	}
	return func(id string) string {
		if n, ok := m[id]; ok {
			return n
		}
		return entity.UnknownProductName
	}, nil
}

func inRange(t time.Time, f dto.ReportFilter) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && t.After(*f.To) {
		return false
	}
	return true
}

func byEmployee(id string, f dto.ReportFilter) bool {
	return f.EmployeeID == "" || id == f.EmployeeID
}

// tally acumulador id -> línea, preservando el primer nombre visto.
type tally struct {
	lines map[string]*dto.ReportLine
}

func newTally() *tally {
	return &tally{lines: map[string]*dto.ReportLine{}}
}

func (t *tally) add(id, name string, qty int64, adjusted bool) {
	if id == "" {
		return
	}
	l, ok := t.lines[id]
	if !ok {
		l = &dto.ReportLine{ID: id, Name: name}
		t.lines[id] = l
	}
	l.Quantity += qty
	if adjusted {
		l.Adjustments++
	}
}

// sorted líneas por nombre (sin acentos) y luego id.
func (t *tally) sorted() []dto.ReportLine {
	if t == nil {
		return nil
	}
	out := make([]dto.ReportLine, 0, len(t.lines))
	for _, l := range t.lines {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := search.Fold(out[i].Name), search.Fold(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func newReport(kind string, f dto.ReportFilter, total int, products, employees, inputs *tally) *dto.ReportResponse {
	return &dto.ReportResponse{
		Kind:           kind,
		From:           f.From,
		To:             f.To,
		EmployeeID:     f.EmployeeID,
		Total:          total,
		TotalProducts:  len(products.lines),
		TotalEmployees: len(employees.lines),
		Products:       products.sorted(),
		Employees:      employees.sorted(),
		Inputs:         inputs.sorted(),
	}
}
