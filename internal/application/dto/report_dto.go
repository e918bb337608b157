package dto

import "time"

// Tipos de reporte.
const (
	ReportLabels     = "labels"
	ReportProduction = "production"
	ReportCounts     = "counts"
)

// ReportFilter rango inclusivo (nil = sin límite) y funcionario opcional.
type ReportFilter struct {
	From       *time.Time
	To         *time.Time
	EmployeeID string
}

// ReportLine total agregado por producto, funcionario o insumo.
type ReportLine struct {
	ID          string `json:"id"`
	Name        string `json:"nome"`
	Quantity    int64  `json:"quantidade"`
	Adjustments int    `json:"ajustes,omitempty"`
}

// ReportResponse proyección read-only sobre etiquetas, producción o contagens.
type ReportResponse struct {
	Kind           string       `json:"tipo"`
	From           *time.Time   `json:"dataInicio,omitempty"`
	To             *time.Time   `json:"dataFim,omitempty"`
	EmployeeID     string       `json:"funcionarioId,omitempty"`
	Total          int          `json:"total"`
	TotalProducts  int          `json:"totalProdutos"`
	TotalEmployees int          `json:"totalFuncionarios"`
	Products       []ReportLine `json:"produtos"`
	Employees      []ReportLine `json:"funcionarios"`
	Inputs         []ReportLine `json:"insumos,omitempty"`
}
