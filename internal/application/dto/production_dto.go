package dto

import "time"

// ProductionInputDTO insumo consumido. ProductName solo se rellena en respuestas.
type ProductionInputDTO struct {
	ProductID   string `json:"produtoId"`
	ProductName string `json:"produtoNome,omitempty"`
	Quantity    int64  `json:"quantidade"`
}

// CreateProductionRequest body para POST /api/production.
type CreateProductionRequest struct {
	ProductID     string               `json:"produtoId"`
	Quantity      int64                `json:"quantidade"`
	Date          *Timestamp           `json:"data,omitempty"`
	ResponsibleID string               `json:"responsavelId"`
	Notes         string               `json:"observacao"`
	Inputs        []ProductionInputDTO `json:"insumos"`
}

// UpdateProductionRequest cambios parciales. Inputs no nil reemplaza la lista completa.
type UpdateProductionRequest struct {
	ProductID     *string               `json:"produtoId"`
	Quantity      *int64                `json:"quantidade"`
	Date          *Timestamp            `json:"data"`
	ResponsibleID *string               `json:"responsavelId"`
	Notes         *string               `json:"observacao"`
	Inputs        *[]ProductionInputDTO `json:"insumos"`
}

// ProductionResponse salida de una producción.
type ProductionResponse struct {
	ID          string               `json:"id"`
	ProductID   string               `json:"produtoId"`
	ProductName string               `json:"produtoNome"`
	Quantity    int64                `json:"quantidade"`
	Date        time.Time            `json:"data"`
	Responsible *EmployeeRefDTO      `json:"responsavel,omitempty"`
	Notes       string               `json:"observacao,omitempty"`
	Inputs      []ProductionInputDTO `json:"insumos"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
