package dto

import "time"

// MeasureDTO medida impresa (ej. 500 g).
type MeasureDTO struct {
	Value string `json:"valor"`
	Unit  string `json:"unidade"`
}

// CreateLabelRequest body para POST /api/labels.
// ShelfLifeDays nil usa la validez por defecto del producto.
type CreateLabelRequest struct {
	ProductID      string      `json:"produtoId"`
	ResponsibleID  string      `json:"responsavelId"`
	HandledAt      *Timestamp  `json:"dataManipulacao,omitempty"`
	ExpiresAt      *Timestamp  `json:"dataValidade,omitempty"`
	ShelfLifeDays  *int        `json:"validade,omitempty"`
	Quantity       int         `json:"quantidade"`
	Measure        *MeasureDTO `json:"medida,omitempty"`
	OriginalExpiry string      `json:"validadeOriginal"`
	SIF            string      `json:"sif"`
	Batch          string      `json:"lote"`
	Status         string      `json:"status"`
}

// UpdateLabelRequest cambios parciales de una etiqueta.
type UpdateLabelRequest struct {
	HandledAt      *Timestamp  `json:"dataManipulacao"`
	ExpiresAt      *Timestamp  `json:"dataValidade"`
	Quantity       *int        `json:"quantidade"`
	Measure        *MeasureDTO `json:"medida"`
	OriginalExpiry *string     `json:"validadeOriginal"`
	SIF            *string     `json:"sif"`
	Batch          *string     `json:"lote"`
	Status         *string     `json:"status"`
}

// LabelProductDTO copia del producto en la etiqueta.
type LabelProductDTO struct {
	ID            string `json:"id"`
	Name          string `json:"nome"`
	ShelfLifeDays int    `json:"validade"`
	Storage       string `json:"armazenamento,omitempty"`
}

// LabelResponse salida de una etiqueta.
type LabelResponse struct {
	ID             string          `json:"id"`
	Product        LabelProductDTO `json:"produto"`
	Responsible    EmployeeRefDTO  `json:"responsavel"`
	HandledAt      time.Time       `json:"dataManipulacao"`
	ExpiresAt      time.Time       `json:"dataValidade"`
	Quantity       int             `json:"quantidade"`
	Measure        *MeasureDTO     `json:"medida,omitempty"`
	OriginalExpiry string          `json:"validadeOriginal,omitempty"`
	SIF            string          `json:"sif,omitempty"`
	Batch          string          `json:"lote,omitempty"`
	Status         string          `json:"status,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LabelGroupsResponse etiquetas agrupadas por día de vencimiento.
type LabelGroupsResponse struct {
	Expired   []LabelResponse `json:"vencidas"`
	Yesterday []LabelResponse `json:"ontem"`
	Today     []LabelResponse `json:"hoje"`
	Tomorrow  []LabelResponse `json:"amanha"`
	Future    []LabelResponse `json:"futuras"`
}

// PrintLabelRequest body para POST /api/labels/:id/print. Copies 0 usa la cantidad de la etiqueta.
type PrintLabelRequest struct {
	Copies int `json:"copias"`
}

// PrintResponse resultado de la impresión (real o simulada).
type PrintResponse struct {
	LabelID   string `json:"etiquetaId"`
	Printed   bool   `json:"printed"`
	Simulated bool   `json:"simulated"`
	Copies    int    `json:"copies"`
	Message   string `json:"message,omitempty"`
}

// DeleteExpiredResponse etiquetas eliminadas (vencidas y de ayer).
type DeleteExpiredResponse struct {
	Deleted int `json:"excluidas"`
}
