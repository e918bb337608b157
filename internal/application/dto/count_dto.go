package dto

import "time"

// CreateCountRequest contagem de un producto. El saldo anterior lo toma el servidor del ledger.
type CreateCountRequest struct {
	ProductID     string     `json:"produtoId"`
	Quantity      int64      `json:"quantidade"`
	ResponsibleID string     `json:"responsavelId"`
	AdjustStock   bool       `json:"ajustarEstoque"`
	Notes         string     `json:"observacao"`
	Timestamp     *Timestamp `json:"timestamp,omitempty"`
}

// CountBatchItem ítem del modo lista. AdjustStock nil = true.
type CountBatchItem struct {
	ProductID   string `json:"produtoId"`
	Quantity    int64  `json:"quantidade"`
	AdjustStock *bool  `json:"ajustarEstoque,omitempty"`
	Notes       string `json:"observacao"`
}

// CreateCountBatchRequest varias contagens en una sola transacción.
type CreateCountBatchRequest struct {
	ResponsibleID string           `json:"responsavelId"`
	Items         []CountBatchItem `json:"itens"`
}

// CountResponse salida de una contagem.
type CountResponse struct {
	ID              string          `json:"id"`
	Product         ProductRefDTO   `json:"produto"`
	Responsible     *EmployeeRefDTO `json:"responsavel,omitempty"`
	Quantity        int64           `json:"quantidade"`
	PreviousBalance int64           `json:"saldoAnterior"`
	Difference      int64           `json:"diferenca"`
	AdjustStock     bool            `json:"ajustarEstoque"`
	Notes           string          `json:"observacao,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
}

// ProductRefDTO referencia embebida a un producto.
type ProductRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}
