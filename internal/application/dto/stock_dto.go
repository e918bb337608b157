package dto

import "time"

// BalanceResponse saldo de un producto en el ledger.
type BalanceResponse struct {
	ProductID   string    `json:"produtoId"`
	ProductName string    `json:"produtoNome"`
	Quantity    int64     `json:"saldo"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// ApplyDeltaRequest delta directo sobre el ledger (entrada suma, saida resta).
type ApplyDeltaRequest struct {
	ProductID string `json:"produtoId"`
	Type      string `json:"tipo"`
	Quantity  int64  `json:"quantidade"`
}

// CreateMovementRequest body para POST /api/stock/movements.
type CreateMovementRequest struct {
	ProductID string     `json:"produtoId"`
	Type      string     `json:"tipo"`
	Quantity  int64      `json:"quantidade"`
	Date      *Timestamp `json:"data,omitempty"`
	Notes     string     `json:"observacao"`
}

// UpdateMovementRequest cambios parciales de un movimiento.
type UpdateMovementRequest struct {
	ProductID *string    `json:"produtoId"`
	Type      *string    `json:"tipo"`
	Quantity  *int64     `json:"quantidade"`
	Date      *Timestamp `json:"data"`
	Notes     *string    `json:"observacao"`
}

// MovementResponse salida de un movimiento con el nombre del producto resuelto.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"produtoId"`
	ProductName string    `json:"produtoNome"`
	Type        string    `json:"tipo"`
	Quantity    int64     `json:"quantidade"`
	Date        time.Time `json:"data"`
	Notes       string    `json:"observacao,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateLossRequest body para POST /api/losses.
type CreateLossRequest struct {
	ProductID string     `json:"produtoId"`
	Quantity  int64      `json:"quantidade"`
	Date      *Timestamp `json:"data,omitempty"`
	Reason    string     `json:"motivo"`
	Notes     string     `json:"observacao"`
}

// UpdateLossRequest cambios parciales de una pérdida.
type UpdateLossRequest struct {
	ProductID *string    `json:"produtoId"`
	Quantity  *int64     `json:"quantidade"`
	Date      *Timestamp `json:"data"`
	Reason    *string    `json:"motivo"`
	Notes     *string    `json:"observacao"`
}

// LossResponse salida de una pérdida.
type LossResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"produtoId"`
	ProductName string    `json:"produtoNome"`
	Quantity    int64     `json:"quantidade"`
	Date        time.Time `json:"data"`
	Reason      string    `json:"motivo,omitempty"`
	Notes       string    `json:"observacao,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
