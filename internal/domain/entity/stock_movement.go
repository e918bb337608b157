package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn  = "entrada"
	MovementTypeOut = "saida"
)

// StockMovement representa una entrada o salida manual de stock.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // entrada, saida
	Quantity  int64  // siempre positivo; el signo lo da Type
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
