package entity

import "time"

// StockBalance saldo corriente de un producto (entrada del ledger).
// Se crea en cero en la primera referencia y nunca se elimina; puede quedar negativo.
type StockBalance struct {
	ProductID string
	Quantity  int64
	UpdatedAt time.Time
}
