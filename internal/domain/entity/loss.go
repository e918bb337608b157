package entity

import "time"

// Loss registra cantidad descartada (vencimiento, avería, etc.). Siempre es una salida.
type Loss struct {
	ID        string
	ProductID string
	Quantity  int64
	Date      time.Time
	Reason    string // motivo
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
