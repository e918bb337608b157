package entity

import "time"

// ProductionInput insumo consumido por una producción.
type ProductionInput struct {
	ProductID string
	Quantity  int64
}

// Production transforma insumos en un producto terminado.
// Genera una entrada del producto terminado y una salida por cada insumo (transacción multi-pierna).
type Production struct {
	ID          string
	ProductID   string // producto terminado
	Quantity    int64
	Date        time.Time
	Responsible *EmployeeRef
	Notes       string
	Inputs      []ProductionInput // orden preservado
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
