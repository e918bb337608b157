package entity

import "time"

// Category representa un grupo de productos (grupo de impresión en la pantalla de etiquetas).
type Category struct {
	ID          string
	Name        string
	Description string
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
