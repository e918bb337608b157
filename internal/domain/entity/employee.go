package entity

import "time"

// Employee funcionario responsable por etiquetas, producción y contagens.
type Employee struct {
	ID        string
	Name      string
	Role      string // cargo
	Email     string
	Phone     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeRef copia embebida del responsable (id + nombre) al momento del registro.
type EmployeeRef struct {
	ID   string
	Name string
}
