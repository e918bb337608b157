package dto

import "time"

// CreateEmployeeRequest entrada para crear un funcionario.
type CreateEmployeeRequest struct {
	Name   string `json:"nome" validate:"required"`
	Role   string `json:"cargo"`
	Email  string `json:"email"`
	Phone  string `json:"telefone"`
	Status string `json:"status"`
}

// UpdateEmployeeRequest entrada para actualizar un funcionario.
type UpdateEmployeeRequest struct {
	Name   *string `json:"nome"`
	Role   *string `json:"cargo"`
	Email  *string `json:"email"`
	Phone  *string `json:"telefone"`
	Status *string `json:"status"`
}

// EmployeeResponse salida de un funcionario.
type EmployeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Role      string    `json:"cargo,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"telefone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
