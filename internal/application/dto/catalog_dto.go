package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name                 string `json:"nome" validate:"required"`
	Code                 string `json:"codigo"`
	CategoryID           string `json:"categoriaId"`
	DefaultShelfLifeDays int    `json:"validadePadrao"`
	DefaultStorage       string `json:"statusPadrao"`
	Status               string `json:"status"`
}

// UpdateProductRequest entrada para actualizar un producto (campos nil no se tocan).
type UpdateProductRequest struct {
	Name                 *string `json:"nome"`
	Code                 *string `json:"codigo"`
	CategoryID           *string `json:"categoriaId"`
	DefaultShelfLifeDays *int    `json:"validadePadrao"`
	DefaultStorage       *string `json:"statusPadrao"`
	Status               *string `json:"status"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"nome"`
	Code                 string    `json:"codigo,omitempty"`
	CategoryID           string    `json:"categoriaId,omitempty"`
	CategoryName         string    `json:"categoriaNome,omitempty"`
	DefaultShelfLifeDays int       `json:"validadePadrao"`
	DefaultStorage       string    `json:"statusPadrao,omitempty"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"nome" validate:"required"`
	Description string `json:"descricao"`
	Status      string `json:"status"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"nome"`
	Description *string `json:"descricao"`
	Status      *string `json:"status"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nome"`
	Description string    `json:"descricao,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
