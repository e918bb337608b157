package entity

import "time"

// Estados de registros de catálogo y funcionarios.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// UnknownProductName se muestra cuando una referencia a producto no existe en el catálogo.
const UnknownProductName = "Produto não encontrado"

// Product representa un producto del catálogo (insumo o producto terminado).
// El saldo no vive aquí: se maneja en StockBalance vía movimientos.
type Product struct {
	ID                   string
	Name                 string
	Code                 string // código interno opcional, único si se informa
	CategoryID           string
	DefaultShelfLifeDays int    // validadePadrao: días de validez tras la manipulación
	DefaultStorage       string // statusPadrao: RESFRIADO, CONGELADO, AMBIENTE...
	Status               string // active, inactive
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ProductRef copia embebida (id + nombre) que guardan contagens y etiquetas.
type ProductRef struct {
	ID   string
	Name string
}
