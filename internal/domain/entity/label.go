package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LabelProduct copia del producto al momento de emitir la etiqueta.
type LabelProduct struct {
	ID            string
	Name          string
	ShelfLifeDays int
	Storage       string // RESFRIADO, CONGELADO...
}

// Measure medida opcional impresa en la etiqueta (ej. 500 g, 0,5 kg).
type Measure struct {
	Value decimal.Decimal
	Unit  string
}

// Label returns la medida tal como se imprime ("0.5kg"); vacío si no hay medida o es cero.
func (m *Measure) Label() string {
	if m == nil || m.Value.IsZero() {
		return ""
	}
	return m.Value.String() + m.Unit
}

var errMeasureValue = errors.New("medida no numérica o negativa")

// ParseMeasureValue acepta punto o una única coma decimal ("0,5"). Negativos son inválidos.
func ParseMeasureValue(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, errMeasureValue
	}
	return d, nil
}

// Label etiqueta de validade impresa.
type Label struct {
	ID             string
	Product        LabelProduct
	Responsible    EmployeeRef
	HandledAt      time.Time // dataManipulacao
	ExpiresAt      time.Time // dataValidade
	Quantity       int
	Measure        *Measure
	OriginalExpiry string // validade original del fabricante
	SIF            string
	Batch          string // lote
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
