// Package inventory contiene las reglas puras del ledger de saldos (servicio de dominio).
// Todo cambio de saldo es un delta; deshacer = aplicar el delta de tipo inverso.
package inventory

import (
	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// Delta cambio de saldo sobre un producto. Quantity siempre positiva; el signo lo da Type.
type Delta struct {
	ProductID string
	Type      string // entrada, saida
	Quantity  int64
}

// Validate rechaza producto vacío, tipo desconocido o cantidad no positiva.
func (d Delta) Validate() error {
	if d.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if d.Type != entity.MovementTypeIn && d.Type != entity.MovementTypeOut {
		return domain.ErrInvalidInput
	}
	if d.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// Signed devuelve +Quantity para entrada y -Quantity para saida.
func (d Delta) Signed() int64 {
	if d.Type == entity.MovementTypeOut {
		return -d.Quantity
	}
	return d.Quantity
}

// Inverse devuelve el delta que deshace a d.
func (d Delta) Inverse() Delta {
	return Delta{ProductID: d.ProductID, Type: InverseType(d.Type), Quantity: d.Quantity}
}

// InverseType entrada <-> saida.
func InverseType(t string) string {
	if t == entity.MovementTypeIn {
		return entity.MovementTypeOut
	}
	return entity.MovementTypeIn
}

// MovementDelta delta de un movimiento manual.
func MovementDelta(m *entity.StockMovement) Delta {
	return Delta{ProductID: m.ProductID, Type: m.Type, Quantity: m.Quantity}
}

// LossDelta una pérdida siempre es saida.
func LossDelta(l *entity.Loss) Delta {
	return Delta{ProductID: l.ProductID, Type: entity.MovementTypeOut, Quantity: l.Quantity}
}

// ProductionLegs entrada del producto terminado seguida de una saida por insumo, en orden.
func ProductionLegs(p *entity.Production) []Delta {
	legs := make([]Delta, 0, len(p.Inputs)+1)
	legs = append(legs, Delta{ProductID: p.ProductID, Type: entity.MovementTypeIn, Quantity: p.Quantity})
	for _, in := range p.Inputs {
		legs = append(legs, Delta{ProductID: in.ProductID, Type: entity.MovementTypeOut, Quantity: in.Quantity})
	}
	return legs
}

// ReverseAll invierte la lista completa de piernas (nunca un prefijo).
func ReverseAll(legs []Delta) []Delta {
	out := make([]Delta, len(legs))
	for i, d := range legs {
		out[i] = d.Inverse()
	}
	return out
}

// CountDelta convierte la diferencia de una contagem en delta.
// ok=false cuando la diferencia es cero y no hay nada que ajustar.
func CountDelta(productID string, difference int64) (Delta, bool) {
	switch {
	case difference > 0:
		return Delta{ProductID: productID, Type: entity.MovementTypeIn, Quantity: difference}, true
	case difference < 0:
		return Delta{ProductID: productID, Type: entity.MovementTypeOut, Quantity: -difference}, true
	default:
		return Delta{}, false
	}
}

// Net suma los deltas por producto. Útil para verificar deriva cero.
func Net(deltas ...Delta) map[string]int64 {
	net := make(map[string]int64, len(deltas))
	for _, d := range deltas {
		net[d.ProductID] += d.Signed()
	}
	return net
}
