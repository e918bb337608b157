package labeling

import (
	"context"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// PrintOutcome resultado de enviar una etiqueta a la impresora.
// Simulated indica que no hubo dispositivo (sin dirección configurada o error de red).
type PrintOutcome struct {
	Printed   bool
	Simulated bool
	Copies    int
	Message   string
}

// LabelPrinter puerto hacia la impresora de etiquetas (ZPL sobre TCP).
type LabelPrinter interface {
	Print(ctx context.Context, label *entity.Label, copies int) (PrintOutcome, error)
}

// LabelPDFGenerator puerto para la versión PDF (con código QR) de una etiqueta.
type LabelPDFGenerator interface {
	GenerateLabelPDF(ctx context.Context, label *entity.Label) ([]byte, error)
}
