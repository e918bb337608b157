// Package pdf genera la versión imprimible en PDF de una etiqueta de validade, con código QR.
//
// Layout (100 x 75 mm):
//
//	┌──────────────────────────────────────┐
//	│  PRODUCTO                 │          │
//	│  CONSERVACIÓN             │    QR    │
//	│  ─────────────────────────│          │
//	│  MANIPULAÇÃO: dd/mm/aaaa  │          │
//	│  VALIDADE:    dd/mm/aaaa  │          │
//	│  ────────────────────────────────────│
//	│  RESP. / medida / lote               │
//	│  pie (CNPJ, dirección)               │
//	└──────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/nicklvs1307/stockfy/internal/application/labeling"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

var _ labeling.LabelPDFGenerator = (*LabelPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const pdfDate = "02/01/2006 15:04"

// LabelPDFGenerator implementa labeling.LabelPDFGenerator usando Maroto v2.
type LabelPDFGenerator struct {
	companyLine string
	addressLine string
}

// NewLabelPDFGenerator construye el generador con las líneas fijas del pie.
func NewLabelPDFGenerator(companyLine, addressLine string) *LabelPDFGenerator {
	return &LabelPDFGenerator{companyLine: companyLine, addressLine: addressLine}
}

// qrPayload lo que codifica el QR: suficiente para identificar la etiqueta sin consultar el sistema.
type qrPayload struct {
	ID          string `json:"id"`
	Product     string `json:"produto"`
	HandledAt   string `json:"manipulacao"`
	ExpiresAt   string `json:"validade"`
	Responsible string `json:"responsavel"`
}

// QRData contenido JSON del código QR de la etiqueta.
func QRData(l *entity.Label) string {
	b, err := json.Marshal(qrPayload{
		ID:          l.ID,
		Product:     l.Product.Name,
		HandledAt:   l.HandledAt.Format(time.RFC3339),
		ExpiresAt:   l.ExpiresAt.Format(time.RFC3339),
		Responsible: l.Responsible.Name,
	})
	if err != nil {
		return l.ID
	}
	return string(b)
}

// GenerateLabelPDF genera el PDF y devuelve sus bytes.
func (g *LabelPDFGenerator) GenerateLabelPDF(_ context.Context, l *entity.Label) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(100, 75).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Etiqueta "+l.Product.Name, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))
	for _, r := range g.footerRows(l) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow producto, conservación y fechas (izq) + QR (der).
func headerRow(l *entity.Label) core.Row {
	storage := l.Product.Storage
	if storage == "" {
		storage = labeling.DefaultStorage
	}
	return row.New(38).Add(
		col.New(8).Add(
			text.New(strings.ToUpper(l.Product.Name), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.ToUpper(storage), props.Text{Style: fontstyle.Bold, Size: 9, Top: 9}),
			text.New("MANIPULAÇÃO: "+l.HandledAt.Local().Format(pdfDate), props.Text{Size: 8, Top: 18}),
			text.New("VALIDADE: "+l.ExpiresAt.Local().Format(pdfDate), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 25,
			}),
		),
		col.New(4).Add(code.NewQr(QRData(l), props.Rect{Percent: 95, Center: true})),
	)
}

func (g *LabelPDFGenerator) footerRows(l *entity.Label) []core.Row {
	lines := []string{"RESP.: " + l.Responsible.Name}
	var extra []string
	if m := l.Measure.Label(); m != "" {
		extra = append(extra, m)
	}
	if l.SIF != "" {
		extra = append(extra, "SIF "+l.SIF)
	}
	if l.Batch != "" {
		extra = append(extra, "LOTE "+l.Batch)
	}
	if l.OriginalExpiry != "" {
		extra = append(extra, "VAL. ORIG. "+l.OriginalExpiry)
	}
	if len(extra) > 0 {
		lines = append(lines, strings.Join(extra, " | "))
	}
	for _, s := range []string{g.companyLine, g.addressLine} {
		if s != "" {
			lines = append(lines, s)
		}
	}

	rows := make([]core.Row, 0, len(lines))
	for i, s := range lines {
		p := props.Text{Size: 7, Top: 1}
		if i > 0 {
			p.Color = colorGray
			p.Size = 6.5
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(s, p))))
	}
	return rows
}
