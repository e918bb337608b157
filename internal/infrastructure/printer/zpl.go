// Package printer envía etiquetas a impresoras Zebra (ZPL sobre TCP crudo, puerto 9100).
package printer

import (
	"fmt"
	"strings"
	"time"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// Footer líneas fijas del pie de la etiqueta (razón social/CNPJ y dirección).
type Footer struct {
	CompanyLine string
	AddressLine string
}

const zplDate = "02/01/2006 - 15:04"

// BuildZPL arma el documento ZPL de una etiqueta. copies se imprime con ^PQ.
func BuildZPL(l *entity.Label, copies int, footer Footer) string {
	if copies <= 0 {
		copies = 1
	}
	storage := l.Product.Storage
	if storage == "" {
		storage = "RESFRIADO"
	}

	var b strings.Builder
	b.WriteString("^XA\n^CI28\n")
	field(&b, 50, 50, 30, strings.ToUpper(l.Product.Name))
	field(&b, 50, 90, 20, strings.ToUpper(storage))
	b.WriteString("^FO50,120^GB700,1,3^FS\n")
	field(&b, 50, 140, 20, "MANIPULAÇÃO:")
	field(&b, 250, 140, 20, formatDate(l.HandledAt))
	field(&b, 50, 170, 20, "VALIDADE:")
	field(&b, 250, 170, 20, formatDate(l.ExpiresAt))
	b.WriteString("^FO50,200^GB700,1,3^FS\n")

	y := 220
	field(&b, 50, y, 15, "RESP.: "+l.Responsible.Name)
	if extra := details(l); extra != "" {
		y += 25
		field(&b, 50, y, 15, extra)
	}
	for _, line := range []string{footer.CompanyLine, footer.AddressLine} {
		if line == "" {
			continue
		}
		y += 25
		field(&b, 50, y, 15, line)
	}
	y += 25
	field(&b, 50, y, 15, "#"+shortID(l.ID))
	fmt.Fprintf(&b, "^PQ%d\n^XZ\n", copies)
	return b.String()
}

func field(b *strings.Builder, x, y, size int, data string) {
	fmt.Fprintf(b, "^FO%d,%d^A0N,%d,%d^FD%s^FS\n", x, y, size, size, escape(data))
}

// details medida, validade original, SIF y lote cuando existen.
func details(l *entity.Label) string {
	var parts []string
	if m := l.Measure.Label(); m != "" {
		parts = append(parts, m)
	}
	if l.OriginalExpiry != "" {
		parts = append(parts, "VAL. ORIG.: "+l.OriginalExpiry)
	}
	if l.SIF != "" {
		parts = append(parts, "SIF: "+l.SIF)
	}
	if l.Batch != "" {
		parts = append(parts, "LOTE: "+l.Batch)
	}
	return strings.Join(parts, "  ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(zplDate)
}

// escape ^ y ~ son prefijos de comando ZPL dentro de ^FD.
func escape(s string) string {
	return strings.NewReplacer("^", " ", "~", " ").Replace(s)
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 6 {
		id = id[:6]
	}
	return strings.ToUpper(id)
}
