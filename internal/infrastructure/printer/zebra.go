package printer

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/nicklvs1307/stockfy/internal/application/labeling"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

var _ labeling.LabelPrinter = (*ZebraPrinter)(nil)

// ZebraPrinter escribe ZPL en un socket TCP. Sin dirección, o si el dispositivo falla,
// la impresión se simula: se registra el ZPL y se informa Simulated.
type ZebraPrinter struct {
	addr    string
	timeout time.Duration
	footer  Footer
	log     *logger.Logger
}

// NewZebraPrinter addr host:9100; vacío = siempre simulado.
func NewZebraPrinter(addr string, timeout time.Duration, footer Footer, log *logger.Logger) *ZebraPrinter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ZebraPrinter{addr: addr, timeout: timeout, footer: footer, log: log}
}

// Print solo devuelve error si ctx fue cancelado; los fallos del dispositivo caen a simulación.
func (p *ZebraPrinter) Print(ctx context.Context, label *entity.Label, copies int) (labeling.PrintOutcome, error) {
	if copies <= 0 {
		copies = 1
	}
	zpl := BuildZPL(label, copies, p.footer)

	if p.addr == "" {
		p.log.Info().Str("label_id", label.ID).Int("copies", copies).Str("zpl", zpl).Msg("impressão simulada: impressora não configurada")
		return labeling.PrintOutcome{Simulated: true, Copies: copies, Message: "impressora não configurada"}, nil
	}

	if err := p.send(ctx, zpl); err != nil {
		if ctx.Err() != nil {
			return labeling.PrintOutcome{}, ctx.Err()
		}
		p.log.Warn().Err(err).Str("addr", p.addr).Str("label_id", label.ID).Msg("impressora indisponível, impressão simulada")
		return labeling.PrintOutcome{Simulated: true, Copies: copies, Message: err.Error()}, nil
	}
	return labeling.PrintOutcome{Printed: true, Copies: copies}, nil
}

func (p *ZebraPrinter) send(ctx context.Context, zpl string) error {
	dialer := &net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return fmt.Errorf("conectar %s: %w", p.addr, err)
	}
	defer conn.Close()
	if err := conn.SetWriteDeadline(time.Now().Add(p.timeout)); err != nil {
		return err
	}
	if _, err := conn.Write([]byte(zpl)); err != nil {
		return fmt.Errorf("enviar zpl: %w", err)
	}
	return nil
}
