package repository

import (
	"context"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// StockRepository define el puerto del ledger de saldos (productId -> saldo).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve el saldo; un producto sin entrada devuelve saldo cero (nunca nil).
	Get(ctx context.Context, productID string) (*entity.StockBalance, error)
	// GetForUpdate igual que Get pero bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID string) (*entity.StockBalance, error)
	Upsert(ctx context.Context, balance *entity.StockBalance) error
	List(ctx context.Context) ([]*entity.StockBalance, error)
}
