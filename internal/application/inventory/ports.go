package inventory

import (
	"context"

	"github.com/nicklvs1307/stockfy/internal/domain/repository"
)

// Repositories repositorios atados a una misma transacción.
type Repositories struct {
	Stock      repository.StockRepository
	Movements  repository.StockMovementRepository
	Losses     repository.LossRepository
	Production repository.ProductionRepository
	Counts     repository.CountRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ninguna escritura (registro ni piernas del ledger).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}
