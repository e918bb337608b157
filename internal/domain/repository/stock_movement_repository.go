package repository

import (
	"context"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos manuales (DIP).
// GetByID devuelve nil, nil si no existe.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	Update(ctx context.Context, movement *entity.StockMovement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.StockMovement, error)
}
