package repository

import (
	"context"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// LossRepository define el puerto de persistencia para pérdidas.
type LossRepository interface {
	Create(ctx context.Context, loss *entity.Loss) error
	GetByID(ctx context.Context, id string) (*entity.Loss, error)
	Update(ctx context.Context, loss *entity.Loss) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Loss, error)
}
