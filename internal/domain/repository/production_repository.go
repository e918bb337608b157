package repository

import (
	"context"
	"time"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// ProductionRepository define el puerto de persistencia para producciones (con sus insumos).
type ProductionRepository interface {
	Create(ctx context.Context, p *entity.Production) error
	GetByID(ctx context.Context, id string) (*entity.Production, error)
	Update(ctx context.Context, p *entity.Production) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Production, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Production, error)
	// ListByPeriod filtra por Date en rango inclusivo; nil = sin límite.
	ListByPeriod(ctx context.Context, from, to *time.Time) ([]*entity.Production, error)
}
