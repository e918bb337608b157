package repository

import (
	"context"
	"time"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// CountRepository define el puerto de persistencia para contagens. Sin Update ni Delete: son inmutables.
type CountRepository interface {
	Create(ctx context.Context, c *entity.StockCount) error
	GetByID(ctx context.Context, id string) (*entity.StockCount, error)
	List(ctx context.Context) ([]*entity.StockCount, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockCount, error)
	// ListByPeriod filtra por Timestamp en rango inclusivo; nil = sin límite.
	ListByPeriod(ctx context.Context, from, to *time.Time) ([]*entity.StockCount, error)
}
