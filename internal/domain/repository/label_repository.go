package repository

import (
	"context"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// LabelRepository define el puerto de persistencia para etiquetas.
type LabelRepository interface {
	Create(ctx context.Context, l *entity.Label) error
	GetByID(ctx context.Context, id string) (*entity.Label, error)
	Update(ctx context.Context, l *entity.Label) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Label, error)
}
