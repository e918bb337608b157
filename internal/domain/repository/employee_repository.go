package repository

import (
	"context"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para funcionarios.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	List(ctx context.Context) ([]*entity.Employee, error)
	Delete(ctx context.Context, id string) error
}
