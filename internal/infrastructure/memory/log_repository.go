package memory

import (
	"context"

	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.LossRepository          = (*LossRepo)(nil)
)

// MovementRepo colección movimentacoes.
type MovementRepo struct {
	a access
}

// Create persiste un nuevo movimiento.
func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.movements.get(m.ID); ok {
			return domain.ErrDuplicate
		}
		st.movements.put(m.ID, copyOf(m))
		return nil
	})
}

// GetByID nil, nil si no existe.
func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.a.read(func(st *state) error {
		if m, ok := st.movements.get(id); ok {
			out = copyOf(m)
		}
		return nil
	})
	return out, err
}

// Update reemplaza el registro existente.
func (r *MovementRepo) Update(_ context.Context, m *entity.StockMovement) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.movements.get(m.ID); !ok {
			return domain.ErrNotFound
		}
		st.movements.put(m.ID, copyOf(m))
		return nil
	})
}

// Delete elimina; id inexistente no es error.
func (r *MovementRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		st.movements.remove(id)
		return nil
	})
}

// List en orden de inserción.
func (r *MovementRepo) List(_ context.Context) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.a.read(func(st *state) error {
		for _, m := range st.movements.all() {
			out = append(out, copyOf(m))
		}
		return nil
	})
	return out, err
}

// LossRepo colección perdas.
type LossRepo struct {
	a access
}

// Create persiste una nueva pérdida.
func (r *LossRepo) Create(_ context.Context, l *entity.Loss) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.losses.get(l.ID); ok {
			return domain.ErrDuplicate
		}
		st.losses.put(l.ID, copyOf(l))
		return nil
	})
}

// GetByID nil, nil si no existe.
func (r *LossRepo) GetByID(_ context.Context, id string) (*entity.Loss, error) {
	var out *entity.Loss
	err := r.a.read(func(st *state) error {
		if l, ok := st.losses.get(id); ok {
			out = copyOf(l)
		}
		return nil
	})
	return out, err
}

// Update reemplaza el registro existente.
func (r *LossRepo) Update(_ context.Context, l *entity.Loss) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.losses.get(l.ID); !ok {
			return domain.ErrNotFound
		}
		st.losses.put(l.ID, copyOf(l))
		return nil
	})
}

// Delete elimina; id inexistente no es error.
func (r *LossRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		st.losses.remove(id)
		return nil
	})
}

// List en orden de inserción.
func (r *LossRepo) List(_ context.Context) ([]*entity.Loss, error) {
	var out []*entity.Loss
	err := r.a.read(func(st *state) error {
		for _, l := range st.losses.all() {
			out = append(out, copyOf(l))
		}
		return nil
	})
	return out, err
}
