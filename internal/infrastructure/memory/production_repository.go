package memory

import (
	"context"
	"time"

	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
)

var (
	_ repository.ProductionRepository = (*ProductionRepo)(nil)
	_ repository.CountRepository      = (*CountRepo)(nil)
)

// ProductionRepo colección producao.
type ProductionRepo struct {
	a access
}

// Create persiste la producción con sus insumos.
func (r *ProductionRepo) Create(_ context.Context, p *entity.Production) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.productions.get(p.ID); ok {
			return domain.ErrDuplicate
		}
		st.productions.put(p.ID, copyProduction(p))
		return nil
	})
}

// GetByID nil, nil si no existe.
func (r *ProductionRepo) GetByID(_ context.Context, id string) (*entity.Production, error) {
	var out *entity.Production
	err := r.a.read(func(st *state) error {
		if p, ok := st.productions.get(id); ok {
			out = copyProduction(p)
		}
		return nil
	})
	return out, err
}

// Update reemplaza el registro y su lista de insumos.
func (r *ProductionRepo) Update(_ context.Context, p *entity.Production) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.productions.get(p.ID); !ok {
			return domain.ErrNotFound
		}
		st.productions.put(p.ID, copyProduction(p))
		return nil
	})
}

// Delete elimina; id inexistente no es error.
func (r *ProductionRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		st.productions.remove(id)
		return nil
	})
}

// List en orden de inserción.
func (r *ProductionRepo) List(_ context.Context) ([]*entity.Production, error) {
	return r.filter(func(*entity.Production) bool { return true })
}

// ListByProduct por producto terminado.
func (r *ProductionRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Production, error) {
	return r.filter(func(p *entity.Production) bool { return p.ProductID == productID })
}

// ListByPeriod por Date en rango inclusivo.
func (r *ProductionRepo) ListByPeriod(_ context.Context, from, to *time.Time) ([]*entity.Production, error) {
	return r.filter(func(p *entity.Production) bool { return within(p.Date, from, to) })
}

func (r *ProductionRepo) filter(keep func(*entity.Production) bool) ([]*entity.Production, error) {
	var out []*entity.Production
	err := r.a.read(func(st *state) error {
		for _, p := range st.productions.all() {
			if keep(p) {
				out = append(out, copyProduction(p))
			}
		}
		return nil
	})
	return out, err
}

// CountRepo colección contagens (solo alta y lectura).
type CountRepo struct {
	a access
}

// Create persiste una contagem.
func (r *CountRepo) Create(_ context.Context, c *entity.StockCount) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.counts.get(c.ID); ok {
			return domain.ErrDuplicate
		}
		st.counts.put(c.ID, copyCount(c))
		return nil
	})
}

// GetByID nil, nil si no existe.
func (r *CountRepo) GetByID(_ context.Context, id string) (*entity.StockCount, error) {
	var out *entity.StockCount
	err := r.a.read(func(st *state) error {
		if c, ok := st.counts.get(id); ok {
			out = copyCount(c)
		}
		return nil
	})
	return out, err
}

// List en orden de inserción.
func (r *CountRepo) List(_ context.Context) ([]*entity.StockCount, error) {
	return r.filter(func(*entity.StockCount) bool { return true })
}

// ListByProduct filtro exacto por producto embebido.
func (r *CountRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockCount, error) {
	return r.filter(func(c *entity.StockCount) bool { return c.Product.ID == productID })
}

// ListByPeriod por Timestamp en rango inclusivo.
func (r *CountRepo) ListByPeriod(_ context.Context, from, to *time.Time) ([]*entity.StockCount, error) {
	return r.filter(func(c *entity.StockCount) bool { return within(c.Timestamp, from, to) })
}

func (r *CountRepo) filter(keep func(*entity.StockCount) bool) ([]*entity.StockCount, error) {
	var out []*entity.StockCount
	err := r.a.read(func(st *state) error {
		for _, c := range st.counts.all() {
			if keep(c) {
				out = append(out, copyCount(c))
			}
		}
		return nil
	})
	return out, err
}

// within rango inclusivo; nil = sin límite.
func within(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
