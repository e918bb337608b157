package memory

import (
	"context"
	"strings"

	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.LabelRepository    = (*LabelRepo)(nil)
)

// ProductRepo colección produtos.
type ProductRepo struct {
	a access
}

// Create persiste un producto; el código, si existe, es único (sin distinción de mayúsculas).
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.products.get(p.ID); ok {
			return domain.ErrDuplicate
		}
		if codeTaken(st, p.ID, p.Code) {
			return domain.ErrDuplicate
		}
		st.products.put(p.ID, copyOf(p))
		return nil
	})
}

// GetByID nil, nil si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(st *state) error {
		if p, ok := st.products.get(id); ok {
			out = copyOf(p)
		}
		return nil
	})
	return out, err
}

// GetByCode nil, nil si ningún producto tiene ese código.
func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(st *state) error {
		for _, p := range st.products.all() {
			if p.Code != "" && strings.EqualFold(p.Code, code) {
				out = copyOf(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update reemplaza el producto.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.products.get(p.ID); !ok {
			return domain.ErrNotFound
		}
		if codeTaken(st, p.ID, p.Code) {
			return domain.ErrDuplicate
		}
		st.products.put(p.ID, copyOf(p))
		return nil
	})
}

// List en orden de inserción.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.read(func(st *state) error {
		for _, p := range st.products.all() {
			out = append(out, copyOf(p))
		}
		return nil
	})
	return out, err
}

// Delete elimina el producto; su saldo permanece en el ledger.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		st.products.remove(id)
		return nil
	})
}

func codeTaken(st *state, selfID, code string) bool {
	if code == "" {
		return false
	}
	for _, p := range st.products.all() {
		if p.ID != selfID && strings.EqualFold(p.Code, code) {
			return true
		}
	}
	return false
}

// CategoryRepo colección categorias.
type CategoryRepo struct {
	a access
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.categories.get(c.ID); ok {
			return domain.ErrDuplicate
		}
		st.categories.put(c.ID, copyOf(c))
		return nil
	})
}

// GetByID nil, nil si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.a.read(func(st *state) error {
		if c, ok := st.categories.get(id); ok {
			out = copyOf(c)
		}
		return nil
	})
	return out, err
}

// Update reemplaza la categoría.
func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.categories.get(c.ID); !ok {
			return domain.ErrNotFound
		}
		st.categories.put(c.ID, copyOf(c))
		return nil
	})
}

// List en orden de inserción.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.a.read(func(st *state) error {
		for _, c := range st.categories.all() {
			out = append(out, copyOf(c))
		}
		return nil
	})
	return out, err
}

// Delete elimina; id inexistente no es error.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		st.categories.remove(id)
		return nil
	})
}

// EmployeeRepo colección funcionarios.
type EmployeeRepo struct {
	a access
}

// Create persiste un funcionario.
func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.employees.get(e.ID); ok {
			return domain.ErrDuplicate
		}
		st.employees.put(e.ID, copyOf(e))
		return nil
	})
}

// GetByID nil, nil si no existe.
func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.a.read(func(st *state) error {
		if e, ok := st.employees.get(id); ok {
			out = copyOf(e)
		}
		return nil
	})
	return out, err
}

// Update reemplaza el funcionario.
func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.employees.get(e.ID); !ok {
			return domain.ErrNotFound
		}
		st.employees.put(e.ID, copyOf(e))
		return nil
	})
}

// List en orden de inserción.
func (r *EmployeeRepo) List(_ context.Context) ([]*entity.Employee, error) {
	var out []*entity.Employee
	err := r.a.read(func(st *state) error {
		for _, e := range st.employees.all() {
			out = append(out, copyOf(e))
		}
		return nil
	})
	return out, err
}

// Delete elimina; id inexistente no es error.
func (r *EmployeeRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		st.employees.remove(id)
		return nil
	})
}

// LabelRepo colección etiquetas.
type LabelRepo struct {
	a access
}

// Create persiste una etiqueta.
func (r *LabelRepo) Create(_ context.Context, l *entity.Label) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.labels.get(l.ID); ok {
			return domain.ErrDuplicate
		}
		st.labels.put(l.ID, copyLabel(l))
		return nil
	})
}

// GetByID nil, nil si no existe.
func (r *LabelRepo) GetByID(_ context.Context, id string) (*entity.Label, error) {
	var out *entity.Label
	err := r.a.read(func(st *state) error {
		if l, ok := st.labels.get(id); ok {
			out = copyLabel(l)
		}
		return nil
	})
	return out, err
}

// Update reemplaza la etiqueta.
func (r *LabelRepo) Update(_ context.Context, l *entity.Label) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.labels.get(l.ID); !ok {
			return domain.ErrNotFound
		}
		st.labels.put(l.ID, copyLabel(l))
		return nil
	})
}

// Delete elimina; id inexistente no es error.
func (r *LabelRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		st.labels.remove(id)
		return nil
	})
}

// List en orden de inserción.
func (r *LabelRepo) List(_ context.Context) ([]*entity.Label, error) {
	var out []*entity.Label
	err := r.a.read(func(st *state) error {
		for _, l := range st.labels.all() {
			out = append(out, copyLabel(l))
		}
		return nil
	})
	return out, err
}
