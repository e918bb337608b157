package memory

import (
	"context"
	"sort"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo saldos (colección saldos).
type StockRepo struct {
	a access
}

// Get devuelve el saldo o cero si el producto nunca fue referenciado.
func (r *StockRepo) Get(_ context.Context, productID string) (*entity.StockBalance, error) {
	var out entity.StockBalance
	err := r.a.read(func(st *state) error {
		b, ok := st.balances[productID]
		if !ok {
			b = entity.StockBalance{ProductID: productID}
		}
		out = b
		return nil
	})
	return &out, err
}

// GetForUpdate en memoria el lock es el de Run (único escritor).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.StockBalance, error) {
	return r.Get(ctx, productID)
}

// Upsert reemplaza el saldo del producto.
func (r *StockRepo) Upsert(_ context.Context, balance *entity.StockBalance) error {
	return r.a.write(func(st *state) error {
		st.balances[balance.ProductID] = *balance
		return nil
	})
}

// List todas las entradas, ordenadas por id de producto.
func (r *StockRepo) List(_ context.Context) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	err := r.a.read(func(st *state) error {
		out = make([]*entity.StockBalance, 0, len(st.balances))
		for _, b := range st.balances {
			b := b
			out = append(out, &b)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, err
}
