package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo de un producto; sin fila = cero.
func (r *StockRepo) Get(ctx context.Context, productID string) (*entity.StockBalance, error) {
	query := `SELECT produto_id, quantidade, updated_at FROM saldos WHERE produto_id = $1`
	var b entity.StockBalance
	err := r.q.QueryRow(ctx, query, productID).Scan(&b.ProductID, &b.Quantity, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get saldo: %w", err)
	}
	return &b, nil
}

// GetForUpdate crea la fila en cero si falta y la bloquea (SELECT FOR UPDATE).
// Sin la fila previa, dos transacciones concurrentes no tendrían nada que bloquear.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.StockBalance, error) {
	insert := `INSERT INTO saldos (produto_id, quantidade, updated_at) VALUES ($1, 0, now()) ON CONFLICT (produto_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, productID); err != nil {
		return nil, fmt.Errorf("init saldo: %w", err)
	}
	query := `SELECT produto_id, quantidade, updated_at FROM saldos WHERE produto_id = $1 FOR UPDATE`
	var b entity.StockBalance
	if err := r.q.QueryRow(ctx, query, productID).Scan(&b.ProductID, &b.Quantity, &b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("get saldo for update: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el saldo del producto.
func (r *StockRepo) Upsert(ctx context.Context, balance *entity.StockBalance) error {
	query := `
		INSERT INTO saldos (produto_id, quantidade, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (produto_id)
		DO UPDATE SET quantidade = EXCLUDED.quantidade, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, balance.ProductID, balance.Quantity, balance.UpdatedAt); err != nil {
		return fmt.Errorf("upsert saldo: %w", err)
	}
	return nil
}

// List todas las entradas del ledger, por id de producto.
func (r *StockRepo) List(ctx context.Context) ([]*entity.StockBalance, error) {
	rows, err := r.q.Query(ctx, `SELECT produto_id, quantidade, updated_at FROM saldos ORDER BY produto_id`)
	if err != nil {
		return nil, fmt.Errorf("list saldos: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(&b.ProductID, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan saldo: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
