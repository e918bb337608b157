package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.LossRepository          = (*LossRepo)(nil)
)

// MovementRepo movimentacoes sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, produto_id, tipo, quantidade, data, observacao, created_at, updated_at`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Date, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO movimentacoes (` + movementColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, m.ID, m.ProductID, m.Type, m.Quantity, m.Date, m.Notes, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movimentacao: %w", err)
	}
	return nil
}

// GetByID nil, nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movimentacoes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimentacao: %w", err)
	}
	return m, nil
}

// Update reemplaza el registro; ErrNotFound si no existe.
func (r *MovementRepo) Update(ctx context.Context, m *entity.StockMovement) error {
	query := `
		UPDATE movimentacoes
		SET produto_id = $2, tipo = $3, quantidade = $4, data = $5, observacao = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, m.ID, m.ProductID, m.Type, m.Quantity, m.Date, m.Notes, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update movimentacao: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina; id inexistente no es error.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM movimentacoes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete movimentacao: %w", err)
	}
	return nil
}

// List por fecha descendente.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM movimentacoes ORDER BY data DESC, created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list movimentacoes: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimentacao: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// LossRepo perdas sobre PostgreSQL.
type LossRepo struct {
	q Querier
}

// NewLossRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLossRepository(q Querier) *LossRepo {
	return &LossRepo{q: q}
}

const lossColumns = `id, produto_id, quantidade, data, motivo, observacao, created_at, updated_at`

func scanLoss(row pgx.Row) (*entity.Loss, error) {
	var l entity.Loss
	err := row.Scan(&l.ID, &l.ProductID, &l.Quantity, &l.Date, &l.Reason, &l.Notes, &l.CreatedAt, &l.UpdatedAt)
	return &l, err
}

func (r *LossRepo) Create(ctx context.Context, l *entity.Loss) error {
	query := `INSERT INTO perdas (` + lossColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, l.ID, l.ProductID, l.Quantity, l.Date, l.Reason, l.Notes, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert perda: %w", err)
	}
	return nil
}

func (r *LossRepo) GetByID(ctx context.Context, id string) (*entity.Loss, error) {
	l, err := scanLoss(r.q.QueryRow(ctx, `SELECT `+lossColumns+` FROM perdas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get perda: %w", err)
	}
	return l, nil
}

func (r *LossRepo) Update(ctx context.Context, l *entity.Loss) error {
	query := `
		UPDATE perdas
		SET produto_id = $2, quantidade = $3, data = $4, motivo = $5, observacao = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, l.ID, l.ProductID, l.Quantity, l.Date, l.Reason, l.Notes, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update perda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LossRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM perdas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete perda: %w", err)
	}
	return nil
}

func (r *LossRepo) List(ctx context.Context) ([]*entity.Loss, error) {
	rows, err := r.q.Query(ctx, `SELECT `+lossColumns+` FROM perdas ORDER BY data DESC, created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list perdas: %w", err)
	}
	defer rows.Close()
	var out []*entity.Loss
	for rows.Next() {
		l, err := scanLoss(rows)
		if err != nil {
			return nil, fmt.Errorf("scan perda: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
