package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
)

var _ repository.LabelRepository = (*LabelRepo)(nil)

// LabelRepo etiquetas sobre PostgreSQL. Producto y responsable se guardan desnormalizados.
type LabelRepo struct {
	q Querier
}

// NewLabelRepository construye el adaptador.
func NewLabelRepository(q Querier) *LabelRepo {
	return &LabelRepo{q: q}
}

const labelColumns = `id, produto_id, produto_nome, validade, armazenamento, responsavel_id, responsavel_nome,
	data_manipulacao, data_validade, quantidade, medida_valor, medida_unidade, validade_original, sif, lote,
	status, created_at, updated_at`

func scanLabel(row pgx.Row) (*entity.Label, error) {
	var l entity.Label
	var measureValue decimal.NullDecimal
	var measureUnit *string
	err := row.Scan(
		&l.ID, &l.Product.ID, &l.Product.Name, &l.Product.ShelfLifeDays, &l.Product.Storage,
		&l.Responsible.ID, &l.Responsible.Name, &l.HandledAt, &l.ExpiresAt, &l.Quantity,
		&measureValue, &measureUnit, &l.OriginalExpiry, &l.SIF, &l.Batch, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if measureValue.Valid {
		l.Measure = &entity.Measure{Value: measureValue.Decimal, Unit: deref(measureUnit)}
	}
	return &l, nil
}

// measureColumns sin medida ambas columnas quedan NULL.
func measureColumns(m *entity.Measure) (decimal.NullDecimal, *string) {
	if m == nil {
		return decimal.NullDecimal{}, nil
	}
	return decimal.NullDecimal{Decimal: m.Value, Valid: true}, &m.Unit
}

func (r *LabelRepo) Create(ctx context.Context, l *entity.Label) error {
	mv, mu := measureColumns(l.Measure)
	query := `INSERT INTO etiquetas (` + labelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Product.ID, l.Product.Name, l.Product.ShelfLifeDays, l.Product.Storage,
		l.Responsible.ID, l.Responsible.Name, l.HandledAt, l.ExpiresAt, l.Quantity,
		mv, mu, l.OriginalExpiry, l.SIF, l.Batch, l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert etiqueta: %w", err)
	}
	return nil
}

func (r *LabelRepo) GetByID(ctx context.Context, id string) (*entity.Label, error) {
	l, err := scanLabel(r.q.QueryRow(ctx, `SELECT `+labelColumns+` FROM etiquetas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get etiqueta: %w", err)
	}
	return l, nil
}

// Update los datos del producto y del responsable no cambian tras la emisión.
func (r *LabelRepo) Update(ctx context.Context, l *entity.Label) error {
	mv, mu := measureColumns(l.Measure)
	query := `
		UPDATE etiquetas
		SET data_manipulacao = $2, data_validade = $3, quantidade = $4, medida_valor = $5, medida_unidade = $6,
		    validade_original = $7, sif = $8, lote = $9, status = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		l.ID, l.HandledAt, l.ExpiresAt, l.Quantity, mv, mu, l.OriginalExpiry, l.SIF, l.Batch, l.Status, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update etiqueta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LabelRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM etiquetas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete etiqueta: %w", err)
	}
	return nil
}

func (r *LabelRepo) List(ctx context.Context) ([]*entity.Label, error) {
	rows, err := r.q.Query(ctx, `SELECT `+labelColumns+` FROM etiquetas ORDER BY data_validade`)
	if err != nil {
		return nil, fmt.Errorf("list etiquetas: %w", err)
	}
	defer rows.Close()
	var out []*entity.Label
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan etiqueta: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
