package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
)

var (
	_ repository.ProductionRepository = (*ProductionRepo)(nil)
	_ repository.CountRepository      = (*CountRepo)(nil)
)

// ProductionRepo producao + producao_insumos. Create y Update escriben varias filas:
// usarlo con una tx para que sean atómicos.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

const productionColumns = `id, produto_id, quantidade, data, responsavel_id, responsavel_nome, observacao, created_at, updated_at`

func scanProduction(row pgx.Row) (*entity.Production, error) {
	var p entity.Production
	var respID, respName *string
	err := row.Scan(&p.ID, &p.ProductID, &p.Quantity, &p.Date, &respID, &respName, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if respID != nil {
		p.Responsible = &entity.EmployeeRef{ID: *respID, Name: deref(respName)}
	}
	return &p, nil
}

func responsibleColumns(r *entity.EmployeeRef) (id, name *string) {
	if r == nil {
		return nil, nil
	}
	return &r.ID, &r.Name
}

// Create persiste la producción y sus insumos en orden.
func (r *ProductionRepo) Create(ctx context.Context, p *entity.Production) error {
	respID, respName := responsibleColumns(p.Responsible)
	query := `INSERT INTO producao (` + productionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, p.ID, p.ProductID, p.Quantity, p.Date, respID, respName, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producao: %w", err)
	}
	return r.insertInputs(ctx, p)
}

func (r *ProductionRepo) insertInputs(ctx context.Context, p *entity.Production) error {
	query := `INSERT INTO producao_insumos (producao_id, posicao, produto_id, quantidade) VALUES ($1, $2, $3, $4)`
	for i, in := range p.Inputs {
		if _, err := r.q.Exec(ctx, query, p.ID, i, in.ProductID, in.Quantity); err != nil {
			return fmt.Errorf("insert insumo: %w", err)
		}
	}
	return nil
}

// GetByID nil, nil si no existe.
func (r *ProductionRepo) GetByID(ctx context.Context, id string) (*entity.Production, error) {
	p, err := scanProduction(r.q.QueryRow(ctx, `SELECT `+productionColumns+` FROM producao WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producao: %w", err)
	}
	if err := r.loadInputs(ctx, []*entity.Production{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// Update reemplaza la cabecera y la lista completa de insumos.
func (r *ProductionRepo) Update(ctx context.Context, p *entity.Production) error {
	respID, respName := responsibleColumns(p.Responsible)
	query := `
		UPDATE producao
		SET produto_id = $2, quantidade = $3, data = $4, responsavel_id = $5, responsavel_nome = $6,
		    observacao = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.ProductID, p.Quantity, p.Date, respID, respName, p.Notes, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update producao: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM producao_insumos WHERE producao_id = $1`, p.ID); err != nil {
		return fmt.Errorf("delete insumos: %w", err)
	}
	return r.insertInputs(ctx, p)
}

// Delete elimina la producción; los insumos caen por cascade.
func (r *ProductionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM producao WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete producao: %w", err)
	}
	return nil
}

func (r *ProductionRepo) List(ctx context.Context) ([]*entity.Production, error) {
	return r.query(ctx, `SELECT `+productionColumns+` FROM producao ORDER BY data DESC, created_at DESC, id`)
}

func (r *ProductionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Production, error) {
	return r.query(ctx, `SELECT `+productionColumns+` FROM producao WHERE produto_id = $1 ORDER BY data DESC, created_at DESC, id`, productID)
}

// ListByPeriod rango inclusivo sobre data; NULL = sin límite.
func (r *ProductionRepo) ListByPeriod(ctx context.Context, from, to *time.Time) ([]*entity.Production, error) {
	return r.query(ctx, `
		SELECT `+productionColumns+` FROM producao
		WHERE ($1::timestamptz IS NULL OR data >= $1) AND ($2::timestamptz IS NULL OR data <= $2)
		ORDER BY data DESC, created_at DESC, id`, from, to)
}

func (r *ProductionRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Production, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list producao: %w", err)
	}
	var out []*entity.Production
	for rows.Next() {
		p, err := scanProduction(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan producao: %w", err)
		}
		out = append(out, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadInputs(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadInputs rellena Inputs de todas las producciones con una sola consulta.
func (r *ProductionRepo) loadInputs(ctx context.Context, list []*entity.Production) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.Production, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Inputs = []entity.ProductionInput{}
	}
	rows, err := r.q.Query(ctx, `
		SELECT producao_id, produto_id, quantidade FROM producao_insumos
		WHERE producao_id = ANY($1) ORDER BY producao_id, posicao`, ids)
	if err != nil {
		return fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productionID string
		var in entity.ProductionInput
		if err := rows.Scan(&productionID, &in.ProductID, &in.Quantity); err != nil {
			return fmt.Errorf("scan insumo: %w", err)
		}
		if p, ok := byID[productionID]; ok {
			p.Inputs = append(p.Inputs, in)
		}
	}
	return rows.Err()
}

// CountRepo contagens; solo inserción y lectura.
type CountRepo struct {
	q Querier
}

// NewCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountRepository(q Querier) *CountRepo {
	return &CountRepo{q: q}
}

const countColumns = `id, produto_id, produto_nome, responsavel_id, responsavel_nome, quantidade,
	saldo_anterior, diferenca, ajustar_estoque, observacao, "timestamp"`

func scanCount(row pgx.Row) (*entity.StockCount, error) {
	var c entity.StockCount
	var respID, respName *string
	err := row.Scan(&c.ID, &c.Product.ID, &c.Product.Name, &respID, &respName, &c.Quantity,
		&c.PreviousBalance, &c.Difference, &c.AdjustStock, &c.Notes, &c.Timestamp)
	if err != nil {
		return nil, err
	}
	if respID != nil {
		c.Responsible = &entity.EmployeeRef{ID: *respID, Name: deref(respName)}
	}
	return &c, nil
}

func (r *CountRepo) Create(ctx context.Context, c *entity.StockCount) error {
	respID, respName := responsibleColumns(c.Responsible)
	query := `INSERT INTO contagens (` + countColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Product.ID, c.Product.Name, respID, respName, c.Quantity,
		c.PreviousBalance, c.Difference, c.AdjustStock, c.Notes, c.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contagem: %w", err)
	}
	return nil
}

func (r *CountRepo) GetByID(ctx context.Context, id string) (*entity.StockCount, error) {
	c, err := scanCount(r.q.QueryRow(ctx, `SELECT `+countColumns+` FROM contagens WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contagem: %w", err)
	}
	return c, nil
}

func (r *CountRepo) List(ctx context.Context) ([]*entity.StockCount, error) {
	return r.query(ctx, `SELECT `+countColumns+` FROM contagens ORDER BY "timestamp" DESC, id`)
}

func (r *CountRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockCount, error) {
	return r.query(ctx, `SELECT `+countColumns+` FROM contagens WHERE produto_id = $1 ORDER BY "timestamp" DESC, id`, productID)
}

func (r *CountRepo) ListByPeriod(ctx context.Context, from, to *time.Time) ([]*entity.StockCount, error) {
	return r.query(ctx, `
		SELECT `+countColumns+` FROM contagens
		WHERE ($1::timestamptz IS NULL OR "timestamp" >= $1) AND ($2::timestamptz IS NULL OR "timestamp" <= $2)
		ORDER BY "timestamp" DESC, id`, from, to)
}

func (r *CountRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.StockCount, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list contagens: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockCount
	for rows.Next() {
		c, err := scanCount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contagem: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
