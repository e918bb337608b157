package main

import (
	"context"
	"fmt"

	"github.com/nicklvs1307/stockfy/internal/domain/repository"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/memory"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/postgres"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

// repoSet un extremo de la copia. Origen y destino son los mismos puertos de dominio.
type repoSet struct {
	employees   repository.EmployeeRepository
	categories  repository.CategoryRepository
	products    repository.ProductRepository
	stock       repository.StockRepository
	movements   repository.StockMovementRepository
	losses      repository.LossRepository
	productions repository.ProductionRepository
	counts      repository.CountRepository
	labels      repository.LabelRepository
}

func memoryRepos(s *memory.Store) repoSet {
	return repoSet{
		employees:   s.Employees(),
		categories:  s.Categories(),
		products:    s.Products(),
		stock:       s.Stock(),
		movements:   s.Movements(),
		losses:      s.Losses(),
		productions: s.Production(),
		counts:      s.Counts(),
		labels:      s.Labels(),
	}
}

// postgresRepos todos los adaptadores sobre el mismo Querier (normalmente la tx de la importación).
func postgresRepos(q postgres.Querier) repoSet {
	return repoSet{
		employees:   postgres.NewEmployeeRepository(q),
		categories:  postgres.NewCategoryRepository(q),
		products:    postgres.NewProductRepository(q),
		stock:       postgres.NewStockRepository(q),
		movements:   postgres.NewMovementRepository(q),
		losses:      postgres.NewLossRepository(q),
		productions: postgres.NewProductionRepository(q),
		counts:      postgres.NewCountRepository(q),
		labels:      postgres.NewLabelRepository(q),
	}
}

// copyResult registros copiados y omitidos por colección.
type copyResult struct {
	copied  map[string]int
	skipped map[string]int
}

// copyAll inserta cada colección de src en dst en el orden de sus referencias.
// El primer error de escritura aborta; el llamador descarta la transacción.
func copyAll(ctx context.Context, src, dst repoSet, log *logger.Logger) (*copyResult, error) {
	res := &copyResult{
		copied:  map[string]int{"movimentacoes": 0, "perdas": 0, "producao": 0},
		skipped: map[string]int{},
	}

	employees, err := src.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		if err := dst.employees.Create(ctx, e); err != nil {
			return nil, fmt.Errorf("funcionario %s: %w", e.ID, err)
		}
	}
	res.copied["funcionarios"] = len(employees)

	categories, err := src.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if err := dst.categories.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("categoria %s: %w", c.ID, err)
		}
	}
	res.copied["categorias"] = len(categories)

	products, err := src.products.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if err := dst.products.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("produto %s: %w", p.ID, err)
		}
	}
	res.copied["produtos"] = len(products)

	// Los saldos se copian tal cual: ya incluyen el efecto de los registros omitidos abajo.
	balances, err := src.stock.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range balances {
		if err := dst.stock.Upsert(ctx, b); err != nil {
			return nil, fmt.Errorf("saldo %s: %w", b.ProductID, err)
		}
	}
	res.copied["saldos"] = len(balances)

	movements, err := src.movements.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range movements {
		if m.Quantity <= 0 {
			res.skip(log, "movimentacoes", m.ID, m.Quantity)
			continue
		}
		if err := dst.movements.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("movimentacao %s: %w", m.ID, err)
		}
		res.copied["movimentacoes"]++
	}

	losses, err := src.losses.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range losses {
		if l.Quantity <= 0 {
			res.skip(log, "perdas", l.ID, l.Quantity)
			continue
		}
		if err := dst.losses.Create(ctx, l); err != nil {
			return nil, fmt.Errorf("perda %s: %w", l.ID, err)
		}
		res.copied["perdas"]++
	}

	productions, err := src.productions.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range productions {
		if p.Quantity <= 0 {
			res.skip(log, "producao", p.ID, p.Quantity)
			continue
		}
		if err := dst.productions.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("producao %s: %w", p.ID, err)
		}
		res.copied["producao"]++
	}

	counts, err := src.counts.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		if err := dst.counts.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("contagem %s: %w", c.ID, err)
		}
	}
	res.copied["contagens"] = len(counts)

	labels, err := src.labels.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range labels {
		if err := dst.labels.Create(ctx, l); err != nil {
			return nil, fmt.Errorf("etiqueta %s: %w", l.ID, err)
		}
	}
	res.copied["etiquetas"] = len(labels)

	return res, nil
}

func (r *copyResult) skip(log *logger.Logger, table, id string, qty int64) {
	r.skipped[table]++
	log.Warn().Str("tabla", table).Str("id", id).Int64("quantidade", qty).Msg("registro omitido: quantidade <= 0")
}
