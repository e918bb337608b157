package main

import (
	"context"
	"fmt"

	"github.com/nicklvs1307/stockfy/internal/application/inventory"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/memory"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/postgres"
	"github.com/nicklvs1307/stockfy/pkg/config"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

// storage repositorios del driver elegido.
type storage struct {
	tx         inventory.TxRunner
	stock      repository.StockRepository
	movements  repository.StockMovementRepository
	losses     repository.LossRepository
	production repository.ProductionRepository
	counts     repository.CountRepository
	labels     repository.LabelRepository
	products   repository.ProductRepository
	categories repository.CategoryRepository
	employees  repository.EmployeeRepository
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrar esquema: %w", err)
		}
		log.Info().Msg("almacenamiento: postgres")
		return &storage{
			tx:         postgres.NewTxRunner(pool),
			stock:      postgres.NewStockRepository(pool),
			movements:  postgres.NewMovementRepository(pool),
			losses:     postgres.NewLossRepository(pool),
			production: postgres.NewProductionRepository(pool),
			counts:     postgres.NewCountRepository(pool),
			labels:     postgres.NewLabelRepository(pool),
			products:   postgres.NewProductRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			employees:  postgres.NewEmployeeRepository(pool),
			close:      pool.Close,
		}, nil
	default:
		s := memory.NewStore()
		if path := cfg.Storage.SnapshotPath; path != "" {
			var err error
			if s, err = memory.Open(path); err != nil {
				return nil, err
			}
		}
		log.Info().Str("snapshot", cfg.Storage.SnapshotPath).Msg("almacenamiento: memoria")
		return &storage{
			tx:         s,
			stock:      s.Stock(),
			movements:  s.Movements(),
			losses:     s.Losses(),
			production: s.Production(),
			counts:     s.Counts(),
			labels:     s.Labels(),
			products:   s.Products(),
			categories: s.Categories(),
			employees:  s.Employees(),
			close:      func() {},
		}, nil
	}
}
