package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/inventory"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
	"github.com/nicklvs1307/stockfy/internal/domain/search"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

// MovementUseCase entradas y salidas manuales. Cada escritura del registro
// y su delta en el ledger ocurren en la misma transacción.
type MovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
	log          *logger.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movementRepo: movementRepo, productRepo: productRepo, log: log}
}

// Create registra el movimiento y aplica exactamente un delta. data por defecto = hoy.
func (uc *MovementUseCase) Create(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	now := time.Now()
	m := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Date:      in.Date.Value(today(now)),
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := inventory.MovementDelta(m).Validate(); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		if err := repos.Movements.Create(ctx, m); err != nil {
			return err
		}
		return applyDeltas(ctx, repos.Stock, now, inventory.MovementDelta(m))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("movement_id", m.ID).Str("tipo", m.Type).Int64("quantidade", m.Quantity).Msg("movimento registrado")
	return uc.single(ctx, m)
}

// Update deshace el delta anterior (tipo inverso, cantidad vieja) y aplica el nuevo.
// ErrNotFound si id no existe; la validación ocurre antes de cualquier escritura.
func (uc *MovementUseCase) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	now := time.Now()
	var updated *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		old, err := repos.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		next := *old
		if in.ProductID != nil {
			next.ProductID = *in.ProductID
		}
		if in.Type != nil {
			next.Type = *in.Type
		}
		if in.Quantity != nil {
			next.Quantity = *in.Quantity
		}
		if in.Date != nil && !in.Date.IsZero() {
			next.Date = in.Date.Time
		}
		if in.Notes != nil {
			next.Notes = *in.Notes
		}
		next.UpdatedAt = now
		if err := inventory.MovementDelta(&next).Validate(); err != nil {
			return err
		}
		if err := undoDeltas(ctx, repos.Stock, now, inventory.MovementDelta(old)); err != nil {
			return err
		}
		if err := applyDeltas(ctx, repos.Stock, now, inventory.MovementDelta(&next)); err != nil {
			return err
		}
		updated = &next
		return repos.Movements.Update(ctx, &next)
	})
	if err != nil {
		return nil, err
	}
	return uc.single(ctx, updated)
}

// Delete deshace el delta almacenado y elimina el registro. Id inexistente: no-op sin tocar el ledger.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(repos Repositories) error {
		old, err := repos.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return nil
		}
		if err := undoDeltas(ctx, repos.Stock, now, inventory.MovementDelta(old)); err != nil {
			return err
		}
		return repos.Movements.Delete(ctx, id)
	})
}

// GetByID obtiene un movimiento.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return uc.single(ctx, m)
}

// List todos los movimientos.
func (uc *MovementUseCase) List(ctx context.Context) ([]dto.MovementResponse, error) {
	return uc.Search(ctx, "")
}

// Search filtra por nombre del producto u observación (sin mayúsculas ni acentos). Término vacío = todos.
func (uc *MovementUseCase) Search(ctx context.Context, term string) ([]dto.MovementResponse, error) {
	list, err := uc.movementRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortMovements(list)
	names, err := loadProductNames(ctx, uc.productRepo)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		if !search.Match(term, names.name(m.ProductID), m.Notes) {
			continue
		}
		out = append(out, toMovementResponse(m, names))
	}
	return out, nil
}

func (uc *MovementUseCase) single(ctx context.Context, m *entity.StockMovement) (*dto.MovementResponse, error) {
	names, err := loadProductNames(ctx, uc.productRepo)
	if err != nil {
		return nil, err
	}
	r := toMovementResponse(m, names)
	return &r, nil
}

func toMovementResponse(m *entity.StockMovement, names productNames) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: names.name(m.ProductID),
		Type:        m.Type,
		Quantity:    m.Quantity,
		Date:        m.Date,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
