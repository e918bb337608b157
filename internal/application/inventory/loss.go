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

// LossUseCase pérdidas: siempre saida; editar devuelve la cantidad vieja como entrada y resta la nueva.
type LossUseCase struct {
	txRunner    TxRunner
	lossRepo    repository.LossRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewLossUseCase construye el caso de uso.
func NewLossUseCase(
	txRunner TxRunner,
	lossRepo repository.LossRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *LossUseCase {
	return &LossUseCase{txRunner: txRunner, lossRepo: lossRepo, productRepo: productRepo, log: log}
}

// Create registra la pérdida y resta la cantidad del ledger.
func (uc *LossUseCase) Create(ctx context.Context, in dto.CreateLossRequest) (*dto.LossResponse, error) {
	now := time.Now()
	l := &entity.Loss{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Date:      in.Date.Value(today(now)),
		Reason:    in.Reason,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := inventory.LossDelta(l).Validate(); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		if err := repos.Losses.Create(ctx, l); err != nil {
			return err
		}
		return applyDeltas(ctx, repos.Stock, now, inventory.LossDelta(l))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("loss_id", l.ID).Int64("quantidade", l.Quantity).Str("motivo", l.Reason).Msg("perda registrada")
	return uc.single(ctx, l)
}

// Update reversa la pérdida almacenada y aplica la nueva. ErrNotFound si id no existe.
func (uc *LossUseCase) Update(ctx context.Context, id string, in dto.UpdateLossRequest) (*dto.LossResponse, error) {
	now := time.Now()
	var updated *entity.Loss
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		old, err := repos.Losses.GetByID(ctx, id)
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
		if in.Quantity != nil {
			next.Quantity = *in.Quantity
		}
		if in.Date != nil && !in.Date.IsZero() {
			next.Date = in.Date.Time
		}
		if in.Reason != nil {
			next.Reason = *in.Reason
		}
		if in.Notes != nil {
			next.Notes = *in.Notes
		}
		next.UpdatedAt = now
		if err := inventory.LossDelta(&next).Validate(); err != nil {
			return err
		}
		if err := undoDeltas(ctx, repos.Stock, now, inventory.LossDelta(old)); err != nil {
			return err
		}
		if err := applyDeltas(ctx, repos.Stock, now, inventory.LossDelta(&next)); err != nil {
			return err
		}
		updated = &next
		return repos.Losses.Update(ctx, &next)
	})
	if err != nil {
		return nil, err
	}
	return uc.single(ctx, updated)
}

// Delete devuelve la cantidad al ledger (entrada) y elimina. Id inexistente: no-op.
func (uc *LossUseCase) Delete(ctx context.Context, id string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(repos Repositories) error {
		old, err := repos.Losses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return nil
		}
		if err := undoDeltas(ctx, repos.Stock, now, inventory.LossDelta(old)); err != nil {
			return err
		}
		return repos.Losses.Delete(ctx, id)
	})
}

// GetByID obtiene una pérdida.
func (uc *LossUseCase) GetByID(ctx context.Context, id string) (*dto.LossResponse, error) {
	l, err := uc.lossRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return uc.single(ctx, l)
}

// List todas las pérdidas.
func (uc *LossUseCase) List(ctx context.Context) ([]dto.LossResponse, error) {
	return uc.Search(ctx, "")
}

// Search filtra por producto, motivo u observación.
func (uc *LossUseCase) Search(ctx context.Context, term string) ([]dto.LossResponse, error) {
	list, err := uc.lossRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortLosses(list)
	names, err := loadProductNames(ctx, uc.productRepo)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LossResponse, 0, len(list))
	for _, l := range list {
		if !search.Match(term, names.name(l.ProductID), l.Reason, l.Notes) {
			continue
		}
		out = append(out, toLossResponse(l, names))
	}
	return out, nil
}

func (uc *LossUseCase) single(ctx context.Context, l *entity.Loss) (*dto.LossResponse, error) {
	names, err := loadProductNames(ctx, uc.productRepo)
	if err != nil {
		return nil, err
	}
	r := toLossResponse(l, names)
	return &r, nil
}

func toLossResponse(l *entity.Loss, names productNames) dto.LossResponse {
	return dto.LossResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: names.name(l.ProductID),
		Quantity:    l.Quantity,
		Date:        l.Date,
		Reason:      l.Reason,
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
