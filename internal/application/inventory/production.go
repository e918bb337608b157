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
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

// ProductionUseCase producciones: transacción multi-pierna
// (entrada del producto terminado, saida por cada insumo) aplicada y revertida como unidad.
type ProductionUseCase struct {
	txRunner       TxRunner
	productionRepo repository.ProductionRepository
	productRepo    repository.ProductRepository
	employeeRepo   repository.EmployeeRepository
	log            *logger.Logger
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(
	txRunner TxRunner,
	productionRepo repository.ProductionRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	log *logger.Logger,
) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:       txRunner,
		productionRepo: productionRepo,
		productRepo:    productRepo,
		employeeRepo:   employeeRepo,
		log:            log,
	}
}

// Create valida todas las piernas antes de tocar el ledger y las aplica en una sola transacción.
func (uc *ProductionUseCase) Create(ctx context.Context, in dto.CreateProductionRequest) (*dto.ProductionResponse, error) {
	now := time.Now()
	responsible, err := uc.resolveResponsible(ctx, in.ResponsibleID)
	if err != nil {
		return nil, err
	}
	p := &entity.Production{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Date:        in.Date.Value(now),
		Responsible: responsible,
		Notes:       in.Notes,
		Inputs:      toInputs(in.Inputs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	legs := inventory.ProductionLegs(p)
	if err := validateLegs(legs); err != nil {
		return nil, err
	}
	uc.warnOrphans(ctx, p.ID, legs)

	err = uc.txRunner.Run(ctx, func(repos Repositories) error {
		if err := repos.Production.Create(ctx, p); err != nil {
			return err
		}
		return applyDeltas(ctx, repos.Stock, now, legs...)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("production_id", p.ID).Int("piernas", len(legs)).Msg("produção registrada")
	return uc.single(ctx, p)
}

// Update revierte todas las piernas almacenadas, mezcla los cambios y aplica todas las nuevas.
func (uc *ProductionUseCase) Update(ctx context.Context, id string, in dto.UpdateProductionRequest) (*dto.ProductionResponse, error) {
	now := time.Now()
	var responsible *entity.EmployeeRef
	if in.ResponsibleID != nil {
		r, err := uc.resolveResponsible(ctx, *in.ResponsibleID)
		if err != nil {
			return nil, err
		}
		responsible = r
	}

	var updated *entity.Production
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		old, err := repos.Production.GetByID(ctx, id)
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
		if in.ResponsibleID != nil {
			next.Responsible = responsible
		}
		if in.Notes != nil {
			next.Notes = *in.Notes
		}
		if in.Inputs != nil {
			next.Inputs = toInputs(*in.Inputs)
		}
		next.UpdatedAt = now

		newLegs := inventory.ProductionLegs(&next)
		if err := validateLegs(newLegs); err != nil {
			return err
		}
		if err := undoDeltas(ctx, repos.Stock, now, inventory.ProductionLegs(old)...); err != nil {
			return err
		}
		if err := applyDeltas(ctx, repos.Stock, now, newLegs...); err != nil {
			return err
		}
		updated = &next
		return repos.Production.Update(ctx, &next)
	})
	if err != nil {
		return nil, err
	}
	uc.warnOrphans(ctx, updated.ID, inventory.ProductionLegs(updated))
	return uc.single(ctx, updated)
}

// Delete revierte la lista completa de piernas y elimina. Id inexistente: no-op.
func (uc *ProductionUseCase) Delete(ctx context.Context, id string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(repos Repositories) error {
		old, err := repos.Production.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return nil
		}
		if err := undoDeltas(ctx, repos.Stock, now, inventory.ProductionLegs(old)...); err != nil {
			return err
		}
		return repos.Production.Delete(ctx, id)
	})
}

// GetByID obtiene una producción.
func (uc *ProductionUseCase) GetByID(ctx context.Context, id string) (*dto.ProductionResponse, error) {
	p, err := uc.productionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.single(ctx, p)
}

// List todas las producciones.
func (uc *ProductionUseCase) List(ctx context.Context) ([]dto.ProductionResponse, error) {
	list, err := uc.productionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.many(ctx, list)
}

// ListByProduct producciones cuyo producto terminado es productID.
func (uc *ProductionUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.ProductionResponse, error) {
	list, err := uc.productionRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.many(ctx, list)
}

// ListByPeriod producciones con fecha en [from, to]; nil = sin límite.
func (uc *ProductionUseCase) ListByPeriod(ctx context.Context, from, to *time.Time) ([]dto.ProductionResponse, error) {
	list, err := uc.productionRepo.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.many(ctx, list)
}

// validateLegs cualquier pierna malformada rechaza la operación completa.
func validateLegs(legs []inventory.Delta) error {
	for _, d := range legs {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// warnOrphans el ledger acepta ids fuera del catálogo; solo se registra.
func (uc *ProductionUseCase) warnOrphans(ctx context.Context, productionID string, legs []inventory.Delta) {
	for _, d := range legs {
		p, err := uc.productRepo.GetByID(ctx, d.ProductID)
		if err == nil && p == nil {
			uc.log.Warn().Str("production_id", productionID).Str("product_id", d.ProductID).Msg("produção: produto fora do catálogo")
		}
	}
}

func (uc *ProductionUseCase) resolveResponsible(ctx context.Context, id string) (*entity.EmployeeRef, error) {
	if id == "" {
		return nil, nil
	}
	e, err := uc.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrInvalidInput
	}
	return &entity.EmployeeRef{ID: e.ID, Name: e.Name}, nil
}

func (uc *ProductionUseCase) single(ctx context.Context, p *entity.Production) (*dto.ProductionResponse, error) {
	names, err := loadProductNames(ctx, uc.productRepo)
	if err != nil {
		return nil, err
	}
	r := toProductionResponse(p, names)
	return &r, nil
}

func (uc *ProductionUseCase) many(ctx context.Context, list []*entity.Production) ([]dto.ProductionResponse, error) {
	names, err := loadProductNames(ctx, uc.productRepo)
	if err != nil {
		return nil, err
	}
	sortProductions(list)
	out := make([]dto.ProductionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductionResponse(p, names))
	}
	return out, nil
}

func toInputs(in []dto.ProductionInputDTO) []entity.ProductionInput {
	out := make([]entity.ProductionInput, 0, len(in))
	for _, i := range in {
		out = append(out, entity.ProductionInput{ProductID: i.ProductID, Quantity: i.Quantity})
	}
	return out
}

func toEmployeeRefDTO(r *entity.EmployeeRef) *dto.EmployeeRefDTO {
	if r == nil {
		return nil
	}
	return &dto.EmployeeRefDTO{ID: r.ID, Name: r.Name}
}

func toProductionResponse(p *entity.Production, names productNames) dto.ProductionResponse {
	inputs := make([]dto.ProductionInputDTO, 0, len(p.Inputs))
	for _, i := range p.Inputs {
		inputs = append(inputs, dto.ProductionInputDTO{
			ProductID:   i.ProductID,
			ProductName: names.name(i.ProductID),
			Quantity:    i.Quantity,
		})
	}
	return dto.ProductionResponse{
		ID:          p.ID,
		ProductID:   p.ProductID,
		ProductName: names.name(p.ProductID),
		Quantity:    p.Quantity,
		Date:        p.Date,
		Responsible: toEmployeeRefDTO(p.Responsible),
		Notes:       p.Notes,
		Inputs:      inputs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
