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

// CountUseCase contagens físicas. El saldo anterior se toma del ledger dentro de la
// misma transacción; el ajuste solo ocurre con AdjustStock y diferencia distinta de cero.
// Las contagens no se editan ni eliminan.
type CountUseCase struct {
	txRunner     TxRunner
	countRepo    repository.CountRepository
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	log          *logger.Logger
}

// NewCountUseCase construye el caso de uso.
func NewCountUseCase(
	txRunner TxRunner,
	countRepo repository.CountRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	log *logger.Logger,
) *CountUseCase {
	return &CountUseCase{
		txRunner:     txRunner,
		countRepo:    countRepo,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		log:          log,
	}
}

type countDraft struct {
	product  entity.ProductRef
	quantity int64
	adjust   bool
	notes    string
}

// Create registra una contagem. Cantidad contada cero es válida ("no se encontró nada").
func (uc *CountUseCase) Create(ctx context.Context, in dto.CreateCountRequest) (*dto.CountResponse, error) {
	now := time.Now()
	draft, err := uc.draft(ctx, in.ProductID, in.Quantity, in.AdjustStock, in.Notes)
	if err != nil {
		return nil, err
	}
	responsible, err := uc.resolveResponsible(ctx, in.ResponsibleID)
	if err != nil {
		return nil, err
	}
	ts := in.Timestamp.Value(now)

	var created *entity.StockCount
	err = uc.txRunner.Run(ctx, func(repos Repositories) error {
		c, err := uc.record(ctx, repos, draft, responsible, ts, now)
		created = c
		return err
	})
	if err != nil {
		return nil, err
	}
	r := toCountResponse(created)
	return &r, nil
}

// CreateBatch modo lista: varias contagens en una transacción. AdjustStock por defecto true.
func (uc *CountUseCase) CreateBatch(ctx context.Context, in dto.CreateCountBatchRequest) ([]dto.CountResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	responsible, err := uc.resolveResponsible(ctx, in.ResponsibleID)
	if err != nil {
		return nil, err
	}
	drafts := make([]countDraft, 0, len(in.Items))
	for _, it := range in.Items {
		adjust := true
		if it.AdjustStock != nil {
			adjust = *it.AdjustStock
		}
		d, err := uc.draft(ctx, it.ProductID, it.Quantity, adjust, it.Notes)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}

	created := make([]*entity.StockCount, 0, len(drafts))
	err = uc.txRunner.Run(ctx, func(repos Repositories) error {
		for _, d := range drafts {
			c, err := uc.record(ctx, repos, d, responsible, now, now)
			if err != nil {
				return err
			}
			created = append(created, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCountResponses(created), nil
}

// GetByID obtiene una contagem.
func (uc *CountUseCase) GetByID(ctx context.Context, id string) (*dto.CountResponse, error) {
	c, err := uc.countRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	r := toCountResponse(c)
	return &r, nil
}

// List todas las contagens.
func (uc *CountUseCase) List(ctx context.Context) ([]dto.CountResponse, error) {
	list, err := uc.countRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortCounts(list)
	return toCountResponses(list), nil
}

// ListByProduct filtro exacto por el id del producto embebido.
func (uc *CountUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.CountResponse, error) {
	list, err := uc.countRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	sortCounts(list)
	return toCountResponses(list), nil
}

// ListByPeriod rango inclusivo sobre timestamp; nil = mínimo/máximo.
func (uc *CountUseCase) ListByPeriod(ctx context.Context, from, to *time.Time) ([]dto.CountResponse, error) {
	list, err := uc.countRepo.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	sortCounts(list)
	return toCountResponses(list), nil
}

func (uc *CountUseCase) draft(ctx context.Context, productID string, quantity int64, adjust bool, notes string) (countDraft, error) {
	if productID == "" {
		return countDraft{}, domain.ErrInvalidInput
	}
	if quantity < 0 {
		return countDraft{}, domain.ErrInvalidQuantity
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return countDraft{}, err
	}
	if p == nil {
		return countDraft{}, domain.ErrInvalidInput
	}
	return countDraft{
		product:  entity.ProductRef{ID: p.ID, Name: p.Name},
		quantity: quantity,
		adjust:   adjust,
		notes:    notes,
	}, nil
}

// record toma el saldo bloqueado, deriva la diferencia, persiste y ajusta si corresponde.
func (uc *CountUseCase) record(
	ctx context.Context,
	repos Repositories,
	d countDraft,
	responsible *entity.EmployeeRef,
	ts, now time.Time,
) (*entity.StockCount, error) {
	bal, err := repos.Stock.GetForUpdate(ctx, d.product.ID)
	if err != nil {
		return nil, err
	}
	c := &entity.StockCount{
		ID:              uuid.New().String(),
		Product:         d.product,
		Responsible:     responsible,
		Quantity:        d.quantity,
		PreviousBalance: bal.Quantity,
		Difference:      d.quantity - bal.Quantity,
		AdjustStock:     d.adjust,
		Notes:           d.notes,
		Timestamp:       ts,
	}
	if err := repos.Counts.Create(ctx, c); err != nil {
		return nil, err
	}
	if !c.AdjustStock {
		return c, nil
	}
	delta, ok := inventory.CountDelta(c.Product.ID, c.Difference)
	if !ok {
		return c, nil
	}
	if err := applyDeltas(ctx, repos.Stock, now, delta); err != nil {
		return nil, err
	}
	uc.log.Debug().Str("count_id", c.ID).Str("product_id", c.Product.ID).Int64("diferenca", c.Difference).Msg("contagem ajustou o saldo")
	return c, nil
}

func (uc *CountUseCase) resolveResponsible(ctx context.Context, id string) (*entity.EmployeeRef, error) {
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

func toCountResponses(list []*entity.StockCount) []dto.CountResponse {
	out := make([]dto.CountResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCountResponse(c))
	}
	return out
}

func toCountResponse(c *entity.StockCount) dto.CountResponse {
	return dto.CountResponse{
		ID:              c.ID,
		Product:         dto.ProductRefDTO{ID: c.Product.ID, Name: c.Product.Name},
		Responsible:     toEmployeeRefDTO(c.Responsible),
		Quantity:        c.Quantity,
		PreviousBalance: c.PreviousBalance,
		Difference:      c.Difference,
		AdjustStock:     c.AdjustStock,
		Notes:           c.Notes,
		Timestamp:       c.Timestamp,
	}
}
