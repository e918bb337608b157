package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/inventory"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

// applyDeltas valida todas las piernas antes de escribir y luego, por pierna,
// bloquea la fila (GetForUpdate), suma el delta con signo y persiste.
func applyDeltas(ctx context.Context, stock repository.StockRepository, now time.Time, deltas ...inventory.Delta) error {
	for _, d := range deltas {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return writeDeltas(ctx, stock, now, deltas)
}

// undoDeltas aplica el inverso de piernas ya almacenadas. Las piernas sin efecto
// (producto vacío o cantidad cero en datos heredados) se omiten.
func undoDeltas(ctx context.Context, stock repository.StockRepository, now time.Time, deltas ...inventory.Delta) error {
	undo := make([]inventory.Delta, 0, len(deltas))
	for _, d := range inventory.ReverseAll(deltas) {
		if d.ProductID == "" || d.Quantity == 0 {
			continue
		}
		undo = append(undo, d)
	}
	return writeDeltas(ctx, stock, now, undo)
}

func writeDeltas(ctx context.Context, stock repository.StockRepository, now time.Time, deltas []inventory.Delta) error {
	for _, d := range deltas {
		bal, err := stock.GetForUpdate(ctx, d.ProductID)
		if err != nil {
			return err
		}
		bal.Quantity += d.Signed()
		bal.UpdatedAt = now
		if err := stock.Upsert(ctx, bal); err != nil {
			return err
		}
	}
	return nil
}

// productNames resuelve id -> nombre para las respuestas; ids huérfanos muestran UnknownProductName.
type productNames map[string]string

func loadProductNames(ctx context.Context, repo repository.ProductRepository) (productNames, error) {
	list, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(productNames, len(list))
	for _, p := range list {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (n productNames) name(id string) string {
	if v, ok := n[id]; ok {
		return v
	}
	return entity.UnknownProductName
}

// today inicio del día local de t.
func today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LedgerUseCase lectura del ledger y delta directo.
type LedgerUseCase struct {
	txRunner    TxRunner
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, stockRepo: stockRepo, productRepo: productRepo, log: log}
}

// GetBalance devuelve el saldo del producto; 0 si nunca tuvo movimientos.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, productID string) (int64, error) {
	bal, err := uc.stockRepo.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	return bal.Quantity, nil
}

// ApplyDelta suma (entrada) o resta (saida) quantity. El saldo puede quedar negativo.
func (uc *LedgerUseCase) ApplyDelta(ctx context.Context, in dto.ApplyDeltaRequest) (*dto.BalanceResponse, error) {
	d := inventory.Delta{ProductID: in.ProductID, Type: in.Type, Quantity: in.Quantity}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	var out *entity.StockBalance
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		if err := applyDeltas(ctx, repos.Stock, now, d); err != nil {
			return err
		}
		bal, err := repos.Stock.Get(ctx, d.ProductID)
		out = bal
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("product_id", d.ProductID).Int64("delta", d.Signed()).Int64("saldo", out.Quantity).Msg("ledger: delta aplicado")
	names, err := loadProductNames(ctx, uc.productRepo)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		ProductID:   out.ProductID,
		ProductName: names.name(out.ProductID),
		Quantity:    out.Quantity,
		UpdatedAt:   out.UpdatedAt,
	}, nil
}

// ListBalances todas las entradas del ledger, incluidas las de productos eliminados.
func (uc *LedgerUseCase) ListBalances(ctx context.Context) ([]dto.BalanceResponse, error) {
	list, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := loadProductNames(ctx, uc.productRepo)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.BalanceResponse{
			ProductID:   b.ProductID,
			ProductName: names.name(b.ProductID),
			Quantity:    b.Quantity,
			UpdatedAt:   b.UpdatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}
