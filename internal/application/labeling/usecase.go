// Package labeling contiene los casos de uso de etiquetas de validade:
// emisión, agrupación por vencimiento e impresión.
package labeling

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
	"github.com/nicklvs1307/stockfy/internal/domain/search"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

// DefaultStorage se imprime cuando el producto no define modo de conservación.
const DefaultStorage = "RESFRIADO"

// LabelUseCase etiquetas: no afectan el ledger.
type LabelUseCase struct {
	labelRepo    repository.LabelRepository
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	printer      LabelPrinter
	pdf          LabelPDFGenerator
	log          *logger.Logger
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(
	labelRepo repository.LabelRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	printer LabelPrinter,
	pdf LabelPDFGenerator,
	log *logger.Logger,
) *LabelUseCase {
	return &LabelUseCase{
		labelRepo:    labelRepo,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		printer:      printer,
		pdf:          pdf,
		log:          log,
	}
}

// ExpiryFor dataValidade = manipulación + días de validez; días <= 0 cuentan como 1.
func ExpiryFor(handledAt time.Time, shelfLifeDays int) time.Time {
	if shelfLifeDays <= 0 {
		shelfLifeDays = 1
	}
	return handledAt.AddDate(0, 0, shelfLifeDays)
}

// Create emite una etiqueta. Producto y responsable deben existir.
func (uc *LabelUseCase) Create(ctx context.Context, in dto.CreateLabelRequest) (*dto.LabelResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	employee, err := uc.employeeRepo.GetByID(ctx, in.ResponsibleID)
	if err != nil {
		return nil, err
	}
	if product == nil || employee == nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	measure, err := toMeasure(in.Measure)
	if err != nil {
		return nil, err
	}
	shelfLife := product.DefaultShelfLifeDays
	if in.ShelfLifeDays != nil {
		shelfLife = *in.ShelfLifeDays
	}
	if shelfLife <= 0 {
		shelfLife = 1
	}
	storage := product.DefaultStorage
	if storage == "" {
		storage = DefaultStorage
	}

	now := time.Now()
	handled := in.HandledAt.Value(now)
	label := &entity.Label{
		ID: uuid.New().String(),
		Product: entity.LabelProduct{
			ID:            product.ID,
			Name:          product.Name,
			ShelfLifeDays: shelfLife,
			Storage:       storage,
		},
		Responsible:    entity.EmployeeRef{ID: employee.ID, Name: employee.Name},
		HandledAt:      handled,
		ExpiresAt:      in.ExpiresAt.Value(ExpiryFor(handled, shelfLife)),
		Quantity:       quantity,
		Measure:        measure,
		OriginalExpiry: in.OriginalExpiry,
		SIF:            in.SIF,
		Batch:          in.Batch,
		Status:         in.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.labelRepo.Create(ctx, label); err != nil {
		return nil, err
	}
	r := toLabelResponse(label)
	return &r, nil
}

// Update mezcla los cambios. ErrNotFound si id no existe.
func (uc *LabelUseCase) Update(ctx context.Context, id string, in dto.UpdateLabelRequest) (*dto.LabelResponse, error) {
	label, err := uc.labelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, domain.ErrNotFound
	}
	if in.HandledAt != nil && !in.HandledAt.IsZero() {
		label.HandledAt = in.HandledAt.Time
		if in.ExpiresAt == nil || in.ExpiresAt.IsZero() {
			label.ExpiresAt = ExpiryFor(label.HandledAt, label.Product.ShelfLifeDays)
		}
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.IsZero() {
		label.ExpiresAt = in.ExpiresAt.Time
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		label.Quantity = *in.Quantity
	}
	if in.Measure != nil {
		m, err := toMeasure(in.Measure)
		if err != nil {
			return nil, err
		}
		label.Measure = m
	}
	if in.OriginalExpiry != nil {
		label.OriginalExpiry = *in.OriginalExpiry
	}
	if in.SIF != nil {
		label.SIF = *in.SIF
	}
	if in.Batch != nil {
		label.Batch = *in.Batch
	}
	if in.Status != nil {
		label.Status = *in.Status
	}
	label.UpdatedAt = time.Now()
	if err := uc.labelRepo.Update(ctx, label); err != nil {
		return nil, err
	}
	r := toLabelResponse(label)
	return &r, nil
}

// Delete elimina una etiqueta. Id inexistente: no-op.
func (uc *LabelUseCase) Delete(ctx context.Context, id string) error {
	return uc.labelRepo.Delete(ctx, id)
}

// GetByID obtiene una etiqueta.
func (uc *LabelUseCase) GetByID(ctx context.Context, id string) (*dto.LabelResponse, error) {
	label, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	r := toLabelResponse(label)
	return &r, nil
}

// Search busca por nombre del producto o del responsable, por vencimiento. Término vacío = todas.
func (uc *LabelUseCase) Search(ctx context.Context, term string) ([]dto.LabelResponse, error) {
	list, err := uc.labelRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].ExpiresAt.Before(list[j].ExpiresAt) })
	out := make([]dto.LabelResponse, 0, len(list))
	for _, l := range list {
		if search.Match(term, l.Product.Name, l.Responsible.Name) {
			out = append(out, toLabelResponse(l))
		}
	}
	return out, nil
}

// ListByExpiry etiquetas con dataValidade en [from, to]; nil = sin límite. Orden por vencimiento.
func (uc *LabelUseCase) ListByExpiry(ctx context.Context, from, to *time.Time) ([]dto.LabelResponse, error) {
	list, err := uc.labelRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].ExpiresAt.Before(list[j].ExpiresAt) })
	out := make([]dto.LabelResponse, 0, len(list))
	for _, l := range list {
		if from != nil && l.ExpiresAt.Before(*from) {
			continue
		}
		if to != nil && l.ExpiresAt.After(*to) {
			continue
		}
		out = append(out, toLabelResponse(l))
	}
	return out, nil
}

// Expiry buckets relativos al día de ref.
const (
	bucketExpired = iota
	bucketYesterday
	bucketToday
	bucketTomorrow
	bucketFuture
)

func expiryBucket(expiresAt, ref time.Time) int {
	day := startOfDay(expiresAt.In(ref.Location()))
	today := startOfDay(ref)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)
	switch {
	case day.Before(yesterday):
		return bucketExpired
	case day.Equal(yesterday):
		return bucketYesterday
	case day.Equal(today):
		return bucketToday
	case day.Equal(tomorrow):
		return bucketTomorrow
	default:
		return bucketFuture
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GroupByExpiry agrupa por día de vencimiento relativo a ref:
// vencidas (antes de ayer), ontem, hoje, amanha, futuras.
func (uc *LabelUseCase) GroupByExpiry(ctx context.Context, ref time.Time) (*dto.LabelGroupsResponse, error) {
	list, err := uc.labelRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].ExpiresAt.Before(list[j].ExpiresAt) })
	g := &dto.LabelGroupsResponse{
		Expired:   []dto.LabelResponse{},
		Yesterday: []dto.LabelResponse{},
		Today:     []dto.LabelResponse{},
		Tomorrow:  []dto.LabelResponse{},
		Future:    []dto.LabelResponse{},
	}
	for _, l := range list {
		r := toLabelResponse(l)
		switch expiryBucket(l.ExpiresAt, ref) {
		case bucketExpired:
			g.Expired = append(g.Expired, r)
		case bucketYesterday:
			g.Yesterday = append(g.Yesterday, r)
		case bucketToday:
			g.Today = append(g.Today, r)
		case bucketTomorrow:
			g.Tomorrow = append(g.Tomorrow, r)
		default:
			g.Future = append(g.Future, r)
		}
	}
	return g, nil
}

// DeleteExpired elimina las etiquetas vencidas y las que vencieron ayer.
func (uc *LabelUseCase) DeleteExpired(ctx context.Context, ref time.Time) (int, error) {
	list, err := uc.labelRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, l := range list {
		b := expiryBucket(l.ExpiresAt, ref)
		if b != bucketExpired && b != bucketYesterday {
			continue
		}
		if err := uc.labelRepo.Delete(ctx, l.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	if deleted > 0 {
		uc.log.Info().Int("excluidas", deleted).Msg("etiquetas vencidas excluídas")
	}
	return deleted, nil
}

// Print envía la etiqueta a la impresora. copies <= 0 usa la cantidad de la etiqueta.
// Sin impresora la impresión se simula y se informa en el resultado.
func (uc *LabelUseCase) Print(ctx context.Context, id string, copies int) (*dto.PrintResponse, error) {
	label, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if copies <= 0 {
		copies = label.Quantity
	}
	if copies <= 0 {
		copies = 1
	}
	out, err := uc.printer.Print(ctx, label, copies)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("label_id", label.ID).
		Int("copies", out.Copies).
		Bool("simulated", out.Simulated).
		Msg("etiqueta impressa")
	return &dto.PrintResponse{
		LabelID:   label.ID,
		Printed:   out.Printed,
		Simulated: out.Simulated,
		Copies:    out.Copies,
		Message:   out.Message,
	}, nil
}

// RenderPDF genera el PDF de la etiqueta con su código QR.
func (uc *LabelUseCase) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	label, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateLabelPDF(ctx, label)
}

func (uc *LabelUseCase) get(ctx context.Context, id string) (*entity.Label, error) {
	label, err := uc.labelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, domain.ErrNotFound
	}
	return label, nil
}

// toMeasure valor vacío = sin medida; no numérico o negativo -> ErrInvalidInput.
func toMeasure(m *dto.MeasureDTO) (*entity.Measure, error) {
	if m == nil || strings.TrimSpace(m.Value) == "" {
		return nil, nil
	}
	v, err := entity.ParseMeasureValue(m.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: medida %q", domain.ErrInvalidInput, m.Value)
	}
	return &entity.Measure{Value: v, Unit: strings.TrimSpace(m.Unit)}, nil
}

func toLabelResponse(l *entity.Label) dto.LabelResponse {
	r := dto.LabelResponse{
		ID: l.ID,
		Product: dto.LabelProductDTO{
			ID:            l.Product.ID,
			Name:          l.Product.Name,
			ShelfLifeDays: l.Product.ShelfLifeDays,
			Storage:       l.Product.Storage,
		},
		Responsible:    dto.EmployeeRefDTO{ID: l.Responsible.ID, Name: l.Responsible.Name},
		HandledAt:      l.HandledAt,
		ExpiresAt:      l.ExpiresAt,
		Quantity:       l.Quantity,
		OriginalExpiry: l.OriginalExpiry,
		SIF:            l.SIF,
		Batch:          l.Batch,
		Status:         l.Status,
		CreatedAt:      l.CreatedAt,
	}
	if l.Measure != nil {
		r.Measure = &dto.MeasureDTO{Value: l.Measure.Value.String(), Unit: l.Measure.Unit}
	}
	return r
}
