package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/domain/repository"
	"github.com/nicklvs1307/stockfy/internal/domain/search"
)

// ProductUseCase casos de uso CRUD para productos. El saldo se maneja vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto. Código duplicado -> ErrDuplicate; categoría inexistente -> ErrInvalidInput.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.DefaultShelfLifeDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if err := uc.checkCode(ctx, "", in.Code); err != nil {
		return nil, err
	}
	category, err := uc.checkCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:                   uuid.New().String(),
		Name:                 name,
		Code:                 strings.TrimSpace(in.Code),
		CategoryID:           in.CategoryID,
		DefaultShelfLifeDays: in.DefaultShelfLifeDays,
		DefaultStorage:       strings.ToUpper(strings.TrimSpace(in.DefaultStorage)),
		Status:               status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, category), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryOf(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, category), nil
}

// Update actualiza un producto. No toca el ledger.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Code != nil {
		if err := uc.checkCode(ctx, product.ID, *in.Code); err != nil {
			return nil, err
		}
		product.Code = strings.TrimSpace(*in.Code)
	}
	if in.CategoryID != nil {
		if _, err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.DefaultShelfLifeDays != nil {
		if *in.DefaultShelfLifeDays < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.DefaultShelfLifeDays = *in.DefaultShelfLifeDays
	}
	if in.DefaultStorage != nil {
		product.DefaultStorage = strings.ToUpper(strings.TrimSpace(*in.DefaultStorage))
	}
	if in.Status != nil {
		status, err := normalizeStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		product.Status = status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	category, err := uc.categoryOf(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, category), nil
}

// List lista productos ordenados por nombre; categoryID vacío = todas.
func (uc *ProductUseCase) List(ctx context.Context, categoryID string) ([]dto.ProductResponse, error) {
	return uc.Search(ctx, "", categoryID)
}

// Search busca por nombre o código, opcionalmente dentro de una categoría.
func (uc *ProductUseCase) Search(ctx context.Context, term, categoryID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		if !search.Match(term, p.Name, p.Code) {
			continue
		}
		items = append(items, *toProductResponse(p, byID[p.CategoryID]))
	}
	sort.SliceStable(items, func(i, j int) bool { return search.Fold(items[i].Name) < search.Fold(items[j].Name) })
	return items, nil
}

// Delete elimina un producto por ID. El saldo queda huérfano en el ledger.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) checkCode(ctx context.Context, selfID, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, id string) (*entity.Category, error) {
	if id == "" {
		return nil, nil
	}
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrInvalidInput
	}
	return c, nil
}

func (uc *ProductUseCase) categoryOf(ctx context.Context, id string) (*entity.Category, error) {
	if id == "" {
		return nil, nil
	}
	return uc.categoryRepo.GetByID(ctx, id)
}

// normalizeStatus vacío -> active; acepta también ativo/inativo.
func normalizeStatus(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", entity.StatusActive, "ativo":
		return entity.StatusActive, nil
	case entity.StatusInactive, "inativo":
		return entity.StatusInactive, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

func toProductResponse(p *entity.Product, category *entity.Category) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	r := &dto.ProductResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Code:                 p.Code,
		CategoryID:           p.CategoryID,
		DefaultShelfLifeDays: p.DefaultShelfLifeDays,
		DefaultStorage:       p.DefaultStorage,
		Status:               p.Status,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
	if category != nil {
		r.CategoryName = category.Name
	}
	return r
}
