package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/stockfy/internal/application/dto"
	"github.com/nicklvs1307/stockfy/internal/application/usecase"
	"github.com/nicklvs1307/stockfy/internal/domain"
	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func TestProductUseCase_CreateAndDuplicateCode(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	categories := usecase.NewCategoryUseCase(s.Categories())
	products := usecase.NewProductUseCase(s.Products(), s.Categories())

	cat, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: "Grãos"})
	require.NoError(t, err)

	p, err := products.Create(ctx, dto.CreateProductRequest{
		Name: "  Arroz ", Code: "ARZ", CategoryID: cat.ID, DefaultShelfLifeDays: 3, DefaultStorage: "congelado", Status: "ativo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Arroz", p.Name)
	assert.Equal(t, "CONGELADO", p.DefaultStorage)
	assert.Equal(t, entity.StatusActive, p.Status)
	assert.Equal(t, "Grãos", p.CategoryName)

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Outro", Code: "arz"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Sem categoria", CategoryID: "nao-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "X", Status: "pausado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_UpdateKeepsOwnCode(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	products := usecase.NewProductUseCase(s.Products(), s.Categories())

	a, err := products.Create(ctx, dto.CreateProductRequest{Name: "Arroz", Code: "A1"})
	require.NoError(t, err)
	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Feijão", Code: "F1"})
	require.NoError(t, err)

	out, err := products.Update(ctx, a.ID, dto.UpdateProductRequest{Code: strPtr("A1"), Status: strPtr("inativo")})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, out.Status)

	_, err = products.Update(ctx, a.ID, dto.UpdateProductRequest{Code: strPtr("f1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = products.Update(ctx, "nao-existe", dto.UpdateProductRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = products.GetByID(ctx, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_SearchFoldsAccentsAndFiltersCategory(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	categories := usecase.NewCategoryUseCase(s.Categories())
	products := usecase.NewProductUseCase(s.Products(), s.Categories())

	c1, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: "Carnes"})
	require.NoError(t, err)
	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Pão", CategoryID: ""})
	require.NoError(t, err)
	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Acém", CategoryID: c1.ID})
	require.NoError(t, err)
	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Alcatra", CategoryID: c1.ID})
	require.NoError(t, err)

	all, err := products.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Acém", "Alcatra", "Pão"}, []string{all[0].Name, all[1].Name, all[2].Name})

	res, err := products.Search(ctx, "PAO", "")
	require.NoError(t, err)
	require.Len(t, res, 1)

	res, err = products.List(ctx, c1.ID)
	require.NoError(t, err)
	assert.Len(t, res, 2)

	require.NoError(t, products.Delete(ctx, res[0].ID))
	require.NoError(t, products.Delete(ctx, "nao-existe"))
	res, err = products.List(ctx, c1.ID)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestEmployeeUseCase_SearchActiveOnly(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	employees := usecase.NewEmployeeUseCase(s.Employees())

	_, err := employees.Create(ctx, dto.CreateEmployeeRequest{Name: "Ana", Role: "Cozinheira"})
	require.NoError(t, err)
	_, err = employees.Create(ctx, dto.CreateEmployeeRequest{Name: "Bruno", Role: "Estoquista", Status: "inativo"})
	require.NoError(t, err)

	all, err := employees.Search(ctx, "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := employees.Search(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Ana", active[0].Name)

	byRole, err := employees.Search(ctx, "estoque", false)
	require.NoError(t, err)
	assert.Empty(t, byRole)
	byRole, err = employees.Search(ctx, "estoqu", false)
	require.NoError(t, err)
	assert.Len(t, byRole, 1)

	_, err = employees.Create(ctx, dto.CreateEmployeeRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
