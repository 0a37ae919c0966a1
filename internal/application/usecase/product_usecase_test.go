package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/testutil"
)

func TestProductCreate_Valido(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(testutil.NewProductRepo(store))

	out, err := uc.Create(dto.CreateProductRequest{
		Code:     "CAFE-500",
		Name:     "Café molido 500g",
		Price:    decimal.NewFromInt(25),
		Stock:    10,
		MinStock: 5,
	})

	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.True(t, out.IsActive)
	assert.False(t, out.LowStock, "10 > 5 no es stock bajo")
}

func TestProductCreate_Invalido(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(testutil.NewProductRepo(store))

	cases := []dto.CreateProductRequest{
		{Name: "sin código", Price: decimal.NewFromInt(1)},
		{Code: "X-1", Price: decimal.NewFromInt(1)},                      // sin nombre
		{Code: "X-1", Name: "precio cero"},                               // price = 0
		{Code: "X-1", Name: "precio negativo", Price: decimal.NewFromInt(-5)},
		{Code: "X-1", Name: "stock negativo", Price: decimal.NewFromInt(1), Stock: -1},
	}
	for _, in := range cases {
		_, err := uc.Create(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(testutil.NewProductRepo(store))

	_, err := uc.Create(dto.CreateProductRequest{Code: "CAFE-500", Name: "a", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateProductRequest{Code: "CAFE-500", Name: "b", Price: decimal.NewFromInt(2)})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_ParcialSinTocarStock(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(testutil.NewProductRepo(store))

	created, err := uc.Create(dto.CreateProductRequest{
		Code: "CAFE-500", Name: "Café", Price: decimal.NewFromInt(25), Stock: 10, MinStock: 5,
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(30)
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{Price: &newPrice})

	require.NoError(t, err)
	assert.True(t, out.Price.Equal(newPrice))
	assert.Equal(t, "Café", out.Name, "los campos ausentes no cambian")
	assert.Equal(t, 10, store.Products[created.ID].Stock, "el stock no es editable por catálogo")
}

func TestProductUpdate_PrecioInvalido(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(testutil.NewProductRepo(store))

	created, err := uc.Create(dto.CreateProductRequest{Code: "X-1", Name: "a", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	zero := decimal.Zero
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{Price: &zero})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete_EsSoftDelete(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(testutil.NewProductRepo(store))

	created, err := uc.Create(dto.CreateProductRequest{Code: "X-1", Name: "a", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))

	// La fila sobrevive, solo queda inactiva y deja de listarse.
	stored, ok := store.Products[created.ID]
	require.True(t, ok, "el soft delete nunca borra la fila")
	assert.False(t, stored.IsActive)

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "un producto inactivo no se expone por catálogo")
}

func TestProductDelete_Inexistente(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(testutil.NewProductRepo(store))

	assert.ErrorIs(t, uc.Delete(404), domain.ErrNotFound)
}
