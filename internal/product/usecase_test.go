package product

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sellerhub/internal/domain"
	apperrors "sellerhub/internal/errors"
)

type mockService struct {
	CreateFunc                    func(ctx context.Context, p domain.Product) (*domain.Product, error)
	ListByTenantFunc              func(ctx context.Context, tenantID domain.TenantID) ([]domain.Product, error)
	GetProductsByIDsAndTenantFunc func(ctx context.Context, ids []int, tenantID domain.TenantID) ([]domain.Product, []int, error)
	DeleteFunc                    func(ctx context.Context, productID int, tenantID domain.TenantID) (bool, error)
}

func (m *mockService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return m.CreateFunc(ctx, p)
}

func (m *mockService) ListByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Product, error) {
	return m.ListByTenantFunc(ctx, tenantID)
}

func (m *mockService) GetProductsByIDsAndTenant(ctx context.Context, ids []int, tenantID domain.TenantID) ([]domain.Product, []int, error) {
	return m.GetProductsByIDsAndTenantFunc(ctx, ids, tenantID)
}

func (m *mockService) Delete(ctx context.Context, productID int, tenantID domain.TenantID) (bool, error) {
	return m.DeleteFunc(ctx, productID, tenantID)
}

type mockResolver struct {
	ResolveFunc  func(ctx context.Context, principalID int) (domain.TenantID, error)
	SettingsFunc func(ctx context.Context, tenantID domain.TenantID) (domain.TenantSettings, error)
}

func (m *mockResolver) Resolve(ctx context.Context, principalID int) (domain.TenantID, error) {
	return m.ResolveFunc(ctx, principalID)
}

func (m *mockResolver) Settings(ctx context.Context, tenantID domain.TenantID) (domain.TenantSettings, error) {
	return m.SettingsFunc(ctx, tenantID)
}

func tenantResolver(tenantID domain.TenantID, lowStock int) *mockResolver {
	return &mockResolver{
		ResolveFunc: func(ctx context.Context, principalID int) (domain.TenantID, error) {
			return tenantID, nil
		},
		SettingsFunc: func(ctx context.Context, id domain.TenantID) (domain.TenantSettings, error) {
			return domain.TenantSettings{TenantID: id, LowStockThreshold: lowStock}, nil
		},
	}
}

func TestCreateProduct_StoresUnderTenant(t *testing.T) {
	svc := &mockService{
		CreateFunc: func(ctx context.Context, p domain.Product) (*domain.Product, error) {
			assert.Equal(t, domain.TenantID(1), p.TenantID)
			p.ID = 5
			return &p, nil
		},
	}
	uc := NewUseCase(svc, tenantResolver(1, 5), zap.NewNop())

	dto, err := uc.CreateProduct(context.Background(), 7, CreateProductRequest{
		Name:          "Mug",
		SellPrice:     decimal.RequireFromString("5"),
		CostPrice:     decimal.RequireFromString("3.5"),
		StockQuantity: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, dto.ID)
	assert.Equal(t, "5.00", dto.SellPrice)
	assert.Equal(t, "3.50", dto.CostPrice)
	assert.True(t, dto.LowStock)
}

func TestCreateProduct_Validation(t *testing.T) {
	uc := NewUseCase(&mockService{}, tenantResolver(1, 5), zap.NewNop())

	_, err := uc.CreateProduct(context.Background(), 7, CreateProductRequest{
		SellPrice:     decimal.RequireFromString("-1"),
		StockQuantity: -2,
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 3)
}

func TestListProducts_SettingsFailureFallsBackToDefault(t *testing.T) {
	svc := &mockService{
		ListByTenantFunc: func(ctx context.Context, tenantID domain.TenantID) ([]domain.Product, error) {
			return []domain.Product{{ID: 1, StockQuantity: 5}, {ID: 2, StockQuantity: 6}}, nil
		},
	}
	resolver := tenantResolver(1, 0)
	resolver.SettingsFunc = func(ctx context.Context, id domain.TenantID) (domain.TenantSettings, error) {
		return domain.TenantSettings{}, errors.New("db down")
	}

	dtos, err := NewUseCase(svc, resolver, zap.NewNop()).ListProducts(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.True(t, dtos[0].LowStock)
	assert.False(t, dtos[1].LowStock)
}

func TestSearchProducts_Validation(t *testing.T) {
	uc := NewUseCase(&mockService{}, tenantResolver(1, 5), zap.NewNop())

	_, err := uc.SearchProducts(context.Background(), 7, SearchProductsRequest{})
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)

	_, err = uc.SearchProducts(context.Background(), 7, SearchProductsRequest{ProductIDs: []int{1, -1}})
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)

	ids := make([]int, maxSearchIDs+1)
	for i := range ids {
		ids[i] = i + 1
	}
	_, err = uc.SearchProducts(context.Background(), 7, SearchProductsRequest{ProductIDs: ids})
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestSearchProducts_EmptyNotFoundIsNotNull(t *testing.T) {
	svc := &mockService{
		GetProductsByIDsAndTenantFunc: func(ctx context.Context, ids []int, tenantID domain.TenantID) ([]domain.Product, []int, error) {
			return []domain.Product{{ID: 1, StockQuantity: 50}}, nil, nil
		},
	}

	resp, err := NewUseCase(svc, tenantResolver(1, 5), zap.NewNop()).SearchProducts(context.Background(), 7, SearchProductsRequest{ProductIDs: []int{1}})

	require.NoError(t, err)
	assert.NotNil(t, resp.NotFound)
	assert.Empty(t, resp.NotFound)
	assert.Len(t, resp.Products, 1)
}

func TestDeleteProduct(t *testing.T) {
	svc := &mockService{
		DeleteFunc: func(ctx context.Context, productID int, tenantID domain.TenantID) (bool, error) {
			assert.Equal(t, domain.TenantID(1), tenantID)
			return true, nil
		},
	}

	resp, err := NewUseCase(svc, tenantResolver(1, 5), zap.NewNop()).DeleteProduct(context.Background(), 7, 3)

	require.NoError(t, err)
	assert.Equal(t, 3, resp.ProductID)
	assert.True(t, resp.Archived)
}
