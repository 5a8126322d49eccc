package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sellerhub/internal/domain"
	apperrors "sellerhub/internal/errors"
)

type mockResolver struct {
	ResolveFunc func(ctx context.Context, principalID int) (domain.TenantID, error)
}

func (m *mockResolver) Resolve(ctx context.Context, principalID int) (domain.TenantID, error) {
	return m.ResolveFunc(ctx, principalID)
}

func resolvesTo(tenantID domain.TenantID) *mockResolver {
	return &mockResolver{
		ResolveFunc: func(ctx context.Context, principalID int) (domain.TenantID, error) {
			return tenantID, nil
		},
	}
}

type mockRepository struct {
	InsertFunc          func(ctx context.Context, c domain.Customer) (int, error)
	ExistsByPhoneFunc   func(ctx context.Context, tenantID domain.TenantID, phone string) (bool, error)
	FindByIDFunc        func(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Customer, error)
	FindAllByTenantFunc func(ctx context.Context, tenantID domain.TenantID) ([]domain.Customer, error)
}

func (m *mockRepository) Insert(ctx context.Context, c domain.Customer) (int, error) {
	return m.InsertFunc(ctx, c)
}

func (m *mockRepository) ExistsByPhone(ctx context.Context, tenantID domain.TenantID, phone string) (bool, error) {
	return m.ExistsByPhoneFunc(ctx, tenantID, phone)
}

func (m *mockRepository) FindByID(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Customer, error) {
	return m.FindByIDFunc(ctx, id, tenantID)
}

func (m *mockRepository) FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Customer, error) {
	return m.FindAllByTenantFunc(ctx, tenantID)
}

func validRequest() CreateCustomerRequest {
	return CreateCustomerRequest{Name: " Ayesha ", Phone: "0300-1234567", City: "Lahore", Address: "Mall Road 1"}
}

func TestCreate_Success(t *testing.T) {
	var inserted domain.Customer
	repo := &mockRepository{
		ExistsByPhoneFunc: func(ctx context.Context, tenantID domain.TenantID, phone string) (bool, error) {
			assert.Equal(t, domain.TenantID(1), tenantID)
			return false, nil
		},
		InsertFunc: func(ctx context.Context, c domain.Customer) (int, error) {
			inserted = c
			return 12, nil
		},
	}

	c, err := NewService(repo, resolvesTo(1), zap.NewNop()).Create(context.Background(), 7, validRequest())

	require.NoError(t, err)
	assert.Equal(t, 12, c.ID)
	assert.Equal(t, domain.TenantID(1), inserted.TenantID, "rows are stored under the tenant, not the principal")
	assert.Equal(t, "Ayesha", inserted.Name)
	assert.Zero(t, inserted.TotalOrders)
}

func TestCreate_DuplicatePhone(t *testing.T) {
	repo := &mockRepository{
		ExistsByPhoneFunc: func(ctx context.Context, tenantID domain.TenantID, phone string) (bool, error) {
			return true, nil
		},
		InsertFunc: func(ctx context.Context, c domain.Customer) (int, error) {
			t.Fatal("must not insert")
			return 0, nil
		},
	}

	_, err := NewService(repo, resolvesTo(1), zap.NewNop()).Create(context.Background(), 1, validRequest())

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestCreate_MissingFields(t *testing.T) {
	svc := NewService(&mockRepository{}, resolvesTo(1), zap.NewNop())

	_, err := svc.Create(context.Background(), 1, CreateCustomerRequest{Name: "  ", Phone: "1"})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	fields := []string{}
	for _, d := range ve.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"name", "city", "address"}, fields)
}

func TestGet_UsesResolvedTenant(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Customer, error) {
			if tenantID != 1 {
				return nil, apperrors.NewNotFoundError("customer not found")
			}
			return &domain.Customer{ID: id, TenantID: tenantID}, nil
		},
	}

	c, err := NewService(repo, resolvesTo(1), zap.NewNop()).Get(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.ID)

	_, err = NewService(repo, resolvesTo(2), zap.NewNop()).Get(context.Background(), 8, 3)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestList_ResolverFailure(t *testing.T) {
	resolver := &mockResolver{
		ResolveFunc: func(ctx context.Context, principalID int) (domain.TenantID, error) {
			return 0, apperrors.NewConfigurationError("employee 7 is not linked to an owner")
		},
	}

	_, err := NewService(&mockRepository{}, resolver, zap.NewNop()).List(context.Background(), 7)

	_, ok := apperrors.IsConfigurationError(err)
	assert.True(t, ok)
}
