package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerhub/internal/domain"
	apperrors "sellerhub/internal/errors"
	"sellerhub/internal/infrastructure/mysql"
)

type mockProductRepository struct {
	FindByIDForUpdateFunc   func(ctx context.Context, tx mysql.Tx, id int) (*domain.Product, error)
	UpdateStockQuantityFunc func(ctx context.Context, tx mysql.Tx, id int, quantity int) error
}

func (m *mockProductRepository) FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int) (*domain.Product, error) {
	return m.FindByIDForUpdateFunc(ctx, tx, id)
}

func (m *mockProductRepository) UpdateStockQuantity(ctx context.Context, tx mysql.Tx, id int, quantity int) error {
	return m.UpdateStockQuantityFunc(ctx, tx, id, quantity)
}

func productRepo(p domain.Product, written *int) *mockProductRepository {
	return &mockProductRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx mysql.Tx, id int) (*domain.Product, error) {
			if id != p.ID {
				return nil, apperrors.NewNotFoundError("product not found")
			}
			copied := p
			return &copied, nil
		},
		UpdateStockQuantityFunc: func(ctx context.Context, tx mysql.Tx, id int, quantity int) error {
			*written = quantity
			return nil
		},
	}
}

func mug(stock int) domain.Product {
	return domain.Product{
		ID:            1,
		TenantID:      domain.TenantID(10),
		Name:          "Mug",
		SellPrice:     decimal.RequireFromString("5.00"),
		CostPrice:     decimal.RequireFromString("3.00"),
		StockQuantity: stock,
	}
}

func TestAdjust_Debit(t *testing.T) {
	written := -1
	ledger := NewLedger(productRepo(mug(10), &written))

	p, err := ledger.Adjust(context.Background(), nil, 1, domain.TenantID(10), -4)

	require.NoError(t, err)
	assert.Equal(t, 6, p.StockQuantity)
	assert.Equal(t, 6, written)
}

func TestAdjust_Restock(t *testing.T) {
	written := -1
	ledger := NewLedger(productRepo(mug(6), &written))

	p, err := ledger.Adjust(context.Background(), nil, 1, domain.TenantID(10), 4)

	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQuantity)
	assert.Equal(t, 10, written)
}

func TestAdjust_DebitToExactlyZero(t *testing.T) {
	written := -1
	ledger := NewLedger(productRepo(mug(3), &written))

	p, err := ledger.Adjust(context.Background(), nil, 1, domain.TenantID(10), -3)

	require.NoError(t, err)
	assert.Equal(t, 0, p.StockQuantity)
}

func TestAdjust_InsufficientStock(t *testing.T) {
	written := -1
	ledger := NewLedger(productRepo(mug(3), &written))

	_, err := ledger.Adjust(context.Background(), nil, 1, domain.TenantID(10), -4)

	ise, ok := apperrors.IsInsufficientStockError(err)
	require.True(t, ok)
	assert.Equal(t, 3, ise.Available)
	assert.Equal(t, 4, ise.Requested)
	assert.Equal(t, "Mug", ise.ProductName)
	assert.Equal(t, -1, written, "nothing must be written")
}

func TestAdjust_NotFound(t *testing.T) {
	written := -1
	ledger := NewLedger(productRepo(mug(3), &written))

	_, err := ledger.Adjust(context.Background(), nil, 99, domain.TenantID(10), -1)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestAdjust_OtherTenant(t *testing.T) {
	written := -1
	ledger := NewLedger(productRepo(mug(10), &written))

	_, err := ledger.Adjust(context.Background(), nil, 1, domain.TenantID(11), -1)

	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, -1, written)
}

func TestAdjust_ArchivedProduct(t *testing.T) {
	archived := mug(10)
	archived.IsArchived = true
	written := -1
	ledger := NewLedger(productRepo(archived, &written))

	_, err := ledger.Adjust(context.Background(), nil, 1, domain.TenantID(10), -1)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok, "archived products cannot be sold")

	p, err := ledger.Adjust(context.Background(), nil, 1, domain.TenantID(10), 2)
	require.NoError(t, err, "returns still restock archived products")
	assert.Equal(t, 12, p.StockQuantity)
}

func TestAdjust_WriteFailure(t *testing.T) {
	writeErr := errors.New("lock wait timeout")
	repo := &mockProductRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx mysql.Tx, id int) (*domain.Product, error) {
			p := mug(10)
			return &p, nil
		},
		UpdateStockQuantityFunc: func(ctx context.Context, tx mysql.Tx, id int, quantity int) error {
			return writeErr
		},
	}

	_, err := NewLedger(repo).Adjust(context.Background(), nil, 1, domain.TenantID(10), -1)

	assert.ErrorIs(t, err, writeErr)
}
