package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerhub/internal/domain"
	"sellerhub/internal/dto"
	apperrors "sellerhub/internal/errors"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

// placeOrder crea una orden con las líneas dadas para el cliente del fixture.
func (f *fixture) placeOrder(t *testing.T, lines ...dto.OrderLine) int {
	t.Helper()
	order, _, err := f.creation.CreateOrder(context.Background(), tenantA, f.customerID, lines, dto.OrderMeta{})
	require.NoError(t, err)
	return order.ID
}

func TestTransition_CancelAndReactivateRoundTrip(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(tenantA, "Mug", "5.00", "3.00", 10)
	orderID := f.placeOrder(t, line(p1, 4))
	ctx := context.Background()
	require.Equal(t, 6, f.store.Product(p1).StockQuantity)

	result, err := f.transition.Transition(ctx, orderID, tenantA, domain.OrderStatusCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusNew, result.PreviousStatus)
	assert.Equal(t, domain.StockEffectRestock, result.Effect)
	assert.Equal(t, domain.OrderStatusCancelled, result.Order.Status)
	assert.Len(t, result.Order.Items, 1)
	assert.Equal(t, 10, f.store.Product(p1).StockQuantity)

	result, err = f.transition.Transition(ctx, orderID, tenantA, domain.OrderStatusPacked, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StockEffectDebit, result.Effect)
	assert.Equal(t, 6, f.store.Product(p1).StockQuantity)
}

func TestTransition_ReactivationWithoutStockFailsClosed(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(tenantA, "Mug", "5.00", "3.00", 10)
	orderID := f.placeOrder(t, line(p1, 4))
	ctx := context.Background()

	_, err := f.transition.Transition(ctx, orderID, tenantA, domain.OrderStatusCancelled, nil)
	require.NoError(t, err)
	f.store.SetStock(p1, 3)

	_, err = f.transition.Transition(ctx, orderID, tenantA, domain.OrderStatusNew, nil)

	ise, ok := apperrors.IsInsufficientStockError(err)
	require.True(t, ok)
	assert.Equal(t, 3, ise.Available)
	assert.Equal(t, 4, ise.Requested)

	stored, _ := f.store.Order(orderID)
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
	assert.Equal(t, 3, f.store.Product(p1).StockQuantity)
}

func TestTransition_ReactivationIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(tenantA, "Mug", "5.00", "3.00", 10)
	p2 := f.product(tenantA, "Cap", "2.50", "1.00", 10)
	orderID := f.placeOrder(t, line(p1, 2), line(p2, 5))
	ctx := context.Background()

	_, err := f.transition.Transition(ctx, orderID, tenantA, domain.OrderStatusReturned, nil)
	require.NoError(t, err)
	f.store.SetStock(p2, 1)

	_, err = f.transition.Transition(ctx, orderID, tenantA, domain.OrderStatusDelivered, nil)

	_, ok := apperrors.IsInsufficientStockError(err)
	assert.True(t, ok)
	assert.Equal(t, 10, f.store.Product(p1).StockQuantity, "first line debit rolled back")
	assert.Equal(t, 1, f.store.Product(p2).StockQuantity)
}

func TestTransition_SameMacroStateLeavesStockAlone(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(tenantA, "Mug", "5.00", "3.00", 10)
	orderID := f.placeOrder(t, line(p1, 4))
	ctx := context.Background()

	result, err := f.transition.Transition(ctx, orderID, tenantA, domain.OrderStatusWithCourier, strPtr("TRK-1"))
	require.NoError(t, err)
	assert.Equal(t, domain.StockEffectNone, result.Effect)
	require.NotNil(t, result.Order.TrackingNumber)
	assert.Equal(t, "TRK-1", *result.Order.TrackingNumber)
	assert.Equal(t, 6, f.store.Product(p1).StockQuantity)

	_, err = f.transition.Transition(ctx, orderID, tenantA, domain.OrderStatusDelivered, nil)
	require.NoError(t, err)

	stored, _ := f.store.Order(orderID)
	assert.Equal(t, domain.OrderStatusDelivered, stored.Status)
	require.NotNil(t, stored.TrackingNumber)
	assert.Equal(t, "TRK-1", *stored.TrackingNumber)
	assert.Equal(t, 6, f.store.Product(p1).StockQuantity)
}

func TestTransition_DeadToDeadDoesNotRestockTwice(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(tenantA, "Mug", "5.00", "3.00", 10)
	orderID := f.placeOrder(t, line(p1, 4))
	ctx := context.Background()

	_, err := f.transition.Transition(ctx, orderID, tenantA, domain.OrderStatusCancelled, nil)
	require.NoError(t, err)
	_, err = f.transition.Transition(ctx, orderID, tenantA, domain.OrderStatusReturned, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, f.store.Product(p1).StockQuantity)
}

func TestTransition_OtherTenantsOrderIsNotFound(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(tenantA, "Mug", "5.00", "3.00", 10)
	orderID := f.placeOrder(t, line(p1, 4))

	_, err := f.transition.Transition(context.Background(), orderID, tenantB, domain.OrderStatusCancelled, nil)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, 6, f.store.Product(p1).StockQuantity)
}

func TestTransition_RestocksArchivedProduct(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(tenantA, "Mug", "5.00", "3.00", 10)
	orderID := f.placeOrder(t, line(p1, 4))

	archived := f.store.Product(p1)
	archived.IsArchived = true
	f.store.AddProduct(archived)

	_, err := f.transition.Transition(context.Background(), orderID, tenantA, domain.OrderStatusCancelled, nil)

	require.NoError(t, err)
	assert.Equal(t, 10, f.store.Product(p1).StockQuantity)
}

func TestTransition_LocksOrderThenProductsAscending(t *testing.T) {
	f := newFixture(t)
	low := f.product(tenantA, "Mug", "5.00", "3.00", 10)
	high := f.product(tenantA, "Cap", "2.50", "1.00", 10)
	orderID := f.placeOrder(t, line(high, 1), line(low, 1))
	f.store.ResetLockLog()

	_, err := f.transition.Transition(context.Background(), orderID, tenantA, domain.OrderStatusCancelled, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"order:" + itoa(orderID),
		"product:" + itoa(low),
		"product:" + itoa(high),
	}, f.store.LockLog())
}

func TestTransition_StatusWriteFailureRollsBackRestock(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(tenantA, "Mug", "5.00", "3.00", 10)
	orderID := f.placeOrder(t, line(p1, 4))
	f.store.FailOn("Orders.UpdateStatus", assert.AnError)

	_, err := f.transition.Transition(context.Background(), orderID, tenantA, domain.OrderStatusCancelled, nil)

	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok)
	assert.Equal(t, 6, f.store.Product(p1).StockQuantity)
	stored, _ := f.store.Order(orderID)
	assert.Equal(t, domain.OrderStatusNew, stored.Status)
}
