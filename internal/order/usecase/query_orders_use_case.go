package usecase

import (
	"context"

	"go.uber.org/zap"

	"sellerhub/internal/domain"
	"sellerhub/internal/infrastructure/mysql"
)

// QueryOrdersUseCase serves the tenant-scoped reads. It takes no locks.
type QueryOrdersUseCase struct {
	orders   OrderReader
	items    OrderItemReader
	resolver TenantResolver
	logger   *zap.Logger
}

func NewQueryOrdersUseCase(orders OrderReader, items OrderItemReader, resolver TenantResolver, logger *zap.Logger) *QueryOrdersUseCase {
	return &QueryOrdersUseCase{
		orders:   orders,
		items:    items,
		resolver: resolver,
		logger:   logger,
	}
}

func (uc *QueryOrdersUseCase) GetOrder(ctx context.Context, principalID int, orderID int) (*domain.Order, error) {
	tenantID, err := uc.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}

	order, err := uc.orders.FindByID(ctx, orderID, tenantID)
	if err != nil {
		return nil, mysql.Classify("reading order", err)
	}

	order.Items, err = uc.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, mysql.Classify("reading order items", err)
	}

	return order, nil
}

// ListOrders returns the tenant's orders, newest first, without their items.
func (uc *QueryOrdersUseCase) ListOrders(ctx context.Context, principalID int) ([]domain.Order, error) {
	tenantID, err := uc.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}

	orders, err := uc.orders.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, mysql.Classify("listing orders", err)
	}

	uc.logger.Debug("orders listed", zap.Int("tenantId", int(tenantID)), zap.Int("count", len(orders)))
	return orders, nil
}
