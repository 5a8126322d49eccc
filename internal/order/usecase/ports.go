package usecase

import (
	"context"
	"time"

	"sellerhub/internal/domain"
	"sellerhub/internal/dto"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, tenantID domain.TenantID, customerID int, lines []dto.OrderLine, meta dto.OrderMeta) (*domain.Order, []domain.Product, error)
}

type OrderTransitioner interface {
	Transition(ctx context.Context, orderID int, tenantID domain.TenantID, status domain.OrderStatus, trackingNumber *string) (*dto.TransitionResult, error)
}

type TenantResolver interface {
	Resolve(ctx context.Context, principalID int) (domain.TenantID, error)
	Settings(ctx context.Context, tenantID domain.TenantID) (domain.TenantSettings, error)
}

type OrderReader interface {
	FindByID(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Order, error)
	FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Order, error)
}

type OrderItemReader interface {
	ListByOrderID(ctx context.Context, orderID int) ([]domain.OrderItem, error)
}

type Metrics interface {
	RecordOrder(kind string)
	RecordTransition(effect string, err error)
	RecordStockAdjustments(direction string, lines int)
	RecordLowStock(products int)
	ObserveTx(operation string, d time.Duration)
}
