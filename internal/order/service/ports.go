package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sellerhub/internal/domain"
	"sellerhub/internal/infrastructure/mysql"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error)
}

type StockLedger interface {
	Adjust(ctx context.Context, tx mysql.Tx, productID int, tenantID domain.TenantID, delta int) (*domain.Product, error)
}

type CustomerRepository interface {
	FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int) (*domain.Customer, error)
}

type StatsAggregator interface {
	RecordOrder(ctx context.Context, tx mysql.Tx, c *domain.Customer, amount decimal.Decimal, at time.Time) error
}

type OrderRepository interface {
	Insert(ctx context.Context, tx mysql.Tx, o domain.Order) (int, error)
	FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int, tenantID domain.TenantID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx mysql.Tx, id int, status domain.OrderStatus, trackingNumber *string) error
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx mysql.Tx, item domain.OrderItem) (int, error)
	FindByOrderID(ctx context.Context, tx mysql.Tx, orderID int) ([]domain.OrderItem, error)
}

var tracer = otel.Tracer("sellerhub/order")

// fail classifies err and marks the span as failed.
func fail(span trace.Span, op string, err error) error {
	classified := mysql.Classify(op, err)
	span.RecordError(classified)
	span.SetStatus(codes.Error, op)
	return classified
}
