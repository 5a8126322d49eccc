package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"sellerhub/internal/domain"
	"sellerhub/internal/dto"
	"sellerhub/internal/errors"
)

type CreationService struct {
	db        TransactionManager
	customers CustomerRepository
	ledger    StockLedger
	orders    OrderRepository
	items     OrderItemRepository
	stats     StatsAggregator
	txTimeout time.Duration
	logger    *zap.Logger
}

func NewCreationService(
	db TransactionManager,
	customers CustomerRepository,
	ledger StockLedger,
	orders OrderRepository,
	items OrderItemRepository,
	stats StatsAggregator,
	txTimeout time.Duration,
	logger *zap.Logger,
) *CreationService {
	return &CreationService{
		db:        db,
		customers: customers,
		ledger:    ledger,
		orders:    orders,
		items:     items,
		stats:     stats,
		txTimeout: txTimeout,
		logger:    logger,
	}
}

// CreateOrder debits every line, writes the order with its items and folds it
// into the customer's aggregates, all in one transaction. It returns the
// stored order and the products as they were left by the debit.
func (s *CreationService) CreateOrder(
	ctx context.Context,
	tenantID domain.TenantID,
	customerID int,
	lines []dto.OrderLine,
	meta dto.OrderMeta,
) (*domain.Order, []domain.Product, error) {
	ctx, span := tracer.Start(ctx, "order.create", trace.WithAttributes(
		attribute.Int("tenant.id", int(tenantID)),
		attribute.Int("customer.id", customerID),
		attribute.Int("order.lines", len(lines)),
	))
	defer span.End()

	// Bloque 1: Iniciar transacción con timeout
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, nil, fail(span, "beginning transaction", err)
	}
	// Rollback after Commit is a no-op.
	defer tx.Rollback()

	// Bloque 2: Bloquear el cliente cuyos agregados se reescriben
	customer, err := s.customers.FindByIDForUpdate(txCtx, tx, customerID)
	if err != nil {
		return nil, nil, fail(span, "locking customer", err)
	}
	if customer.TenantID != tenantID {
		return nil, nil, fail(span, "locking customer", errors.NewForbiddenError(fmt.Sprintf("customer %d does not belong to this account", customerID)))
	}

	// Bloque 3: Descontar stock en orden ascendente de productId (anti-deadlock)
	sorted := make([]dto.OrderLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	var (
		totalAmount = decimal.Zero
		totalCost   = decimal.Zero
		items       = make([]domain.OrderItem, 0, len(sorted))
		products    = make([]domain.Product, 0, len(sorted))
	)
	for _, line := range sorted {
		product, err := s.ledger.Adjust(txCtx, tx, line.ProductID, tenantID, -line.Quantity)
		if err != nil {
			s.logger.Warn("line rejected", zap.Int("productId", line.ProductID), zap.Int("quantity", line.Quantity), zap.Error(err))
			return nil, nil, fail(span, "debiting stock", err)
		}

		item := domain.OrderItem{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: product.SellPrice,
			CostAtPurchase:  product.CostPrice,
		}
		totalAmount = totalAmount.Add(item.LineAmount())
		totalCost = totalCost.Add(item.LineCost())
		items = append(items, item)
		products = append(products, *product)
	}

	// Bloque 4: Persistir la orden y sus items
	order := domain.Order{
		TenantID:    tenantID,
		CustomerID:  customerID,
		Status:      domain.OrderStatusNew,
		TotalAmount: totalAmount,
		TotalProfit: totalAmount.Sub(totalCost),
		CourierName: meta.CourierName,
		Notes:       meta.Notes,
	}

	order.ID, err = s.orders.Insert(txCtx, tx, order)
	if err != nil {
		return nil, nil, fail(span, "inserting order", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
		items[i].ID, err = s.items.Insert(txCtx, tx, items[i])
		if err != nil {
			return nil, nil, fail(span, "inserting order item", err)
		}
	}
	order.Items = items

	// Bloque 5: Agregados del cliente (ve los items recién insertados)
	if err := s.stats.RecordOrder(txCtx, tx, customer, totalAmount, time.Now()); err != nil {
		return nil, nil, fail(span, "updating customer stats", err)
	}

	// Bloque 6: Commit
	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Int("customerId", customerID), zap.Error(err))
		return nil, nil, fail(span, "committing order", err)
	}

	span.SetAttributes(attribute.Int("order.id", order.ID))
	s.logger.Info("order created",
		zap.Int("orderId", order.ID),
		zap.Int("tenantId", int(tenantID)),
		zap.Int("customerId", customerID),
		zap.Int("lineCount", len(items)),
		zap.String("totalAmount", totalAmount.StringFixed(2)),
	)

	return &order, products, nil
}
