package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"sellerhub/internal/domain"
	"sellerhub/internal/dto"
)

type TransitionService struct {
	db        TransactionManager
	ledger    StockLedger
	orders    OrderRepository
	items     OrderItemRepository
	txTimeout time.Duration
	logger    *zap.Logger
}

func NewTransitionService(
	db TransactionManager,
	ledger StockLedger,
	orders OrderRepository,
	items OrderItemRepository,
	txTimeout time.Duration,
	logger *zap.Logger,
) *TransitionService {
	return &TransitionService{
		db:        db,
		ledger:    ledger,
		orders:    orders,
		items:     items,
		txTimeout: txTimeout,
		logger:    logger,
	}
}

// Transition moves an order to status. Crossing from alive to dead returns
// every item to stock; crossing back debits it again and fails as a whole
// if any line no longer fits.
func (s *TransitionService) Transition(
	ctx context.Context,
	orderID int,
	tenantID domain.TenantID,
	status domain.OrderStatus,
	trackingNumber *string,
) (*dto.TransitionResult, error) {
	ctx, span := tracer.Start(ctx, "order.transition", trace.WithAttributes(
		attribute.Int("tenant.id", int(tenantID)),
		attribute.Int("order.id", orderID),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	// Bloque 1: Iniciar transacción con timeout
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, fail(span, "beginning transaction", err)
	}
	defer tx.Rollback()

	// Bloque 2: Bloquear la orden del tenant
	order, err := s.orders.FindByIDForUpdate(txCtx, tx, orderID, tenantID)
	if err != nil {
		return nil, fail(span, "locking order", err)
	}

	items, err := s.items.FindByOrderID(txCtx, tx, orderID)
	if err != nil {
		return nil, fail(span, "reading order items", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	// Bloque 3: Aplicar el efecto de stock en orden ascendente de productId (anti-deadlock)
	previous := order.Status
	effect := domain.StockEffectOf(previous, status)
	span.SetAttributes(attribute.String("order.stock_effect", effect.String()))

	if effect != domain.StockEffectNone {
		for _, item := range items {
			if _, err := s.ledger.Adjust(txCtx, tx, item.ProductID, tenantID, effect.Sign()*item.Quantity); err != nil {
				s.logger.Warn("transition rejected",
					zap.Int("orderId", orderID),
					zap.Int("productId", item.ProductID),
					zap.String("effect", effect.String()),
					zap.Error(err),
				)
				return nil, fail(span, "adjusting stock", err)
			}
		}
	}

	// Bloque 4: Persistir el nuevo estado
	if err := s.orders.UpdateStatus(txCtx, tx, orderID, status, trackingNumber); err != nil {
		return nil, fail(span, "updating order status", err)
	}

	// Bloque 5: Commit
	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Int("orderId", orderID), zap.Error(err))
		return nil, fail(span, "committing transition", err)
	}

	order.Status = status
	if trackingNumber != nil {
		order.TrackingNumber = trackingNumber
	}
	order.Items = items

	s.logger.Info("order transitioned",
		zap.Int("orderId", orderID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
		zap.String("effect", effect.String()),
	)

	return &dto.TransitionResult{
		Order:          *order,
		PreviousStatus: previous,
		Effect:         effect,
	}, nil
}
