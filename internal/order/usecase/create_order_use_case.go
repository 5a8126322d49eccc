package usecase

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"sellerhub/internal/domain"
	"sellerhub/internal/dto"
	apperrors "sellerhub/internal/errors"
)

const maxLineQuantity = 10000

type CreateOrderUseCase struct {
	creator  OrderCreator
	resolver TenantResolver
	metrics  Metrics
	logger   *zap.Logger
	maxLines int
}

func NewCreateOrderUseCase(
	creator OrderCreator,
	resolver TenantResolver,
	metrics Metrics,
	logger *zap.Logger,
	maxLines int,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		creator:  creator,
		resolver: resolver,
		metrics:  metrics,
		logger:   logger,
		maxLines: maxLines,
	}
}

func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, principalID int, req dto.CreateOrderRequest) (*dto.CreateOrderResult, error) {
	result, err := uc.createOrder(ctx, principalID, req)
	if err != nil {
		uc.metrics.RecordOrder(apperrors.Kind(err))
		return nil, err
	}
	uc.metrics.RecordOrder("")
	return result, nil
}

func (uc *CreateOrderUseCase) createOrder(ctx context.Context, principalID int, req dto.CreateOrderRequest) (*dto.CreateOrderResult, error) {
	// Bloque 1: Logging de inicio
	uc.logger.Info("create order started", zap.Int("principalId", principalID), zap.Int("customerId", req.CustomerID), zap.Int("lineCount", len(req.Items)))

	// Bloque 2: Validaciones (fuera de transacción)
	if err := validateCreateOrder(req, uc.maxLines); err != nil {
		return nil, err
	}

	// Bloque 3: Resolver tenant
	tenantID, err := uc.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}

	// Bloque 4: Transacción
	start := time.Now()
	order, products, err := uc.creator.CreateOrder(ctx, tenantID, req.CustomerID, req.Items, dto.OrderMeta{
		CourierName: req.CourierName,
		Notes:       req.Notes,
	})
	uc.metrics.ObserveTx("create_order", time.Since(start))
	if err != nil {
		return nil, err
	}
	uc.metrics.RecordStockAdjustments(domain.StockEffectDebit.String(), len(order.Items))

	// Bloque 5: Señal de stock bajo (informativa, nunca falla la orden)
	threshold := lowStockThreshold(ctx, uc.resolver, tenantID, uc.logger)
	lowStock := []int{}
	for _, p := range products {
		if p.IsLowStock(threshold) {
			lowStock = append(lowStock, p.ID)
		}
	}
	if len(lowStock) > 0 {
		uc.metrics.RecordLowStock(len(lowStock))
		uc.logger.Info("products at low stock", zap.Int("orderId", order.ID), zap.Ints("productIds", lowStock))
	}

	return &dto.CreateOrderResult{
		Order:              *order,
		LowStockProductIDs: lowStock,
	}, nil
}

func validateCreateOrder(req dto.CreateOrderRequest, maxLines int) error {
	var details []apperrors.ValidationDetail

	if req.CustomerID <= 0 {
		msg := "customerId must be a positive integer"
		if req.CustomerID == 0 {
			msg = "customerId is required"
		}
		details = append(details, apperrors.ValidationDetail{Field: "customerId", Message: msg})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	if len(req.Items) > maxLines {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items exceeds maximum of " + strconv.Itoa(maxLines),
		})
	}

	seen := make(map[int]bool, len(req.Items))
	for idx, item := range req.Items {
		field := "items[" + strconv.Itoa(idx) + "]"

		if item.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".productId",
				Message: "each productId must be a positive integer",
			})
		}

		if seen[item.ProductID] {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".productId",
				Message: "productId must not be duplicated",
			})
		}
		seen[item.ProductID] = true

		if item.Quantity < 1 || item.Quantity > maxLineQuantity {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".quantity",
				Message: "quantity must be between 1 and " + strconv.Itoa(maxLineQuantity),
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

// lowStockThreshold falls back to the default when settings cannot be read.
func lowStockThreshold(ctx context.Context, resolver TenantResolver, tenantID domain.TenantID, logger *zap.Logger) int {
	settings, err := resolver.Settings(ctx, tenantID)
	if err != nil {
		logger.Warn("reading tenant settings", zap.Int("tenantId", int(tenantID)), zap.Error(err))
		return domain.DefaultLowStockThreshold
	}
	return settings.LowStockThreshold
}
