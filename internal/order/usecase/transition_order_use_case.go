package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"sellerhub/internal/domain"
	"sellerhub/internal/dto"
	apperrors "sellerhub/internal/errors"
)

const maxTrackingNumberLength = 100

type TransitionOrderUseCase struct {
	transitioner OrderTransitioner
	resolver     TenantResolver
	metrics      Metrics
	logger       *zap.Logger
}

func NewTransitionOrderUseCase(
	transitioner OrderTransitioner,
	resolver TenantResolver,
	metrics Metrics,
	logger *zap.Logger,
) *TransitionOrderUseCase {
	return &TransitionOrderUseCase{
		transitioner: transitioner,
		resolver:     resolver,
		metrics:      metrics,
		logger:       logger,
	}
}

func (uc *TransitionOrderUseCase) TransitionOrder(ctx context.Context, principalID int, orderID int, req dto.TransitionOrderRequest) (*dto.TransitionResult, error) {
	uc.logger.Info("order transition started", zap.Int("principalId", principalID), zap.Int("orderId", orderID), zap.String("status", req.Status))

	status, tracking, err := validateTransition(req)
	if err != nil {
		return nil, err
	}

	tenantID, err := uc.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := uc.transitioner.Transition(ctx, orderID, tenantID, status, tracking)
	uc.metrics.ObserveTx("transition_order", time.Since(start))
	if err != nil {
		uc.metrics.RecordTransition("unknown", err)
		return nil, err
	}

	uc.metrics.RecordTransition(result.Effect.String(), nil)
	if result.Effect != domain.StockEffectNone {
		uc.metrics.RecordStockAdjustments(result.Effect.String(), len(result.Order.Items))
	}

	return result, nil
}

func validateTransition(req dto.TransitionOrderRequest) (domain.OrderStatus, *string, error) {
	var details []apperrors.ValidationDetail

	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		allowed := make([]string, len(domain.OrderStatuses))
		for i, s := range domain.OrderStatuses {
			allowed[i] = string(s)
		}
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of " + strings.Join(allowed, ", "),
		})
	}

	var tracking *string
	if req.TrackingNumber != nil {
		trimmed := strings.TrimSpace(*req.TrackingNumber)
		switch {
		case trimmed == "":
			details = append(details, apperrors.ValidationDetail{Field: "trackingNumber", Message: "trackingNumber must not be blank"})
		case len(trimmed) > maxTrackingNumberLength:
			details = append(details, apperrors.ValidationDetail{Field: "trackingNumber", Message: "trackingNumber is too long"})
		default:
			tracking = &trimmed
		}
	}

	if len(details) > 0 {
		return "", nil, apperrors.NewValidationError("validation failed", details...)
	}
	return status, tracking, nil
}
