package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sellerhub/internal/auth"
	"sellerhub/internal/commons"
	"sellerhub/internal/domain"
	"sellerhub/internal/dto"
	apperrors "sellerhub/internal/errors"
)

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, principalID int, req dto.CreateOrderRequest) (*dto.CreateOrderResult, error)
}

type TransitionOrderUseCase interface {
	TransitionOrder(ctx context.Context, principalID int, orderID int, req dto.TransitionOrderRequest) (*dto.TransitionResult, error)
}

type QueryOrdersUseCase interface {
	GetOrder(ctx context.Context, principalID int, orderID int) (*domain.Order, error)
	ListOrders(ctx context.Context, principalID int) ([]domain.Order, error)
}

type OrderController struct {
	create     CreateOrderUseCase
	transition TransitionOrderUseCase
	query      QueryOrdersUseCase
	logger     *zap.Logger
}

func NewOrderController(create CreateOrderUseCase, transition TransitionOrderUseCase, query QueryOrdersUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		create:     create,
		transition: transition,
		query:      query,
		logger:     logger,
	}
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	// Decode request body
	var req dto.CreateOrderRequest
	if !decodeBody(w, r, traceID, logger, &req) {
		return
	}

	result, err := c.create.CreateOrder(r.Context(), principalID, req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.CreateOrderResponse{
		TraceID:            traceID,
		OrderID:            result.Order.ID,
		Status:             string(result.Order.Status),
		TotalAmount:        result.Order.TotalAmount.StringFixed(2),
		Profit:             result.Order.TotalProfit.StringFixed(2),
		LowStockProductIDs: result.LowStockProductIDs,
		Timestamp:          time.Now().UTC(),
	}, logger)
}

func (c *OrderController) TransitionOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	orderID, ok := orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	var req dto.TransitionOrderRequest
	if !decodeBody(w, r, traceID, logger, &req) {
		return
	}

	result, err := c.transition.TransitionOrder(r.Context(), principalID, orderID, req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.TransitionOrderResponse{
		TraceID:        traceID,
		PreviousStatus: string(result.PreviousStatus),
		StockEffect:    result.Effect.String(),
		Order:          dto.ToOrderDTO(result.Order),
		Timestamp:      time.Now().UTC(),
	}, logger)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	orderID, ok := orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	order, err := c.query.GetOrder(r.Context(), principalID, orderID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.ToOrderDTO(*order), logger)
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	orders, err := c.query.ListOrders(r.Context(), principalID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	response := dto.OrderListResponse{Orders: make([]dto.OrderDTO, 0, len(orders))}
	for _, o := range orders {
		response.Orders = append(response.Orders, dto.ToOrderDTO(o))
	}

	commons.WriteJSON(w, http.StatusOK, response, logger)
}

func orderIDParam(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (int, bool) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "orderId"))
	if err != nil || orderID <= 0 {
		logger.Warn("invalid orderId in path", zap.String("orderId", chi.URLParam(r, "orderId")))
		commons.WriteValidationError(w, traceID, logger, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return 0, false
	}
	return orderID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteValidationError(w, traceID, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}
