package customer

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sellerhub/internal/auth"
	"sellerhub/internal/commons"
	"sellerhub/internal/domain"
	apperrors "sellerhub/internal/errors"
)

type UseCase interface {
	Create(ctx context.Context, principalID int, req CreateCustomerRequest) (*domain.Customer, error)
	Get(ctx context.Context, principalID int, id int) (*domain.Customer, error)
	List(ctx context.Context, principalID int) ([]domain.Customer, error)
}

type Controller struct {
	useCase UseCase
	logger  *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteValidationError(w, traceID, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	customer, err := c.useCase.Create(r.Context(), principalID, req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, CustomerResponse{TraceID: traceID, Customer: toDTO(*customer)}, logger)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "customerId"))
	if err != nil || id <= 0 {
		commons.WriteValidationError(w, traceID, logger, "invalid customerId", apperrors.ValidationDetail{
			Field:   "customerId",
			Message: "customerId must be a positive integer",
		})
		return
	}

	customer, err := c.useCase.Get(r.Context(), principalID, id)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, CustomerResponse{TraceID: traceID, Customer: toDTO(*customer)}, logger)
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	customers, err := c.useCase.List(r.Context(), principalID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	dtos := make([]CustomerDTO, 0, len(customers))
	for _, customer := range customers {
		dtos = append(dtos, toDTO(customer))
	}

	commons.WriteJSON(w, http.StatusOK, CustomerListResponse{TraceID: traceID, Customers: dtos}, logger)
}
