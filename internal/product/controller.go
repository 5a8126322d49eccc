package product

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sellerhub/internal/auth"
	"sellerhub/internal/commons"
	apperrors "sellerhub/internal/errors"
)

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

func (c *Controller) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	var req CreateProductRequest
	if !c.decode(w, r, traceID, logger, &req) {
		return
	}

	product, err := c.useCase.CreateProduct(r.Context(), principalID, req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, product, logger)
}

func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	products, err := c.useCase.ListProducts(r.Context(), principalID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, map[string]any{"products": products}, logger)
}

func (c *Controller) HandleSearchProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	var req SearchProductsRequest
	if !c.decode(w, r, traceID, logger, &req) {
		return
	}

	resp, err := c.useCase.SearchProducts(r.Context(), principalID, req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, resp, logger)
}

func (c *Controller) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || productID <= 0 {
		commons.WriteValidationError(w, traceID, logger, "invalid productId", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
		return
	}

	resp, err := c.useCase.DeleteProduct(r.Context(), principalID, productID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, resp, logger)
}

func (c *Controller) decode(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger, dst any) bool {
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
