package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sellerhub/internal/auth"
	"sellerhub/internal/commons"
	"sellerhub/internal/domain"
	apperrors "sellerhub/internal/errors"
)

type UseCase interface {
	Get(ctx context.Context, principalID int) (domain.TenantSettings, error)
	Update(ctx context.Context, principalID int, req UpdateSettingsRequest) (domain.TenantSettings, error)
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

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	s, err := c.useCase.Get(r.Context(), principalID)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, SettingsResponse{TraceID: traceID, Settings: toDTO(s)}, logger)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principalID, ok := auth.RequirePrincipal(w, r, logger)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteValidationError(w, traceID, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	s, err := c.useCase.Update(r.Context(), principalID, req)
	if err != nil {
		commons.WriteError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, SettingsResponse{TraceID: traceID, Settings: toDTO(s)}, logger)
}
