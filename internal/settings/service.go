package settings

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sellerhub/internal/domain"
	apperrors "sellerhub/internal/errors"
)

const (
	maxLowStockThreshold = 1000000
	maxInactiveDays      = 3650
	maxVIPOrders         = 100000
)

// Service reads and writes the thresholds stored on the tenant's owner row.
// Employees act on their owner's settings.
type Service struct {
	repo     Repository
	resolver TenantResolver
	logger   *zap.Logger
}

func NewService(repo Repository, resolver TenantResolver, logger *zap.Logger) *Service {
	return &Service{repo: repo, resolver: resolver, logger: logger}
}

func (s *Service) Get(ctx context.Context, principalID int) (domain.TenantSettings, error) {
	tenantID, err := s.resolver.Resolve(ctx, principalID)
	if err != nil {
		return domain.TenantSettings{}, err
	}
	return s.resolver.Settings(ctx, tenantID)
}

func (s *Service) Update(ctx context.Context, principalID int, req UpdateSettingsRequest) (domain.TenantSettings, error) {
	if err := validateUpdate(req); err != nil {
		return domain.TenantSettings{}, err
	}

	tenantID, err := s.resolver.Resolve(ctx, principalID)
	if err != nil {
		return domain.TenantSettings{}, err
	}

	// Confirma que la fila del dueño existe antes de escribir.
	if _, err := s.resolver.Settings(ctx, tenantID); err != nil {
		return domain.TenantSettings{}, err
	}

	updated := domain.TenantSettings{
		TenantID:          tenantID,
		LowStockThreshold: *req.LowStockThreshold,
		InactiveThreshold: *req.InactiveThreshold,
		VIPOrderThreshold: *req.VIPOrderThreshold,
	}
	if err := s.repo.UpdateSettings(ctx, updated); err != nil {
		return domain.TenantSettings{}, err
	}

	s.logger.Info("settings updated",
		zap.Int("principalId", principalID),
		zap.Int("tenantId", int(tenantID)),
		zap.Int("lowStockThreshold", updated.LowStockThreshold),
		zap.Int("inactiveThreshold", updated.InactiveThreshold),
		zap.Int("vipOrderThreshold", updated.VIPOrderThreshold),
	)
	return updated, nil
}

func validateUpdate(req UpdateSettingsRequest) error {
	var details []apperrors.ValidationDetail

	check := func(field string, value *int, min, max int) {
		if value == nil {
			details = append(details, apperrors.ValidationDetail{Field: field, Message: field + " is required"})
			return
		}
		if *value < min || *value > max {
			details = append(details, apperrors.ValidationDetail{
				Field:   field,
				Message: fmt.Sprintf("%s must be between %d and %d", field, min, max),
			})
		}
	}

	check("lowStockThreshold", req.LowStockThreshold, 0, maxLowStockThreshold)
	check("inactiveThreshold", req.InactiveThreshold, 1, maxInactiveDays)
	check("vipOrderThreshold", req.VIPOrderThreshold, 1, maxVIPOrders)

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid settings", details...)
	}
	return nil
}
