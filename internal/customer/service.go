package customer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"sellerhub/internal/domain"
	apperrors "sellerhub/internal/errors"
)

// Service handles the customer directory. Aggregates are never written here;
// they change only when an order is created.
type Service struct {
	repo     Repository
	resolver TenantResolver
	logger   *zap.Logger
}

func NewService(repo Repository, resolver TenantResolver, logger *zap.Logger) *Service {
	return &Service{repo: repo, resolver: resolver, logger: logger}
}

func (s *Service) Create(ctx context.Context, principalID int, req CreateCustomerRequest) (*domain.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.City = strings.TrimSpace(req.City)
	req.Address = strings.TrimSpace(req.Address)

	if err := validateCreate(req); err != nil {
		return nil, err
	}

	tenantID, err := s.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByPhone(ctx, tenantID, req.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError(fmt.Sprintf("a customer with phone %s already exists", req.Phone))
	}

	c := domain.Customer{
		TenantID: tenantID,
		Name:     req.Name,
		Phone:    req.Phone,
		City:     req.City,
		Address:  req.Address,
	}
	// The unique (userId, phone) index settles races the pre-check misses.
	id, err := s.repo.Insert(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id

	s.logger.Info("customer created", zap.Int("customerId", id), zap.Int("tenantId", int(tenantID)))
	return &c, nil
}

func (s *Service) Get(ctx context.Context, principalID int, id int) (*domain.Customer, error) {
	tenantID, err := s.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id, tenantID)
}

func (s *Service) List(ctx context.Context, principalID int) ([]domain.Customer, error) {
	tenantID, err := s.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindAllByTenant(ctx, tenantID)
}

func validateCreate(req CreateCustomerRequest) error {
	var details []apperrors.ValidationDetail

	required := []struct {
		field string
		value string
	}{
		{"name", req.Name},
		{"phone", req.Phone},
		{"city", req.City},
		{"address", req.Address},
	}
	for _, r := range required {
		if r.value == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   r.field,
				Message: r.field + " is required",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
