package tenant

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"sellerhub/internal/domain"
	"sellerhub/internal/errors"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

// Resolver maps an authenticated principal to the tenant it acts for.
// Every tenant-scoped read and write takes the resolved id, never the
// principal id.
type Resolver struct {
	users  UserRepository
	logger *zap.Logger
}

func NewResolver(users UserRepository, logger *zap.Logger) *Resolver {
	return &Resolver{users: users, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, principalID int) (domain.TenantID, error) {
	principal, err := r.principal(ctx, principalID)
	if err != nil {
		return 0, err
	}
	return principal.TenantID(), nil
}

func (r *Resolver) principal(ctx context.Context, principalID int) (domain.Principal, error) {
	user, err := r.users.FindByID(ctx, principalID)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, errors.NewNotFoundError(fmt.Sprintf("principal %d not found", principalID))
		}
		return nil, err
	}

	principal, err := user.Principal()
	if stderrors.Is(err, domain.ErrEmployeeWithoutOwner) {
		r.logger.Error("employee without owner", zap.Int("principalId", principalID))
		return nil, errors.NewConfigurationError(fmt.Sprintf("employee %d is not linked to an owner", principalID))
	}
	if err != nil {
		return nil, err
	}

	return principal, nil
}

// Settings loads the thresholds stored on the tenant's owner row.
func (r *Resolver) Settings(ctx context.Context, tenantID domain.TenantID) (domain.TenantSettings, error) {
	owner, err := r.users.FindByID(ctx, int(tenantID))
	if err != nil {
		return domain.TenantSettings{}, err
	}
	return owner.Settings(), nil
}
