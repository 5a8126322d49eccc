package settings

import (
	"context"

	"sellerhub/internal/domain"
)

type TenantResolver interface {
	Resolve(ctx context.Context, principalID int) (domain.TenantID, error)
	Settings(ctx context.Context, tenantID domain.TenantID) (domain.TenantSettings, error)
}

type Repository interface {
	UpdateSettings(ctx context.Context, s domain.TenantSettings) error
}
