package customer

import (
	"context"

	"sellerhub/internal/domain"
)

type TenantResolver interface {
	Resolve(ctx context.Context, principalID int) (domain.TenantID, error)
}

type Repository interface {
	Insert(ctx context.Context, c domain.Customer) (int, error)
	ExistsByPhone(ctx context.Context, tenantID domain.TenantID, phone string) (bool, error)
	FindByID(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Customer, error)
	FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Customer, error)
}
