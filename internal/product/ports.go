package product

import (
	"context"
	"database/sql"

	"sellerhub/internal/domain"
	"sellerhub/internal/infrastructure/mysql"
)

type UseCase interface {
	CreateProduct(ctx context.Context, principalID int, req CreateProductRequest) (*ProductDTO, error)
	ListProducts(ctx context.Context, principalID int) ([]ProductDTO, error)
	SearchProducts(ctx context.Context, principalID int, req SearchProductsRequest) (*SearchProductsResponse, error)
	DeleteProduct(ctx context.Context, principalID int, productID int) (*DeleteProductResponse, error)
}

type Service interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	ListByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Product, error)
	GetProductsByIDsAndTenant(ctx context.Context, ids []int, tenantID domain.TenantID) (found []domain.Product, notFoundIDs []int, err error)
	Delete(ctx context.Context, productID int, tenantID domain.TenantID) (archived bool, err error)
}

type TenantResolver interface {
	Resolve(ctx context.Context, principalID int) (domain.TenantID, error)
	Settings(ctx context.Context, tenantID domain.TenantID) (domain.TenantSettings, error)
}

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error)
}

type Repository interface {
	Insert(ctx context.Context, p domain.Product) (int, error)
	FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Product, error)
	FindByIDsAndTenant(ctx context.Context, ids []int, tenantID domain.TenantID) ([]domain.Product, error)
	FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int) (*domain.Product, error)
	HasOrderItems(ctx context.Context, tx mysql.Tx, id int) (bool, error)
	Archive(ctx context.Context, tx mysql.Tx, id int) error
	Delete(ctx context.Context, tx mysql.Tx, id int) error
}
