package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"sellerhub/internal/customer/repository"
)

func NewModule(db *sql.DB, resolver TenantResolver, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLCustomerRepository(db)
	svc := NewService(repo, resolver, logger)
	return NewController(svc, logger)
}
