package settings

import (
	"database/sql"

	"go.uber.org/zap"

	"sellerhub/internal/tenant/repository"
)

func NewModule(db *sql.DB, resolver TenantResolver, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLUserRepository(db)
	svc := NewService(repo, resolver, logger)
	return NewController(svc, logger)
}
