package product

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"sellerhub/internal/infrastructure/mysql"
	"sellerhub/internal/product/repository"
)

func NewModule(db *sql.DB, resolver TenantResolver, txTimeout time.Duration, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLRepository(db)
	svc := NewService(mysql.NewTxManager(db), repo, txTimeout, logger)
	uc := NewUseCase(svc, resolver, logger)
	return NewController(uc, logger)
}
