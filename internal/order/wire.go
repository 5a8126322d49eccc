package order

import (
	"database/sql"

	"go.uber.org/zap"

	"sellerhub/internal/config"
	"sellerhub/internal/customer"
	customerrepo "sellerhub/internal/customer/repository"
	"sellerhub/internal/infrastructure/mysql"
	"sellerhub/internal/order/controller"
	orderrepo "sellerhub/internal/order/repository"
	"sellerhub/internal/order/service"
	"sellerhub/internal/order/usecase"
	productrepo "sellerhub/internal/product/repository"
	"sellerhub/internal/stock"
)

func NewModule(db *sql.DB, resolver usecase.TenantResolver, metrics usecase.Metrics, cfg config.OrderConfig, logger *zap.Logger) *controller.OrderController {
	txManager := mysql.NewTxManager(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	customerRepo := customerrepo.NewMySQLCustomerRepository(db)

	ledger := stock.NewLedger(productrepo.NewMySQLRepository(db))
	stats := customer.NewStatsAggregator(customerRepo)

	creationSvc := service.NewCreationService(
		txManager,
		customerRepo,
		ledger,
		orderRepo,
		orderItemRepo,
		stats,
		cfg.TxTimeout,
		logger,
	)
	transitionSvc := service.NewTransitionService(
		txManager,
		ledger,
		orderRepo,
		orderItemRepo,
		cfg.TxTimeout,
		logger,
	)

	return controller.NewOrderController(
		usecase.NewCreateOrderUseCase(creationSvc, resolver, metrics, logger, cfg.MaxLines),
		usecase.NewTransitionOrderUseCase(transitionSvc, resolver, metrics, logger),
		usecase.NewQueryOrdersUseCase(orderRepo, orderItemRepo, resolver, logger),
		logger,
	)
}
