package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sellerhub/internal/customer"
	"sellerhub/internal/domain"
	"sellerhub/internal/dto"
	"sellerhub/internal/stock"
	"sellerhub/internal/testutil"
)

const (
	tenantA domain.TenantID = 1
	tenantB domain.TenantID = 2
)

type fixture struct {
	store      *testutil.MemStore
	creation   *CreationService
	transition *TransitionService
	customerID int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewMemStore()
	store.AddOwner(int(tenantA))
	store.AddOwner(int(tenantB))

	ledger := stock.NewLedger(store.Products())
	stats := customer.NewStatsAggregator(store.Customers())

	return &fixture{
		store:      store,
		creation:   NewCreationService(store, store.Customers(), ledger, store.Orders(), store.OrderItems(), stats, 5*time.Second, zap.NewNop()),
		transition: NewTransitionService(store, ledger, store.Orders(), store.OrderItems(), 5*time.Second, zap.NewNop()),
		customerID: store.AddCustomer(domain.Customer{TenantID: tenantA, Name: "Ayesha", Phone: "0300", City: "Lahore", Address: "Mall Road"}),
	}
}

func (f *fixture) product(tenantID domain.TenantID, name, sell, cost string, stock int) int {
	return f.store.AddProduct(domain.Product{
		TenantID:      tenantID,
		Name:          name,
		SellPrice:     decimal.RequireFromString(sell),
		CostPrice:     decimal.RequireFromString(cost),
		StockQuantity: stock,
	})
}

func line(productID, quantity int) dto.OrderLine {
	return dto.OrderLine{ProductID: productID, Quantity: quantity}
}

func strPtr(s string) *string {
	return &s
}
