package stock

import (
	"context"
	"fmt"

	"sellerhub/internal/domain"
	"sellerhub/internal/errors"
	"sellerhub/internal/infrastructure/mysql"
)

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int) (*domain.Product, error)
	UpdateStockQuantity(ctx context.Context, tx mysql.Tx, id int, quantity int) error
}

// Ledger is the only writer of Products.stockQuantity. Adjust must run inside
// the caller's transaction; the row lock it takes is held until that
// transaction ends. Callers adjusting several products do so in ascending
// product id order.
type Ledger struct {
	products ProductRepository
}

func NewLedger(products ProductRepository) *Ledger {
	return &Ledger{products: products}
}

func (l *Ledger) Adjust(ctx context.Context, tx mysql.Tx, productID int, tenantID domain.TenantID, delta int) (*domain.Product, error) {
	product, err := l.products.FindByIDForUpdate(ctx, tx, productID)
	if err != nil {
		return nil, err
	}

	if product.TenantID != tenantID {
		return nil, errors.NewForbiddenError(fmt.Sprintf("product %d does not belong to this account", productID))
	}

	// Archived products keep their history but are no longer for sale.
	if delta < 0 && product.IsArchived {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	}

	if delta == 0 {
		return product, nil
	}

	next := product.StockQuantity + delta
	if next < 0 {
		return nil, errors.NewInsufficientStockError(product.ID, product.Name, product.StockQuantity, -delta)
	}

	if err := l.products.UpdateStockQuantity(ctx, tx, productID, next); err != nil {
		return nil, err
	}

	product.StockQuantity = next
	return product, nil
}
