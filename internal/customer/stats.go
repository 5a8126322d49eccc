package customer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"sellerhub/internal/domain"
	"sellerhub/internal/infrastructure/mysql"
)

type StatsRepository interface {
	QuantitiesByProduct(ctx context.Context, tx mysql.Tx, customerID int) ([]domain.ProductQuantity, error)
	UpdateStats(ctx context.Context, tx mysql.Tx, c domain.Customer) error
}

// StatsAggregator keeps a customer's running totals and favorite item. It is
// only called from inside an order creation transaction, after the new
// order's items have been written.
type StatsAggregator struct {
	repo StatsRepository
}

func NewStatsAggregator(repo StatsRepository) *StatsAggregator {
	return &StatsAggregator{repo: repo}
}

// RecordOrder folds one order into c and persists the result.
func (a *StatsAggregator) RecordOrder(ctx context.Context, tx mysql.Tx, c *domain.Customer, amount decimal.Decimal, at time.Time) error {
	quantities, err := a.repo.QuantitiesByProduct(ctx, tx, c.ID)
	if err != nil {
		return err
	}

	var favorite *domain.ProductQuantity
	if fav, ok := PickFavorite(quantities); ok {
		favorite = &fav
	}

	ApplyOrder(c, amount, at, favorite)

	return a.repo.UpdateStats(ctx, tx, *c)
}

// PickFavorite returns the product with the largest summed quantity. Ties go
// to the lowest product id.
func PickFavorite(quantities []domain.ProductQuantity) (domain.ProductQuantity, bool) {
	var (
		best  domain.ProductQuantity
		found bool
	)
	for _, q := range quantities {
		if !found || q.Quantity > best.Quantity || (q.Quantity == best.Quantity && q.ProductID < best.ProductID) {
			best = q
			found = true
		}
	}
	return best, found
}

func ApplyOrder(c *domain.Customer, amount decimal.Decimal, at time.Time, favorite *domain.ProductQuantity) {
	c.TotalOrders++
	c.TotalSpent = c.TotalSpent.Add(amount)
	c.LastOrderDate = &at
	if favorite != nil {
		name := favorite.ProductName
		c.FavoriteItem = &name
	}
}
