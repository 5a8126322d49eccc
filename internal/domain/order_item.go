package domain

import "github.com/shopspring/decimal"

// OrderItem prices are snapshots taken at the moment of sale.
type OrderItem struct {
	ID              int
	OrderID         int
	ProductID       int
	Quantity        int
	PriceAtPurchase decimal.Decimal
	CostAtPurchase  decimal.Decimal
}

func (i OrderItem) LineAmount() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i OrderItem) LineCost() decimal.Decimal {
	return i.CostAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
