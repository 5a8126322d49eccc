package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderItem_LineTotals(t *testing.T) {
	item := OrderItem{
		ID:              1,
		OrderID:         100,
		ProductID:       5,
		Quantity:        4,
		PriceAtPurchase: decimal.RequireFromString("5.00"),
		CostAtPurchase:  decimal.RequireFromString("3.00"),
	}

	assert.True(t, decimal.RequireFromString("20.00").Equal(item.LineAmount()))
	assert.True(t, decimal.RequireFromString("12.00").Equal(item.LineCost()))
}

func TestOrderItem_NoFloatDrift(t *testing.T) {
	item := OrderItem{
		Quantity:        3,
		PriceAtPurchase: decimal.RequireFromString("0.10"),
	}

	assert.Equal(t, "0.3", item.LineAmount().String())
}
