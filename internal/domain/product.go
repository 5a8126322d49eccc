package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int
	TenantID      TenantID
	Name          string
	CostPrice     decimal.Decimal
	SellPrice     decimal.Decimal
	StockQuantity int
	IsArchived    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Product) IsLowStock(threshold int) bool {
	return p.StockQuantity <= threshold
}
