package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID                  int
	TenantID            TenantID
	Name                string
	Phone               string
	City                string
	Address             string
	TotalOrders         int
	TotalSpent          decimal.Decimal
	LastOrderDate       *time.Time
	FavoriteItem        *string
	LastMarketingSentAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ProductQuantity is the summed quantity a customer bought of one product.
type ProductQuantity struct {
	ProductID   int
	ProductName string
	Quantity    int
}
