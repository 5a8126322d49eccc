package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew         OrderStatus = "NEW"
	OrderStatusPacked      OrderStatus = "PACKED"
	OrderStatusWithCourier OrderStatus = "WITH_COURIER"
	OrderStatusDelivered   OrderStatus = "DELIVERED"
	OrderStatusCancelled   OrderStatus = "CANCELLED"
	OrderStatusReturned    OrderStatus = "RETURNED"
)

var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusPacked,
	OrderStatusWithCourier,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, status := range OrderStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// MacroState groups statuses by whether the sold stock is consumed.
type MacroState int

const (
	Alive MacroState = iota
	Dead
)

func (m MacroState) String() string {
	if m == Dead {
		return "DEAD"
	}
	return "ALIVE"
}

func (s OrderStatus) MacroState() MacroState {
	switch s {
	case OrderStatusCancelled, OrderStatusReturned:
		return Dead
	default:
		return Alive
	}
}

// StockEffect is what a status change does to the stock of the order's items.
type StockEffect int

const (
	StockEffectNone StockEffect = iota
	StockEffectRestock
	StockEffectDebit
)

func (e StockEffect) String() string {
	switch e {
	case StockEffectRestock:
		return "restock"
	case StockEffectDebit:
		return "debit"
	default:
		return "none"
	}
}

// Sign is the multiplier applied to an item quantity.
func (e StockEffect) Sign() int {
	switch e {
	case StockEffectRestock:
		return 1
	case StockEffectDebit:
		return -1
	default:
		return 0
	}
}

func StockEffectOf(from, to OrderStatus) StockEffect {
	switch {
	case from.MacroState() == Alive && to.MacroState() == Dead:
		return StockEffectRestock
	case from.MacroState() == Dead && to.MacroState() == Alive:
		return StockEffectDebit
	default:
		return StockEffectNone
	}
}

type Order struct {
	ID             int
	TenantID       TenantID
	CustomerID     int
	Status         OrderStatus
	TotalAmount    decimal.Decimal
	TotalProfit    decimal.Decimal
	TrackingNumber *string
	CourierName    string
	Notes          string
	Items          []OrderItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
