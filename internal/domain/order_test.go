package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_MacroState(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   MacroState
	}{
		{OrderStatusNew, Alive},
		{OrderStatusPacked, Alive},
		{OrderStatusWithCourier, Alive},
		{OrderStatusDelivered, Alive},
		{OrderStatusCancelled, Dead},
		{OrderStatusReturned, Dead},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.MacroState())
		})
	}
}

func TestStockEffectOf(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want StockEffect
	}{
		{"cancel new order", OrderStatusNew, OrderStatusCancelled, StockEffectRestock},
		{"return delivered order", OrderStatusDelivered, OrderStatusReturned, StockEffectRestock},
		{"reactivate cancelled order", OrderStatusCancelled, OrderStatusNew, StockEffectDebit},
		{"reactivate returned to courier", OrderStatusReturned, OrderStatusWithCourier, StockEffectDebit},
		{"pack order", OrderStatusNew, OrderStatusPacked, StockEffectNone},
		{"dead to dead", OrderStatusCancelled, OrderStatusReturned, StockEffectNone},
		{"same status", OrderStatusDelivered, OrderStatusDelivered, StockEffectNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StockEffectOf(tt.from, tt.to))
		})
	}
}

func TestStockEffect_Sign(t *testing.T) {
	assert.Equal(t, 1, StockEffectRestock.Sign())
	assert.Equal(t, -1, StockEffectDebit.Sign())
	assert.Equal(t, 0, StockEffectNone.Sign())
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("WITH_COURIER")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusWithCourier, status)

	_, ok = ParseOrderStatus("SHIPPED")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("new")
	assert.False(t, ok)
}

func TestOrderStatusConstants(t *testing.T) {
	assert.Equal(t, OrderStatus("NEW"), OrderStatusNew)
	assert.Equal(t, OrderStatus("CANCELLED"), OrderStatusCancelled)
	assert.Equal(t, OrderStatus("RETURNED"), OrderStatusReturned)
	assert.Len(t, OrderStatuses, 6)
}
