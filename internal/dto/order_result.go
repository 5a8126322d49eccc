package dto

import "sellerhub/internal/domain"

type CreateOrderResult struct {
	Order              domain.Order
	LowStockProductIDs []int
}

type TransitionResult struct {
	Order          domain.Order
	PreviousStatus domain.OrderStatus
	Effect         domain.StockEffect
}

func ToOrderDTO(o domain.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase.StringFixed(2),
			CostAtPurchase:  item.CostAtPurchase.StringFixed(2),
		})
	}

	return OrderDTO{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		Status:         string(o.Status),
		TotalAmount:    o.TotalAmount.StringFixed(2),
		TotalProfit:    o.TotalProfit.StringFixed(2),
		TrackingNumber: o.TrackingNumber,
		CourierName:    o.CourierName,
		Notes:          o.Notes,
		Items:          items,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
