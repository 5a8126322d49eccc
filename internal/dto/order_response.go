package dto

import "time"

type CreateOrderResponse struct {
	TraceID            string    `json:"traceId"`
	OrderID            int       `json:"orderId"`
	Status             string    `json:"status"`
	TotalAmount        string    `json:"totalAmount"`
	Profit             string    `json:"profit"`
	LowStockProductIDs []int     `json:"lowStockProductIds"`
	Timestamp          time.Time `json:"timestamp"`
}

type TransitionOrderResponse struct {
	TraceID        string    `json:"traceId"`
	PreviousStatus string    `json:"previousStatus"`
	StockEffect    string    `json:"stockEffect"`
	Order          OrderDTO  `json:"order"`
	Timestamp      time.Time `json:"timestamp"`
}

type OrderDTO struct {
	ID             int            `json:"id"`
	CustomerID     int            `json:"customerId"`
	Status         string         `json:"status"`
	TotalAmount    string         `json:"totalAmount"`
	TotalProfit    string         `json:"totalProfit"`
	TrackingNumber *string        `json:"trackingNumber"`
	CourierName    string         `json:"courierName"`
	Notes          string         `json:"notes"`
	Items          []OrderItemDTO `json:"items"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type OrderItemDTO struct {
	ProductID       int    `json:"productId"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase string `json:"priceAtPurchase"`
	CostAtPurchase  string `json:"costAtPurchase"`
}

type OrderListResponse struct {
	Orders []OrderDTO `json:"orders"`
}
