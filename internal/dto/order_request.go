package dto

type CreateOrderRequest struct {
	CustomerID  int         `json:"customerId"`
	Items       []OrderLine `json:"items"`
	CourierName string      `json:"courierName"`
	Notes       string      `json:"notes"`
}

type OrderLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// OrderMeta is stored on the order as-is; it has no effect on stock or totals.
type OrderMeta struct {
	CourierName string
	Notes       string
}

type TransitionOrderRequest struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"trackingNumber,omitempty"`
}
