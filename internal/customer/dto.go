package customer

import (
	"time"

	"sellerhub/internal/domain"
)

type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Address string `json:"address"`
}

type CustomerDTO struct {
	ID                  int        `json:"id"`
	Name                string     `json:"name"`
	Phone               string     `json:"phone"`
	City                string     `json:"city"`
	Address             string     `json:"address"`
	TotalOrders         int        `json:"totalOrders"`
	TotalSpent          string     `json:"totalSpent"`
	LastOrderDate       *time.Time `json:"lastOrderDate"`
	FavoriteItem        *string    `json:"favoriteItem"`
	LastMarketingSentAt *time.Time `json:"lastMarketingSentAt"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type CustomerResponse struct {
	TraceID  string      `json:"traceId"`
	Customer CustomerDTO `json:"customer"`
}

type CustomerListResponse struct {
	TraceID   string        `json:"traceId"`
	Customers []CustomerDTO `json:"customers"`
}

func toDTO(c domain.Customer) CustomerDTO {
	return CustomerDTO{
		ID:                  c.ID,
		Name:                c.Name,
		Phone:               c.Phone,
		City:                c.City,
		Address:             c.Address,
		TotalOrders:         c.TotalOrders,
		TotalSpent:          c.TotalSpent.StringFixed(2),
		LastOrderDate:       c.LastOrderDate,
		FavoriteItem:        c.FavoriteItem,
		LastMarketingSentAt: c.LastMarketingSentAt,
		CreatedAt:           c.CreatedAt,
	}
}
