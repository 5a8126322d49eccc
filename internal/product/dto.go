package product

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name          string          `json:"name"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	SellPrice     decimal.Decimal `json:"sellPrice"`
	StockQuantity int             `json:"stockQuantity"`
}

type SearchProductsRequest struct {
	ProductIDs []int `json:"productIds"`
}

type SearchProductsResponse struct {
	Products []ProductDTO `json:"products"`
	NotFound []int        `json:"notFound"`
}

type ProductDTO struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	CostPrice     string `json:"costPrice"`
	SellPrice     string `json:"sellPrice"`
	StockQuantity int    `json:"stockQuantity"`
	LowStock      bool   `json:"lowStock"`
}

type DeleteProductResponse struct {
	ProductID int  `json:"productId"`
	Archived  bool `json:"archived"`
}
