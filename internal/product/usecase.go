package product

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"sellerhub/internal/domain"
	apperrors "sellerhub/internal/errors"
)

const maxSearchIDs = 100

type productUseCase struct {
	service  Service
	resolver TenantResolver
	logger   *zap.Logger
}

func NewUseCase(service Service, resolver TenantResolver, logger *zap.Logger) UseCase {
	return &productUseCase{service: service, resolver: resolver, logger: logger}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, principalID int, req CreateProductRequest) (*ProductDTO, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	tenantID, err := uc.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}

	p, err := uc.service.Create(ctx, domain.Product{
		TenantID:      tenantID,
		Name:          req.Name,
		CostPrice:     req.CostPrice,
		SellPrice:     req.SellPrice,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		return nil, err
	}

	dto := toDTO(*p, uc.lowStockThreshold(ctx, tenantID))
	return &dto, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, principalID int) ([]ProductDTO, error) {
	tenantID, err := uc.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}

	products, err := uc.service.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	threshold := uc.lowStockThreshold(ctx, tenantID)
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toDTO(p, threshold))
	}
	return dtos, nil
}

func (uc *productUseCase) SearchProducts(ctx context.Context, principalID int, req SearchProductsRequest) (*SearchProductsResponse, error) {
	if err := validateSearch(req); err != nil {
		return nil, err
	}

	tenantID, err := uc.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}

	found, notFoundIDs, err := uc.service.GetProductsByIDsAndTenant(ctx, req.ProductIDs, tenantID)
	if err != nil {
		return nil, err
	}

	threshold := uc.lowStockThreshold(ctx, tenantID)
	products := make([]ProductDTO, 0, len(found))
	for _, p := range found {
		products = append(products, toDTO(p, threshold))
	}

	if notFoundIDs == nil {
		notFoundIDs = []int{}
	}

	return &SearchProductsResponse{
		Products: products,
		NotFound: notFoundIDs,
	}, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, principalID int, productID int) (*DeleteProductResponse, error) {
	tenantID, err := uc.resolver.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}

	archived, err := uc.service.Delete(ctx, productID, tenantID)
	if err != nil {
		return nil, err
	}

	return &DeleteProductResponse{ProductID: productID, Archived: archived}, nil
}

// lowStockThreshold falls back to the default when settings cannot be read;
// the flag is informational and must not fail the request.
func (uc *productUseCase) lowStockThreshold(ctx context.Context, tenantID domain.TenantID) int {
	settings, err := uc.resolver.Settings(ctx, tenantID)
	if err != nil {
		uc.logger.Warn("reading tenant settings", zap.Int("tenantId", int(tenantID)), zap.Error(err))
		return domain.DefaultLowStockThreshold
	}
	return settings.LowStockThreshold
}

func toDTO(p domain.Product, lowStockThreshold int) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		CostPrice:     p.CostPrice.StringFixed(2),
		SellPrice:     p.SellPrice.StringFixed(2),
		StockQuantity: p.StockQuantity,
		LowStock:      p.IsLowStock(lowStockThreshold),
	}
}

func validateCreate(req CreateProductRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if req.CostPrice.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "costPrice", Message: "costPrice must be non-negative"})
	}
	if req.SellPrice.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "sellPrice", Message: "sellPrice must be non-negative"})
	}
	if req.StockQuantity < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "stockQuantity", Message: "stockQuantity must be non-negative"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func validateSearch(req SearchProductsRequest) error {
	if len(req.ProductIDs) == 0 {
		return apperrors.NewValidationError("productIds is required", apperrors.ValidationDetail{
			Field:   "productIds",
			Message: "productIds must not be empty",
		})
	}

	if len(req.ProductIDs) > maxSearchIDs {
		msg := "productIds exceeds maximum of " + strconv.Itoa(maxSearchIDs)
		return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "productIds",
			Message: msg,
		})
	}

	for _, id := range req.ProductIDs {
		if id <= 0 {
			msg := "each productId must be a positive integer"
			return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
				Field:   "productIds",
				Message: msg,
			})
		}
	}

	return nil
}
