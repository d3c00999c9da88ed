package service

import (
	"context"
	"log/slog"

	"github.com/storefrontgo/dashboard/internal/domain"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/logger"
)

// ProductManager is the slice of the product gateway the admin catalog
// operations need.
type ProductManager interface {
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, productID int64) error
}

// CatalogService serves admin catalog management. Reads stay on the gateway;
// only mutations pass through here because only they are gated.
type CatalogService struct {
	products ProductManager
}

// NewCatalogService creates the catalog service.
func NewCatalogService(products ProductManager) *CatalogService {
	return &CatalogService{products: products}
}

// Create adds a product to the catalog. Admin only.
func (s *CatalogService) Create(ctx context.Context, identity domain.Identity, product domain.Product) (*domain.Product, error) {
	if !identity.Can(domain.CapManageCatalog) {
		return nil, apperrors.Forbidden("catalog management requires the admin role")
	}
	if product.Price <= 0 {
		return nil, apperrors.InvalidInput("product price must be positive")
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("product added",
		slog.Int64("product_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}

// Delete removes a product from the catalog. Admin only.
func (s *CatalogService) Delete(ctx context.Context, identity domain.Identity, productID int64) error {
	if !identity.Can(domain.CapManageCatalog) {
		return apperrors.Forbidden("catalog management requires the admin role")
	}
	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("product removed", slog.Int64("product_id", productID))
	return nil
}
