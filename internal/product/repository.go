package product

import (
	"context"

	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error

	// Batches in stocking order; attached to FindByID results as well.
	ListBatches(ctx context.Context, productID string) ([]model.Batch, error)

	// UpdateQuote persists only the pricing tuple.
	UpdateQuote(ctx context.Context, p *model.Product) error

	IsSKUUnique(ctx context.Context, storeID, sku, excludeID string) (bool, error)
	IsBarcodeUnique(ctx context.Context, storeID, barcode, excludeID string) (bool, error)
}
