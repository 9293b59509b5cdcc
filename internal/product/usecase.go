package product

import (
	"context"
	"errors"

	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/product/dto"
)

var (
	ErrNotFound         = errors.New("product: not found")
	ErrDuplicateSKU     = errors.New("product: SKU already exists")
	ErrDuplicateBarcode = errors.New("product: barcode already exists")
	ErrUnknownUnit      = errors.New("product: unknown unit of measurement")
	ErrUnknownField     = errors.New("product: unknown edited field")
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*dto.ProductView, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductView, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*dto.ProductView, error)
	DeleteProduct(ctx context.Context, id string) error

	// EditQuote applies one user edit to the pricing tuple and returns the
	// reconciled view.
	EditQuote(ctx context.Context, input *dto.EditQuoteInput) (*dto.ProductView, error)
}
