package inventory

import (
	"context"

	"github.com/tindahan/pricing-service/internal/inventory/dto"
	"github.com/tindahan/pricing-service/internal/model"
)

type Repository interface {
	CreateBatch(ctx context.Context, b *model.Batch) error
	FindBatch(ctx context.Context, id string) (*model.Batch, error)
	ListBatchesByProduct(ctx context.Context, productID string) ([]model.Batch, error)
	NextBatchSeq(ctx context.Context, productID string) (int, error)

	// UpdateBatchWithMovement transactionally persists the batch state and
	// its audit movement.
	UpdateBatchWithMovement(ctx context.Context, b *model.Batch, m *model.StockMovement) error

	LogMovement(ctx context.Context, m *model.StockMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)

	// ListProductsWithBatches loads every product of a store with batches
	// attached, for stock level listings.
	ListProductsWithBatches(ctx context.Context, storeID string) ([]model.Product, error)
}
