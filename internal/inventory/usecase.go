package inventory

import (
	"context"
	"errors"

	"github.com/tindahan/pricing-service/internal/inventory/dto"
	"github.com/tindahan/pricing-service/internal/model"
)

var (
	ErrProductNotFound   = errors.New("inventory: product not found")
	ErrBatchNotFound     = errors.New("inventory: batch not found")
	ErrUnknownUnit       = errors.New("inventory: unknown unit of measurement")
	ErrInsufficientStock = errors.New("inventory: insufficient stock")
	ErrLockBusy          = errors.New("inventory: stock busy, try again later")
)

type UseCase interface {
	StockBatch(ctx context.Context, input *dto.StockBatchInput) (*model.Batch, error)
	UpdateBatch(ctx context.Context, input *dto.UpdateBatchInput) (*model.Batch, error)
	AdjustBatch(ctx context.Context, input *dto.AdjustBatchInput) (*model.Batch, error)

	// DeductSale removes sold quantity from the active batch, rolling over
	// to the next active batch when one depletes mid-sale.
	DeductSale(ctx context.Context, input *dto.DeductSaleInput) error

	ListStockLevels(ctx context.Context, filters *dto.StockLevelFilters) ([]dto.StockLevel, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
