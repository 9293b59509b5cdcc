package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tindahan/pricing-service/internal/cache"
	"github.com/tindahan/pricing-service/internal/inventory"
	"github.com/tindahan/pricing-service/internal/inventory/dto"
	"github.com/tindahan/pricing-service/internal/logger"
	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/money"
	"github.com/tindahan/pricing-service/internal/pricing"
	"github.com/tindahan/pricing-service/internal/product"
	"github.com/tindahan/pricing-service/internal/uom"
)

const (
	stockLockTTL = 5 * time.Second

	MovementRestock    = "restock"
	MovementAdjustment = "adjustment"
	MovementSale       = "sale"
)

type inventoryUseCase struct {
	repo     inventory.Repository
	products product.Repository
	cache    *cache.RedisClient
	policy   pricing.StatusPolicy
	logger   logger.Logger
}

func NewInventoryUseCase(repo inventory.Repository, products product.Repository, cache *cache.RedisClient, policy pricing.StatusPolicy, log logger.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:     repo,
		products: products,
		cache:    cache,
		policy:   policy,
		logger:   log,
	}
}

func (uc *inventoryUseCase) StockBatch(ctx context.Context, input *dto.StockBatchInput) (*model.Batch, error) {
	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.StoreID != input.StoreID {
		return nil, inventory.ErrProductNotFound
	}

	batchUnit, ok := uom.Lookup(input.UnitAbbrev)
	if !ok {
		return nil, inventory.ErrUnknownUnit
	}
	productUnit, ok := uom.Lookup(p.UnitAbbrev)
	if !ok {
		return nil, inventory.ErrUnknownUnit
	}
	if batchUnit.Measure != productUnit.Measure {
		return nil, &uom.IncompatibleMeasureError{From: batchUnit, To: productUnit}
	}

	seq, err := uc.repo.NextBatchSeq(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	b := &model.Batch{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:      input.ProductID,
		Name:           input.Name,
		Cost:           input.Cost,
		Quantity:       input.Quantity,
		UnitAbbrev:     input.UnitAbbrev,
		ExpirationDate: input.ExpirationDate,
		Seq:            seq,
	}
	if b.Name == "" {
		b.Name = fmt.Sprintf("Batch %d", seq)
	}
	b.CostPerUnit = pricing.BatchUnitCost(*b, p.IsBulkCost)

	if err := uc.repo.CreateBatch(ctx, b); err != nil {
		return nil, err
	}

	movement := newMovement(input.StoreID, input.ProductID, &b.ID, MovementRestock, input.Quantity, 0, input.Quantity)
	movement.CreatedBy = optional(input.UserID)
	if err := uc.repo.LogMovement(ctx, movement); err != nil {
		uc.logger.Error("failed to log restock movement", zap.Error(err), zap.String("batch_id", b.ID))
	}

	if err := uc.refreshProductQuote(ctx, p); err != nil {
		uc.logger.Error("failed to refresh product quote after stocking", zap.Error(err), zap.String("product_id", p.ID))
	}

	return b, nil
}

func (uc *inventoryUseCase) UpdateBatch(ctx context.Context, input *dto.UpdateBatchInput) (*model.Batch, error) {
	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.StoreID != input.StoreID {
		return nil, inventory.ErrProductNotFound
	}

	b, err := uc.repo.FindBatch(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.ProductID != input.ProductID {
		return nil, inventory.ErrBatchNotFound
	}
	if input.Quantity < 0 {
		return nil, inventory.ErrInsufficientStock
	}

	before := b.Quantity

	b.Name = input.Name
	b.Cost = input.Cost
	b.Quantity = input.Quantity
	b.ExpirationDate = input.ExpirationDate
	b.CostPerUnit = pricing.BatchUnitCost(*b, p.IsBulkCost)
	b.UpdatedAt = time.Now()

	var movement *model.StockMovement
	if delta := input.Quantity - before; delta != 0 {
		movement = newMovement(input.StoreID, input.ProductID, &b.ID, MovementAdjustment, delta, before, input.Quantity)
		movement.Notes = input.Reason
		movement.CreatedBy = optional(input.UserID)
	}

	if err := uc.repo.UpdateBatchWithMovement(ctx, b, movement); err != nil {
		return nil, err
	}

	if err := uc.refreshProductQuote(ctx, p); err != nil {
		uc.logger.Error("failed to refresh product quote after batch edit", zap.Error(err), zap.String("product_id", p.ID))
	}

	return b, nil
}

func (uc *inventoryUseCase) AdjustBatch(ctx context.Context, input *dto.AdjustBatchInput) (*model.Batch, error) {
	unlock, err := uc.lockStock(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err := uc.repo.FindBatch(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.ProductID != input.ProductID {
		return nil, inventory.ErrBatchNotFound
	}

	before := b.Quantity
	after := before + input.QuantityChange
	if after < 0 {
		return nil, inventory.ErrInsufficientStock
	}

	// A count correction moves stock; it does not reprice the purchase, so
	// cost_per_unit stays as recorded.
	b.Quantity = after
	b.UpdatedAt = time.Now()

	movement := newMovement(input.StoreID, input.ProductID, &b.ID, MovementAdjustment, input.QuantityChange, before, after)
	movement.Notes = input.Reason
	movement.ReferenceType = optional(input.ReferenceType)
	movement.ReferenceID = optional(input.ReferenceID)
	movement.CreatedBy = optional(input.UserID)

	if err := uc.repo.UpdateBatchWithMovement(ctx, b, movement); err != nil {
		return nil, err
	}

	go uc.refreshProductQuoteByID(context.Background(), input.ProductID)

	return b, nil
}

// DeductSale removes sold quantity starting at the active batch. When the
// active batch runs out mid-sale the remainder rolls over to the next active
// batch, one movement row per batch touched.
func (uc *inventoryUseCase) DeductSale(ctx context.Context, input *dto.DeductSaleInput) error {
	if input.Quantity <= 0 {
		return nil
	}

	unlock, err := uc.lockStock(ctx, input.ProductID)
	if err != nil {
		return err
	}
	defer unlock()

	remaining := input.Quantity
	for remaining > 0 {
		batches, err := uc.repo.ListBatchesByProduct(ctx, input.ProductID)
		if err != nil {
			return err
		}

		active := pricing.SelectActiveBatch(batches)
		if active == nil {
			return fmt.Errorf("%w: product %s short by %v", inventory.ErrInsufficientStock, input.ProductID, remaining)
		}

		take := remaining
		if active.Quantity < take {
			take = active.Quantity
		}

		before := active.Quantity
		active.Quantity -= take
		active.UpdatedAt = time.Now()

		movement := newMovement(input.StoreID, input.ProductID, &active.ID, MovementSale, -take, before, active.Quantity)
		movement.ReferenceType = optional("sale")
		movement.ReferenceID = optional(input.OrderID)

		if err := uc.repo.UpdateBatchWithMovement(ctx, active, movement); err != nil {
			return err
		}
		remaining -= take
	}

	go uc.refreshProductQuoteByID(context.Background(), input.ProductID)

	return nil
}

func (uc *inventoryUseCase) ListStockLevels(ctx context.Context, filters *dto.StockLevelFilters) ([]dto.StockLevel, error) {
	products, err := uc.repo.ListProductsWithBatches(ctx, filters.StoreID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	levels := make([]dto.StockLevel, 0, len(products))
	for i := range products {
		p := products[i]
		status := uc.policy.Status(p.Batches, now)
		if filters.Status != "" && status != filters.Status {
			continue
		}

		var remaining float64
		for _, b := range p.Batches {
			remaining += b.Quantity
		}

		levels = append(levels, dto.StockLevel{
			Product:     p,
			ActiveBatch: pricing.SelectActiveBatch(p.Batches),
			Remaining:   remaining,
			Status:      status,
		})
	}
	return levels, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

// lockStock serializes stock mutations per product across instances.
func (uc *inventoryUseCase) lockStock(ctx context.Context, productID string) (func(), error) {
	key := fmt.Sprintf("stock:lock:%s", productID)
	holder := uuid.New().String()

	ok, err := uc.cache.AcquireLock(ctx, key, holder, stockLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, inventory.ErrLockBusy
	}
	return func() {
		if err := uc.cache.ReleaseLock(context.Background(), key, holder); err != nil {
			uc.logger.Warn("failed to release stock lock", zap.Error(err), zap.String("key", key))
		}
	}, nil
}

// refreshProductQuote re-derives the displayed cost of a bulk-costed product
// from its active batch and reconciles the quote around the held price.
// Recipe-backed products are skipped; their cost comes from aggregation.
func (uc *inventoryUseCase) refreshProductQuote(ctx context.Context, p *model.Product) error {
	if !p.IsBulkCost || p.RecipeID != nil {
		return nil
	}

	batches, err := uc.repo.ListBatchesByProduct(ctx, p.ID)
	if err != nil {
		return err
	}

	cost := money.Zero
	if active := pricing.SelectActiveBatch(batches); active != nil {
		cost = pricing.BatchUnitCost(*active, true)
	}
	if cost.Equal(p.Cost) {
		return nil
	}

	quote := pricing.Reconcile(pricing.Quote{Price: p.Price, Cost: cost}, pricing.FieldPrice)
	p.Price = quote.Price
	p.Cost = quote.Cost
	p.ProfitAmount = quote.ProfitAmount
	p.ProfitPercent = quote.ProfitPercent
	p.UpdatedAt = time.Now()

	return uc.products.UpdateQuote(ctx, p)
}

func (uc *inventoryUseCase) refreshProductQuoteByID(ctx context.Context, productID string) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil || p == nil {
		if err != nil {
			uc.logger.Error("failed to load product for quote refresh", zap.Error(err), zap.String("product_id", productID))
		}
		return
	}
	if err := uc.refreshProductQuote(ctx, p); err != nil {
		uc.logger.Error("failed to refresh product quote", zap.Error(err), zap.String("product_id", productID))
	}
}

func newMovement(storeID, productID string, batchID *string, movementType string, change, before, after float64) *model.StockMovement {
	return &model.StockMovement{
		ID:             uuid.New().String(),
		StoreID:        storeID,
		ProductID:      productID,
		BatchID:        batchID,
		MovementType:   movementType,
		QuantityChange: change,
		QuantityBefore: before,
		QuantityAfter:  after,
		CreatedAt:      time.Now(),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
