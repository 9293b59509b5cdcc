package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tindahan/pricing-service/internal/cache"
	"github.com/tindahan/pricing-service/internal/logger"
	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/money"
	"github.com/tindahan/pricing-service/internal/pricing"
	"github.com/tindahan/pricing-service/internal/product"
	"github.com/tindahan/pricing-service/internal/product/dto"
	"github.com/tindahan/pricing-service/internal/search"
	"github.com/tindahan/pricing-service/internal/uom"
)

const productIndex = "products"

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	policy pricing.StatusPolicy
	logger logger.Logger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, policy pricing.StatusPolicy, log logger.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		policy: policy,
		logger: log,
	}
}

// buildView attaches the engine-derived fields to a product. Stored derived
// values are display hints at best; the view recomputes them from batches
// every time.
func (uc *productUseCase) buildView(p *model.Product) *dto.ProductView {
	active := pricing.SelectActiveBatch(p.Batches)

	cost := p.Cost
	if p.IsBulkCost && p.RecipeID == nil {
		if active != nil {
			cost = pricing.BatchUnitCost(*active, true)
		} else {
			cost = money.Zero
		}
	}

	costPerUnit := cost
	quote := pricing.Reconcile(pricing.Quote{Price: p.Price, Cost: cost}, pricing.FieldPrice)

	return &dto.ProductView{
		Product:     *p,
		ActiveBatch: active,
		CostPerUnit: costPerUnit,
		StockStatus: uc.policy.Status(p.Batches, time.Now()),
		Quote:       quote,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*dto.ProductView, error) {
	if _, ok := uom.Lookup(input.UnitAbbrev); !ok {
		return nil, product.ErrUnknownUnit
	}

	unique, err := uc.repo.IsSKUUnique(ctx, input.StoreID, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, product.ErrDuplicateSKU
	}

	if input.Barcode != "" {
		unique, err := uc.repo.IsBarcodeUnique(ctx, input.StoreID, input.Barcode, "")
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, product.ErrDuplicateBarcode
		}
	}

	now := time.Now()

	p := &model.Product{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		StoreID:    input.StoreID,
		SKU:        input.SKU,
		Barcode:    optional(input.Barcode),
		Name:       input.Name,
		Description: optional(input.Description),
		SoldBy:     model.SoldBy(input.SoldBy),
		UnitAbbrev: input.UnitAbbrev,
		IsBulkCost: input.IsBulkCost,
		ForSale:    input.ForSale,
		RecipeID:   optional(input.RecipeID),
		Price:      input.Price,
		Cost:       input.Cost,
		IsActive:   true,
	}

	// Cost of recipe-backed products is derived, never taken from input.
	if p.RecipeID != nil {
		p.Cost = money.Zero
	}

	quote := pricing.Reconcile(pricing.Quote{Price: p.Price, Cost: p.Cost}, pricing.FieldPrice)
	applyQuote(p, quote)

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background(), p.StoreID)
	go uc.syncToElastic(context.Background(), p)

	return uc.buildView(p), nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductView, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return uc.buildView(p), nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := uc.listCacheKey(filters)
	if err == nil {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var cached struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": []map[string]interface{}{
						{
							"query_string": map[string]interface{}{
								"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
								"fields": []string{"name^3", "sku", "barcode", "description"},
							},
						},
						{
							"term": map[string]interface{}{
								"store_id": filters.StoreID,
							},
						},
					},
				},
			},
			"from": (filters.Page - 1) * filters.PageSize,
		}
		if filters.PageSize > 0 {
			q["size"] = filters.PageSize
		}

		res, err := uc.es.Search(ctx, productIndex, q)
		if err == nil {
			var hits []model.Product
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err == nil {
					hits = append(hits, p)
				}
			}
			return hits, res.Hits.Total.Value, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" {
		payload := struct {
			Products []model.Product
			Count    int
		}{products, count}
		if data, err := json.Marshal(payload); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*dto.ProductView, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	if _, ok := uom.Lookup(input.UnitAbbrev); !ok {
		return nil, product.ErrUnknownUnit
	}

	if p.SKU != input.SKU {
		unique, err := uc.repo.IsSKUUnique(ctx, input.StoreID, input.SKU, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, product.ErrDuplicateSKU
		}
	}

	p.SKU = input.SKU
	p.Barcode = optional(input.Barcode)
	p.Name = input.Name
	p.Description = optional(input.Description)
	p.SoldBy = model.SoldBy(input.SoldBy)
	p.UnitAbbrev = input.UnitAbbrev
	p.IsBulkCost = input.IsBulkCost
	p.ForSale = input.ForSale
	p.RecipeID = optional(input.RecipeID)
	p.IsActive = input.IsActive
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background(), p.StoreID)
	go uc.syncToElastic(context.Background(), p)

	return uc.buildView(p), nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil // already gone
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background(), p.StoreID)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) EditQuote(ctx context.Context, input *dto.EditQuoteInput) (*dto.ProductView, error) {
	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	quote := pricing.Quote{
		Price:        p.Price,
		Cost:         p.Cost,
		ProfitAmount: p.ProfitAmount,
		ProfitPercent: p.ProfitPercent,
	}

	switch input.EditedField {
	case "cost":
		if err := pricing.ValidateCostEdit(*p); err != nil {
			return nil, err
		}
		// A fresh cost re-derives profit from the held price.
		quote.Cost = input.Value
		quote = pricing.Reconcile(quote, pricing.FieldPrice)
	case string(pricing.FieldPrice):
		quote.Price = input.Value
		quote = pricing.Reconcile(quote, pricing.FieldPrice)
	case string(pricing.FieldProfitAmount):
		quote.ProfitAmount = input.Value
		quote = pricing.Reconcile(quote, pricing.FieldProfitAmount)
	case string(pricing.FieldProfitPercent):
		quote.ProfitPercent = input.Value
		quote = pricing.Reconcile(quote, pricing.FieldProfitPercent)
	default:
		return nil, product.ErrUnknownField
	}

	applyQuote(p, quote)
	p.UpdatedAt = time.Now()

	if err := uc.repo.UpdateQuote(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background(), p.StoreID)

	view := uc.buildView(p)
	view.Quote = quote
	return view, nil
}

func applyQuote(p *model.Product, q pricing.Quote) {
	p.Price = q.Price
	p.Cost = q.Cost
	p.ProfitAmount = q.ProfitAmount
	p.ProfitPercent = q.ProfitPercent
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (uc *productUseCase) listCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%s:%x", filters.StoreID, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateListCache(ctx context.Context, storeID string) {
	pattern := fmt.Sprintf("products:list:%s:*", storeID)
	keys, err := uc.cache.Client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"store_id": { "type": "keyword" },
				"name": { "type": "text" },
				"description": { "type": "text" },
				"sku": { "type": "keyword" },
				"barcode": { "type": "keyword" },
				"price": { "type": "keyword" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}
