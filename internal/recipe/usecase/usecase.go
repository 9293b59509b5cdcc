package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tindahan/pricing-service/internal/logger"
	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/money"
	"github.com/tindahan/pricing-service/internal/pricing"
	"github.com/tindahan/pricing-service/internal/product"
	"github.com/tindahan/pricing-service/internal/recipe"
	"github.com/tindahan/pricing-service/internal/recipe/dto"
	"github.com/tindahan/pricing-service/internal/uom"
)

type recipeUseCase struct {
	repo     recipe.Repository
	products product.Repository
	logger   logger.Logger
}

func NewRecipeUseCase(repo recipe.Repository, products product.Repository, log logger.Logger) recipe.UseCase {
	return &recipeUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

func (uc *recipeUseCase) CreateRecipe(ctx context.Context, input *dto.CreateRecipeInput) (*dto.RecipeView, error) {
	now := time.Now()
	rec := &model.Recipe{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		StoreID:   input.StoreID,
		Name:      input.Name,
		Cost:      money.Zero,
	}
	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return &dto.RecipeView{Recipe: *rec, Cost: money.Zero}, nil
}

func (uc *recipeUseCase) GetRecipe(ctx context.Context, id string) (*dto.RecipeView, error) {
	rec, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, recipe.ErrNotFound
	}
	return uc.view(rec), nil
}

func (uc *recipeUseCase) ListRecipes(ctx context.Context, filters *dto.RecipeFilters) ([]dto.RecipeView, int, error) {
	recipes, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	views := make([]dto.RecipeView, len(recipes))
	for i := range recipes {
		views[i] = *uc.view(&recipes[i])
	}
	return views, count, nil
}

func (uc *recipeUseCase) DeleteRecipe(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *recipeUseCase) AddMaterial(ctx context.Context, input *dto.AddMaterialInput) (*dto.RecipeView, error) {
	rec, err := uc.repo.FindByID(ctx, input.RecipeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, recipe.ErrNotFound
	}

	unit, ok := uom.Lookup(input.UnitAbbrev)
	if !ok {
		return nil, recipe.ErrUnknownUnit
	}

	unitCost, err := uc.deriveUnitCost(ctx, input.ProductID, unit)
	if err != nil {
		return nil, err
	}

	matType := model.MaterialType(input.Type)
	if matType != model.MaterialOther {
		matType = model.MaterialIngredient
	}

	now := time.Now()
	m := &model.Material{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		RecipeID:   rec.ID,
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		UnitAbbrev: unit.Abbrev,
		Cost:       unitCost,
		Type:       matType,
	}
	if err := uc.repo.AddMaterial(ctx, m); err != nil {
		return nil, err
	}

	return uc.recompute(ctx, rec)
}

func (uc *recipeUseCase) UpdateMaterial(ctx context.Context, input *dto.UpdateMaterialInput) (*dto.RecipeView, error) {
	rec, err := uc.repo.FindByID(ctx, input.RecipeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, recipe.ErrNotFound
	}

	m, err := uc.repo.FindMaterial(ctx, input.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.RecipeID != rec.ID {
		return nil, recipe.ErrMaterialNotFound
	}

	unit, ok := uom.Lookup(input.UnitAbbrev)
	if !ok {
		return nil, recipe.ErrUnknownUnit
	}

	// A unit change re-derives the per-unit cost before the aggregate is
	// recomputed; quantity-only edits keep the existing conversion.
	if unit.Abbrev != m.UnitAbbrev {
		unitCost, err := uc.deriveUnitCost(ctx, m.ProductID, unit)
		if err != nil {
			return nil, err
		}
		m.Cost = unitCost
		m.UnitAbbrev = unit.Abbrev
	}
	m.Quantity = input.Quantity
	m.UpdatedAt = time.Now()

	if err := uc.repo.UpdateMaterial(ctx, m); err != nil {
		return nil, err
	}

	return uc.recompute(ctx, rec)
}

func (uc *recipeUseCase) RemoveMaterial(ctx context.Context, recipeID, materialID string) (*dto.RecipeView, error) {
	rec, err := uc.repo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, recipe.ErrNotFound
	}

	m, err := uc.repo.FindMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.RecipeID != rec.ID {
		return nil, recipe.ErrMaterialNotFound
	}

	if err := uc.repo.DeleteMaterial(ctx, materialID); err != nil {
		return nil, err
	}

	return uc.recompute(ctx, rec)
}

// deriveUnitCost reads the source product's current unit cost and converts
// it into the material's chosen unit. Products with no active batch cost
// zero for now; restocking triggers a re-derivation through the inventory
// flow.
func (uc *recipeUseCase) deriveUnitCost(ctx context.Context, productID string, materialUnit uom.Unit) (money.Money, error) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return money.Zero, err
	}
	if p == nil {
		return money.Zero, recipe.ErrProductNotFound
	}

	sourceUnit, ok := uom.Lookup(p.UnitAbbrev)
	if !ok {
		return money.Zero, recipe.ErrUnknownUnit
	}

	var perUnit money.Money
	if p.IsBulkCost {
		active := pricing.SelectActiveBatch(p.Batches)
		if active == nil {
			return money.Zero, nil
		}
		perUnit = pricing.BatchUnitCost(*active, true)
		if u, ok := uom.Lookup(active.UnitAbbrev); ok {
			sourceUnit = u
		}
	} else {
		perUnit = p.Cost
	}

	return pricing.MaterialUnitCost(perUnit, sourceUnit, materialUnit)
}

// recompute reloads materials, aggregates the recipe cost, persists it and
// propagates the fresh cost into the quote of every owning product.
func (uc *recipeUseCase) recompute(ctx context.Context, rec *model.Recipe) (*dto.RecipeView, error) {
	materials, err := uc.repo.ListMaterials(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Materials = materials
	rec.Cost = pricing.AggregateCost(materials)
	rec.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	owners, err := uc.repo.ListOwningProducts(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	for i := range owners {
		p := &owners[i]
		quote := pricing.Reconcile(pricing.Quote{Price: p.Price, Cost: rec.Cost}, pricing.FieldPrice)
		p.Price = quote.Price
		p.Cost = quote.Cost
		p.ProfitAmount = quote.ProfitAmount
		p.ProfitPercent = quote.ProfitPercent
		p.UpdatedAt = time.Now()
		if err := uc.products.UpdateQuote(ctx, p); err != nil {
			uc.logger.Error("failed to propagate recipe cost to product",
				zap.String("recipe_id", rec.ID),
				zap.String("product_id", p.ID),
				zap.Error(err),
			)
		}
	}

	return &dto.RecipeView{Recipe: *rec, Cost: rec.Cost}, nil
}

// view recomputes the aggregate without persisting; reads must not trust
// the stored cost column.
func (uc *recipeUseCase) view(rec *model.Recipe) *dto.RecipeView {
	cost := pricing.AggregateCost(rec.Materials)
	rec.Cost = cost
	return &dto.RecipeView{Recipe: *rec, Cost: cost}
}
