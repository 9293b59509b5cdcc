package recipe

import (
	"context"

	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/recipe/dto"
)

type Repository interface {
	Create(ctx context.Context, r *model.Recipe) error
	FindByID(ctx context.Context, id string) (*model.Recipe, error)
	FindAll(ctx context.Context, filters *dto.RecipeFilters) ([]model.Recipe, int, error)
	Update(ctx context.Context, r *model.Recipe) error
	Delete(ctx context.Context, id string) error

	ListMaterials(ctx context.Context, recipeID string) ([]model.Material, error)
	FindMaterial(ctx context.Context, id string) (*model.Material, error)
	AddMaterial(ctx context.Context, m *model.Material) error
	UpdateMaterial(ctx context.Context, m *model.Material) error
	DeleteMaterial(ctx context.Context, id string) error

	// Products whose cost derives from the recipe, for quote propagation.
	ListOwningProducts(ctx context.Context, recipeID string) ([]model.Product, error)
}
