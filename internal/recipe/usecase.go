package recipe

import (
	"context"
	"errors"

	"github.com/tindahan/pricing-service/internal/recipe/dto"
)

var (
	ErrNotFound         = errors.New("recipe: not found")
	ErrMaterialNotFound = errors.New("recipe: material not found")
	ErrProductNotFound  = errors.New("recipe: source product not found")
	ErrUnknownUnit      = errors.New("recipe: unknown unit of measurement")
)

type UseCase interface {
	CreateRecipe(ctx context.Context, input *dto.CreateRecipeInput) (*dto.RecipeView, error)
	GetRecipe(ctx context.Context, id string) (*dto.RecipeView, error)
	ListRecipes(ctx context.Context, filters *dto.RecipeFilters) ([]dto.RecipeView, int, error)
	DeleteRecipe(ctx context.Context, id string) error

	AddMaterial(ctx context.Context, input *dto.AddMaterialInput) (*dto.RecipeView, error)
	UpdateMaterial(ctx context.Context, input *dto.UpdateMaterialInput) (*dto.RecipeView, error)
	RemoveMaterial(ctx context.Context, recipeID, materialID string) (*dto.RecipeView, error)
}
