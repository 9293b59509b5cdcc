package dto

type CreateRecipeInput struct {
	StoreID string
	Name    string
}

type AddMaterialInput struct {
	RecipeID   string
	ProductID  string
	Quantity   float64
	UnitAbbrev string
	Type       string // "ingredient" or "other"
}

type UpdateMaterialInput struct {
	RecipeID   string
	MaterialID string
	Quantity   float64
	UnitAbbrev string
}
