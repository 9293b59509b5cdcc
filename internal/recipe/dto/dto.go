package dto

import (
	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/money"
)

type RecipeFilters struct {
	StoreID  string
	Page     int
	PageSize int
}

// RecipeView is a recipe with its freshly aggregated cost. The stored cost
// column is only a display cache; this view always recomputes.
type RecipeView struct {
	Recipe model.Recipe `json:"recipe"`
	Cost   money.Money  `json:"cost"`
}
