package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tindahan/pricing-service/internal/auth"
	"github.com/tindahan/pricing-service/internal/logger"
	"github.com/tindahan/pricing-service/internal/recipe"
	"github.com/tindahan/pricing-service/internal/recipe/dto"
	"github.com/tindahan/pricing-service/internal/uom"
)

type RecipeHandler struct {
	uc     recipe.UseCase
	logger logger.Logger
}

func NewRecipeHandler(uc recipe.UseCase, log logger.Logger) *RecipeHandler {
	return &RecipeHandler{uc: uc, logger: log}
}

func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recipes", h.Create)
	rg.GET("/recipes", h.List)
	rg.GET("/recipes/:id", h.Get)
	rg.DELETE("/recipes/:id", h.Delete)
	rg.POST("/recipes/:id/materials", h.AddMaterial)
	rg.PUT("/recipes/:id/materials/:materialId", h.UpdateMaterial)
	rg.DELETE("/recipes/:id/materials/:materialId", h.RemoveMaterial)
}

type createRecipeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.uc.CreateRecipe(c.Request.Context(), &dto.CreateRecipeInput{
		StoreID: auth.StoreID(c),
		Name:    req.Name,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	view, err := h.uc.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type listRecipesQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

func (h *RecipeHandler) List(c *gin.Context) {
	var q listRecipesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views, total, err := h.uc.ListRecipes(c.Request.Context(), &dto.RecipeFilters{
		StoreID:  auth.StoreID(c),
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": views, "total": total})
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addMaterialRequest struct {
	ProductID  string  `json:"product_id" binding:"required"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
	UnitAbbrev string  `json:"unit_abbrev" binding:"required"`
	Type       string  `json:"type" binding:"omitempty,oneof=ingredient other"`
}

func (h *RecipeHandler) AddMaterial(c *gin.Context) {
	var req addMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.uc.AddMaterial(c.Request.Context(), &dto.AddMaterialInput{
		RecipeID:   c.Param("id"),
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		UnitAbbrev: req.UnitAbbrev,
		Type:       req.Type,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

type updateMaterialRequest struct {
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
	UnitAbbrev string  `json:"unit_abbrev" binding:"required"`
}

func (h *RecipeHandler) UpdateMaterial(c *gin.Context) {
	var req updateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.uc.UpdateMaterial(c.Request.Context(), &dto.UpdateMaterialInput{
		RecipeID:   c.Param("id"),
		MaterialID: c.Param("materialId"),
		Quantity:   req.Quantity,
		UnitAbbrev: req.UnitAbbrev,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) RemoveMaterial(c *gin.Context) {
	view, err := h.uc.RemoveMaterial(c.Request.Context(), c.Param("id"), c.Param("materialId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) respondError(c *gin.Context, err error) {
	var incompat *uom.IncompatibleMeasureError
	switch {
	case errors.Is(err, recipe.ErrNotFound), errors.Is(err, recipe.ErrMaterialNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, recipe.ErrProductNotFound),
		errors.Is(err, recipe.ErrUnknownUnit),
		errors.As(err, &incompat):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("recipe handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
