package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tindahan/pricing-service/internal/auth"
	"github.com/tindahan/pricing-service/internal/logger"
	"github.com/tindahan/pricing-service/internal/money"
	"github.com/tindahan/pricing-service/internal/pricing"
	"github.com/tindahan/pricing-service/internal/product"
	"github.com/tindahan/pricing-service/internal/product/dto"
	"github.com/tindahan/pricing-service/internal/uom"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.Logger
}

func NewProductHandler(uc product.UseCase, log logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.Create)
	rg.GET("/products", h.List)
	rg.GET("/products/:id", h.Get)
	rg.PUT("/products/:id", h.Update)
	rg.DELETE("/products/:id", h.Delete)
	rg.PATCH("/products/:id/quote", h.EditQuote)
	rg.GET("/units", h.ListUnits)
}

type createProductRequest struct {
	SKU         string      `json:"sku" binding:"required"`
	Barcode     string      `json:"barcode"`
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	SoldBy      string      `json:"sold_by" binding:"required,oneof=pieces weight"`
	UnitAbbrev  string      `json:"unit_abbrev" binding:"required"`
	IsBulkCost  bool        `json:"is_bulk_cost"`
	ForSale     bool        `json:"for_sale"`
	RecipeID    string      `json:"recipe_id"`
	Price       money.Money `json:"price"`
	Cost        money.Money `json:"cost"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		StoreID:     auth.StoreID(c),
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		Name:        req.Name,
		Description: req.Description,
		SoldBy:      req.SoldBy,
		UnitAbbrev:  req.UnitAbbrev,
		IsBulkCost:  req.IsBulkCost,
		ForSale:     req.ForSale,
		RecipeID:    req.RecipeID,
		Price:       req.Price,
		Cost:        req.Cost,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *ProductHandler) Get(c *gin.Context) {
	view, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type listProductsQuery struct {
	ForSale   *bool  `form:"for_sale"`
	IsActive  *bool  `form:"is_active"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page,default=1"`
	PageSize  int    `form:"page_size,default=20"`
}

func (h *ProductHandler) List(c *gin.Context) {
	var q listProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, total, err := h.uc.ListProducts(c.Request.Context(), &dto.ProductFilters{
		StoreID:     auth.StoreID(c),
		ForSale:     q.ForSale,
		IsActive:    q.IsActive,
		SearchQuery: q.Search,
		SortBy:      q.SortBy,
		SortOrder:   q.SortOrder,
		Page:        q.Page,
		PageSize:    q.PageSize,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": products, "total": total})
}

type updateProductRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Barcode     string `json:"barcode"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SoldBy      string `json:"sold_by" binding:"required,oneof=pieces weight"`
	UnitAbbrev  string `json:"unit_abbrev" binding:"required"`
	IsBulkCost  bool   `json:"is_bulk_cost"`
	ForSale     bool   `json:"for_sale"`
	RecipeID    string `json:"recipe_id"`
	IsActive    bool   `json:"is_active"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:          c.Param("id"),
		StoreID:     auth.StoreID(c),
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		Name:        req.Name,
		Description: req.Description,
		SoldBy:      req.SoldBy,
		UnitAbbrev:  req.UnitAbbrev,
		IsBulkCost:  req.IsBulkCost,
		ForSale:     req.ForSale,
		RecipeID:    req.RecipeID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type editQuoteRequest struct {
	EditedField string      `json:"edited_field" binding:"required,oneof=price profitAmount profitPercent cost"`
	Value       money.Money `json:"value"`
}

func (h *ProductHandler) EditQuote(c *gin.Context) {
	var req editQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.uc.EditQuote(c.Request.Context(), &dto.EditQuoteInput{
		ProductID:   c.Param("id"),
		StoreID:     auth.StoreID(c),
		EditedField: req.EditedField,
		Value:       req.Value,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProductHandler) ListUnits(c *gin.Context) {
	units := uom.All()
	out := make([]gin.H, 0, len(units))
	for _, u := range units {
		out = append(out, gin.H{"abbreviation": u.Abbrev, "label": u.Label, "measure": u.Measure})
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, product.ErrDuplicateSKU),
		errors.Is(err, product.ErrDuplicateBarcode),
		errors.Is(err, product.ErrUnknownUnit),
		errors.Is(err, product.ErrUnknownField),
		errors.Is(err, pricing.ErrCostDerived):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("product handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
