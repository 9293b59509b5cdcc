package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tindahan/pricing-service/internal/auth"
	"github.com/tindahan/pricing-service/internal/inventory"
	"github.com/tindahan/pricing-service/internal/inventory/dto"
	"github.com/tindahan/pricing-service/internal/logger"
	"github.com/tindahan/pricing-service/internal/money"
	"github.com/tindahan/pricing-service/internal/pricing"
	"github.com/tindahan/pricing-service/internal/uom"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.Logger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: log}
}

func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/:id/batches", h.StockBatch)
	rg.PUT("/products/:id/batches/:batchId", h.UpdateBatch)
	rg.POST("/products/:id/batches/:batchId/adjust", h.AdjustBatch)
	rg.GET("/stock-levels", h.ListStockLevels)
	rg.GET("/stock-movements", h.ListMovements)
}

type stockBatchRequest struct {
	Name           string      `json:"name"`
	Cost           money.Money `json:"cost"`
	Quantity       float64     `json:"quantity" binding:"required,gt=0"`
	UnitAbbrev     string      `json:"unit_abbrev" binding:"required"`
	ExpirationDate *time.Time  `json:"expiration_date"`
}

func (h *InventoryHandler) StockBatch(c *gin.Context) {
	var req stockBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.uc.StockBatch(c.Request.Context(), &dto.StockBatchInput{
		StoreID:        auth.StoreID(c),
		ProductID:      c.Param("id"),
		Name:           req.Name,
		Cost:           req.Cost,
		Quantity:       req.Quantity,
		UnitAbbrev:     req.UnitAbbrev,
		ExpirationDate: req.ExpirationDate,
		UserID:         auth.UserID(c),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

type updateBatchRequest struct {
	Name           string      `json:"name"`
	Cost           money.Money `json:"cost"`
	Quantity       float64     `json:"quantity" binding:"gte=0"`
	ExpirationDate *time.Time  `json:"expiration_date"`
	Reason         string      `json:"reason"`
}

func (h *InventoryHandler) UpdateBatch(c *gin.Context) {
	var req updateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.uc.UpdateBatch(c.Request.Context(), &dto.UpdateBatchInput{
		StoreID:        auth.StoreID(c),
		ProductID:      c.Param("id"),
		BatchID:        c.Param("batchId"),
		Name:           req.Name,
		Cost:           req.Cost,
		Quantity:       req.Quantity,
		ExpirationDate: req.ExpirationDate,
		Reason:         req.Reason,
		UserID:         auth.UserID(c),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

type adjustBatchRequest struct {
	QuantityChange float64 `json:"quantity_change" binding:"required"`
	Reason         string  `json:"reason"`
	ReferenceType  string  `json:"reference_type" binding:"omitempty,oneof=manual_adjustment sale return"`
	ReferenceID    string  `json:"reference_id"`
}

func (h *InventoryHandler) AdjustBatch(c *gin.Context) {
	var req adjustBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.uc.AdjustBatch(c.Request.Context(), &dto.AdjustBatchInput{
		StoreID:        auth.StoreID(c),
		ProductID:      c.Param("id"),
		BatchID:        c.Param("batchId"),
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		ReferenceType:  req.ReferenceType,
		ReferenceID:    req.ReferenceID,
		UserID:         auth.UserID(c),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

type stockLevelsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=noBatches outOfStock expired expiringSoon lowStock available"`
}

func (h *InventoryHandler) ListStockLevels(c *gin.Context) {
	var q stockLevelsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	levels, err := h.uc.ListStockLevels(c.Request.Context(), &dto.StockLevelFilters{
		StoreID: auth.StoreID(c),
		Status:  pricing.StockStatus(q.Status),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": levels})
}

type movementsQuery struct {
	ProductID    string     `form:"product_id"`
	MovementType string     `form:"movement_type" binding:"omitempty,oneof=restock adjustment sale"`
	StartDate    *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate      *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page         int        `form:"page,default=1"`
	PageSize     int        `form:"page_size,default=20"`
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var q movementsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movements, total, err := h.uc.ListMovements(c.Request.Context(), &dto.MovementFilters{
		StoreID:      auth.StoreID(c),
		ProductID:    q.ProductID,
		MovementType: q.MovementType,
		StartDate:    q.StartDate,
		EndDate:      q.EndDate,
		Page:         q.Page,
		PageSize:     q.PageSize,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": movements, "total": total})
}

func (h *InventoryHandler) respondError(c *gin.Context, err error) {
	var incompat *uom.IncompatibleMeasureError
	switch {
	case errors.Is(err, inventory.ErrProductNotFound), errors.Is(err, inventory.ErrBatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrUnknownUnit),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.As(err, &incompat):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrLockBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("inventory handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
