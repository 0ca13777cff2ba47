package handler

import (
	"net/http"

	"github.com/yacine178/sales/internal/apierror"
	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"
	"github.com/yacine178/sales/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PartsHandler struct{ svc service.InventoryService }

func NewPartsHandler(svc service.InventoryService) *PartsHandler {
	return &PartsHandler{svc: svc}
}

// Create POST /v1/parts
func (h *PartsHandler) Create(c *gin.Context) {
	var req dto.CreatePartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePart(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get GET /v1/parts/:id
func (h *PartsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, svcErr := h.svc.GetPart(c.Request.Context(), id)
	if svcErr != nil {
		writeServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List GET /v1/parts
func (h *PartsHandler) List(c *gin.Context) {
	var filter dto.PartFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}
	resp, err := h.svc.ListParts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list parts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock GET /v1/parts/low-stock
func (h *PartsHandler) LowStock(c *gin.Context) {
	resp, err := h.svc.ListLowStockParts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list low-stock parts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update PUT /v1/parts/:id
func (h *PartsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdatePartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.UpdatePart(c.Request.Context(), id, req)
	if svcErr != nil {
		writeServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /v1/parts/:id
func (h *PartsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if svcErr := h.svc.DeletePart(c.Request.Context(), id); svcErr != nil {
		writeServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// AdjustStock POST /v1/parts/:id/stock
func (h *PartsHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.AdjustPartStock(c.Request.Context(), id, req.Delta, model.StockReason(req.Reason), req.Note)
	if svcErr != nil {
		writeServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movements GET /v1/stock-movements
func (h *PartsHandler) Movements(c *gin.Context) {
	var filter dto.StockMovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list stock movements"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
