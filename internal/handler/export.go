package handler

import (
	"net/http"

	"github.com/yacine178/sales/internal/apierror"
	"github.com/yacine178/sales/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct{ svc service.ExportService }

func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// ProductsCSV GET /v1/export/products.csv
func (h *ExportHandler) ProductsCSV(c *gin.Context) {
	data, err := h.svc.ProductsCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to export products"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
