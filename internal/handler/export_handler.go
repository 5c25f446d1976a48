package handler

import (
	"fmt"

	"github.com/estdesignco/walkthrough-app/internal/service"
	"github.com/gin-gonic/gin"
)

// ExportHandler serves the FF&E download endpoints.
type ExportHandler struct {
	svc *service.ExportService
}

// NewExportHandler creates an export handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// CSV GET /api/projects/:id/export.csv
func (h *ExportHandler) CSV(c *gin.Context) {
	fileName, data, err := h.svc.BuildCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(200, "text/csv; charset=utf-8", data)
}

// XLSX GET /api/projects/:id/export.xlsx
func (h *ExportHandler) XLSX(c *gin.Context) {
	fileName, f, err := h.svc.BuildXLSX(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write workbook: "+err.Error())
	}
}
