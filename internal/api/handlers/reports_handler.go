package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nerdware-developers/pos-backend/internal/service"
)

type ReportsHandler struct {
	service *service.ReportService
}

func NewReportsHandler(service *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: service}
}

func (h *ReportsHandler) GetSales(c *gin.Context) {
	result, err := h.service.Sales(c.Request.Context(),
		c.DefaultQuery("period", "day"), c.Query("date"), c.Query("userId"))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": result})
}

func (h *ReportsHandler) GetDashboard(c *gin.Context) {
	result, err := h.service.Dashboard(c.Request.Context(),
		c.DefaultQuery("period", "day"), c.Query("date"), c.Query("userId"))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dashboard": result})
}

func (h *ReportsHandler) GetAdvanced(c *gin.Context) {
	result, err := h.service.Advanced(c.Request.Context(),
		c.DefaultQuery("period", "month"), c.Query("date"), c.Query("userId"))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": result})
}

func (h *ReportsHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

// Export streams the report file. When object storage is configured
// the share link comes back in the X-Export-URL header.
func (h *ReportsHandler) Export(c *gin.Context) {
	name, contentType, payload, url, err := h.service.ExportFile(c.Request.Context(),
		c.DefaultQuery("period", "month"), c.Query("date"), c.DefaultQuery("format", "csv"))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if url != "" {
		c.Header("X-Export-URL", url)
	}
	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Data(http.StatusOK, contentType, payload)
}
