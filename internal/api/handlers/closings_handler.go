package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/service"
)

type ClosingsHandler struct {
	service *service.ClosingService
}

func NewClosingsHandler(service *service.ClosingService) *ClosingsHandler {
	return &ClosingsHandler{service: service}
}

func (h *ClosingsHandler) Upsert(c *gin.Context) {
	var closing domain.Closing
	if err := c.ShouldBindJSON(&closing); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid closing payload: "+err.Error())
		return
	}
	if err := h.service.Upsert(c.Request.Context(), &closing); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "closing": closing})
}

func (h *ClosingsHandler) GetByDate(c *gin.Context) {
	closing, err := h.service.GetByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if closing == nil {
		errorResponse(c, http.StatusNotFound, "closing not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "closing": closing})
}

func (h *ClosingsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	closings, err := h.service.List(c.Request.Context(), limit)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "closings": closings})
}

func (h *ClosingsHandler) Variance(c *gin.Context) {
	variance, err := h.service.Variance(c.Request.Context(), c.Param("date"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "variance": variance})
}
