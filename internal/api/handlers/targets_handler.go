package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/service"
)

type TargetsHandler struct {
	service *service.TargetService
}

func NewTargetsHandler(service *service.TargetService) *TargetsHandler {
	return &TargetsHandler{service: service}
}

func (h *TargetsHandler) List(c *gin.Context) {
	targets, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "targets": targets})
}

func (h *TargetsHandler) Create(c *gin.Context) {
	var target domain.SalesTarget
	if err := c.ShouldBindJSON(&target); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid target payload: "+err.Error())
		return
	}
	if err := h.service.Create(c.Request.Context(), &target); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "target": target})
}

func (h *TargetsHandler) Update(c *gin.Context) {
	var target domain.SalesTarget
	if err := c.ShouldBindJSON(&target); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid target payload: "+err.Error())
		return
	}
	target.ID = c.Param("id")
	if err := h.service.Update(c.Request.Context(), &target); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "target": target})
}

func (h *TargetsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
