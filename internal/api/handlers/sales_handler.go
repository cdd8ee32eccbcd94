package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/repository/postgres"
	"github.com/nerdware-developers/pos-backend/internal/service"
)

type SalesHandler struct {
	service *service.SalesService
}

func NewSalesHandler(service *service.SalesService) *SalesHandler {
	return &SalesHandler{service: service}
}

func (h *SalesHandler) Create(c *gin.Context) {
	var sale domain.Sale
	if err := c.ShouldBindJSON(&sale); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid sale payload: "+err.Error())
		return
	}

	if err := h.service.Create(c.Request.Context(), &sale); err != nil {
		if errors.Is(err, postgres.ErrInsufficientStock) {
			errorResponse(c, http.StatusConflict, err.Error())
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "sale": sale})
}

func (h *SalesHandler) List(c *gin.Context) {
	filter := domain.SaleFilter{
		Date:   c.Query("date"),
		UserID: c.Query("userId"),
	}
	if month, err := strconv.Atoi(c.Query("month")); err == nil {
		filter.Month = month
	}
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filter.Year = year
	}

	sales, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sales": sales})
}

func (h *SalesHandler) GetByID(c *gin.Context) {
	sale, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if sale == nil {
		errorResponse(c, http.StatusNotFound, "sale not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sale": sale})
}
