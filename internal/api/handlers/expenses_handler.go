package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/service"
)

type ExpensesHandler struct {
	service *service.ExpenseService
}

func NewExpensesHandler(service *service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{service: service}
}

func (h *ExpensesHandler) List(c *gin.Context) {
	filter := domain.ExpenseFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}
	if month, err := strconv.Atoi(c.Query("month")); err == nil {
		filter.Month = month
	}
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filter.Year = year
	}

	expenses, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "expenses": expenses})
}

func (h *ExpensesHandler) Create(c *gin.Context) {
	var expense domain.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid expense payload: "+err.Error())
		return
	}
	if err := h.service.Create(c.Request.Context(), &expense); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "expense": expense})
}

func (h *ExpensesHandler) Update(c *gin.Context) {
	var expense domain.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid expense payload: "+err.Error())
		return
	}
	expense.ID = c.Param("id")
	if err := h.service.Update(c.Request.Context(), &expense); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "expense": expense})
}

func (h *ExpensesHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ExpensesHandler) Analytics(c *gin.Context) {
	analytics, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analytics": analytics})
}
