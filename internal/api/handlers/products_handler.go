package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/service"
)

type ProductsHandler struct {
	service *service.ProductService
}

func NewProductsHandler(service *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: service}
}

func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *ProductsHandler) GetByID(c *gin.Context) {
	product, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if product == nil {
		errorResponse(c, http.StatusNotFound, "product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid product payload: "+err.Error())
		return
	}
	if err := h.service.Create(c.Request.Context(), &product); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

func (h *ProductsHandler) Update(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid product payload: "+err.Error())
		return
	}
	product.ID = c.Param("id")
	if err := h.service.Update(c.Request.Context(), &product); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProductsHandler) LowStock(c *gin.Context) {
	products, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *ProductsHandler) Valuation(c *gin.Context) {
	valuation, err := h.service.Valuation(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "valuation": valuation})
}
