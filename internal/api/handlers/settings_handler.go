package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nerdware-developers/pos-backend/internal/settings"
)

type SettingsHandler struct {
	store settings.Store
}

func NewSettingsHandler(store settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.store.Get(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": s})
}

func (h *SettingsHandler) Save(c *gin.Context) {
	var s settings.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid settings payload: "+err.Error())
		return
	}
	if err := h.store.Save(c.Request.Context(), s); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": s})
}
