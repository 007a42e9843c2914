package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warehouse-pricing/internal/api/models"
	"warehouse-pricing/internal/config"
	"warehouse-pricing/internal/model"
)

// SettingsHandler reads and replaces the persisted reward settings document.
type SettingsHandler struct {
	path string
}

func NewSettingsHandler(path string) *SettingsHandler {
	return &SettingsHandler{path: path}
}

// Get handles GET /api/v1/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, config.LoadSettings(h.path))
}

// Put handles PUT /api/v1/settings. The document is replaced wholesale.
func (h *SettingsHandler) Put(c *gin.Context) {
	var s model.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}
	if err := config.SaveSettings(h.path, s); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SETTINGS_ERROR", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, s)
}
