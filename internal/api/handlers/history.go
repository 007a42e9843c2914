package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"warehouse-pricing/internal/api/models"
	"warehouse-pricing/internal/store"
)

// HistoryHandler exposes the append-only simulation log.
type HistoryHandler struct {
	history *store.History
}

func NewHistoryHandler(history *store.History) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /api/v1/history.
func (h *HistoryHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	entries, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "HISTORY_ERROR", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// Clear handles DELETE /api/v1/history.
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.history.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "HISTORY_ERROR", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
