// README: Recent analyses handler.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"flightopt/internal/modules/history"
)

// HistoryLister is satisfied by *history.Service.
type HistoryLister interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

type HistoryHandler struct {
	history HistoryLister
}

func NewHistoryHandler(h HistoryLister) *HistoryHandler {
	return &HistoryHandler{history: h}
}

// List handles GET /api/history?limit=N.
func (h *HistoryHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "list history failed", "error", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"entries": entries})
}
