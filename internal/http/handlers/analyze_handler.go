// README: Route analysis handler (JSON or form input, JSON output).
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flightopt/internal/service"
	"flightopt/internal/types"
)

// Analyzer is satisfied by *service.RouteAnalyzer.
type Analyzer interface {
	Analyze(ctx context.Context, q types.RouteQuery) (*service.FlightAnalysisResponse, error)
}

type AnalyzeHandler struct {
	analyzer Analyzer
}

func NewAnalyzeHandler(analyzer Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

type analyzeReq struct {
	Departure string `json:"departure" form:"departure"`
	Arrival   string `json:"arrival" form:"arrival"`
	Date      string `json:"date" form:"date"`
}

// Analyze handles POST /api/analyze.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	q := types.RouteQuery{
		Departure: strings.ToUpper(strings.TrimSpace(req.Departure)),
		Arrival:   strings.ToUpper(strings.TrimSpace(req.Arrival)),
		Date:      strings.TrimSpace(req.Date),
	}
	if q.Departure == "" || q.Arrival == "" {
		writeError(c, http.StatusBadRequest, "出発地と到着地を入力してください。")
		return
	}

	resp, err := h.analyzer.Analyze(c.Request.Context(), q)
	if err != nil {
		writeAnalyzeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}
