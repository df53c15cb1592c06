package handler

import (
	"net/http"

	"alpha-sparrow/internal/report"

	"github.com/gin-gonic/gin"
)

// GetMovers godoc
// @Summary      Get top gainers and losers
// @Description  Returns the 5 best and 5 worst 24h performers among settlement-currency pairs
// @Tags         market
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /api/movers [get]
func (h *Handler) GetMovers(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-movers")
	defer span.End()

	rows, err := h.market.AllTickers(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	gainers, losers := report.RankMovers(rows)
	c.JSON(http.StatusOK, gin.H{
		"gainers": gainers,
		"losers":  losers,
	})
}
