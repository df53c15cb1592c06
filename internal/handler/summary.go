package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

const maxSummaryHours = 168

// GetSummary godoc
// @Summary      Get trailing-window market summary
// @Description  Aggregates the recorded snapshot log into per-instrument start/end/high/low
// @Tags         market
// @Produce      json
// @Param        hours  query  int  false  "Trailing window in hours (default 9, max 168)"  default(9)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-summary")
	defer span.End()

	hours := 9
	if v := c.Query("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxSummaryHours {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be between 1 and 168"})
			return
		}
		hours = n
	}
	span.SetAttributes(attribute.Int("window_hours", hours))

	summaries := h.recorder.Summarize(time.Duration(hours) * time.Hour)
	c.JSON(http.StatusOK, gin.H{
		"window_hours": hours,
		"instruments":  summaries,
	})
}
