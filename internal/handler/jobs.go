package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetJobs godoc
// @Summary      Get scheduled job statuses
// @Description  Returns every registered job with its cadence, next/last run and run count
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/jobs [get]
func (h *Handler) GetJobs(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-jobs")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"jobs": h.scheduler.Statuses()})
}
